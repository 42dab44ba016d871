package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

//go:embed *.json
var catalogs embed.FS

var translations = make(map[string]map[string]string)
var DefaultLang = "en"

func init() {
	for _, lang := range []string{"en", "fr"} {
		data, err := catalogs.ReadFile(lang + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: missing catalog for %q: %v", lang, err))
		}
		var t map[string]string
		if err := json.Unmarshal(data, &t); err != nil {
			panic(fmt.Sprintf("i18n: invalid catalog for %q: %v", lang, err))
		}
		translations[lang] = t
	}
}

func T(lang, key string) string {
	if t, ok := translations[lang]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	// Fallback to English
	if lang != DefaultLang {
		return T(DefaultLang, key)
	}
	return key
}

// FormatDate renders a calendar date the way the journal displays it,
// e.g. "5 June 2025" or "5 juin 2025".
func FormatDate(lang string, t time.Time) string {
	month := T(lang, fmt.Sprintf("Month%d", int(t.Month())))
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}

func DetectLanguage(r *http.Request) string {
	// Example: fr-CH, fr;q=0.9, en;q=0.8, de;q=0.7, *;q=0.5
	accept := r.Header.Get("Accept-Language")
	if accept != "" {
		parts := strings.Split(accept, ",")
		for _, part := range parts {
			lang := strings.TrimSpace(strings.Split(part, ";")[0])
			if len(lang) >= 2 {
				lang = lang[:2] // e.g., "en-US" -> "en"
				if _, ok := translations[lang]; ok {
					return lang
				}
			}
		}
	}

	return DefaultLang
}
