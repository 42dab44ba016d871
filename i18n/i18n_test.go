package i18n

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestT(t *testing.T) {
	if got := T("en", "EntryDeleted"); got != "Entry deleted" {
		t.Errorf("Expected 'Entry deleted', got %q", got)
	}
	if got := T("fr", "EntryDeleted"); got != "Entrée supprimée" {
		t.Errorf("Expected 'Entrée supprimée', got %q", got)
	}
	// Unknown language falls back to English
	if got := T("de", "EntryDeleted"); got != "Entry deleted" {
		t.Errorf("Expected English fallback, got %q", got)
	}
	// Unknown key falls through to the key itself
	if got := T("en", "NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("Expected key passthrough, got %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"en-US,en;q=0.9", "en"},
		{"fr-CH, fr;q=0.9, en;q=0.8", "fr"},
		{"de-DE,de;q=0.9", "en"}, // unsupported -> default
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Accept-Language", tt.header)
		}
		if got := DetectLanguage(r); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	if got := FormatDate("en", d); got != "5 June 2025" {
		t.Errorf("Expected '5 June 2025', got %q", got)
	}
	if got := FormatDate("fr", d); got != "5 juin 2025" {
		t.Errorf("Expected '5 juin 2025', got %q", got)
	}

	d2 := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	if got := FormatDate("en", d2); got != "31 December 2024" {
		t.Errorf("Expected '31 December 2024', got %q", got)
	}
}
