package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/dchest/captcha"
	"github.com/go-chi/chi/v5"

	"daybook/auth"
	"daybook/config"
	"daybook/i18n"
	"daybook/store"
)

// Handlers carries the injected dependencies for every route.
type Handlers struct {
	users    *store.UserStore
	entries  *store.EntryStore
	sessions *auth.Manager
}

func New(users *store.UserStore, entries *store.EntryStore, sessions *auth.Manager) *Handlers {
	return &Handlers{users: users, entries: entries, sessions: sessions}
}

// Routes mounts every application route on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.RegisterHandler)
		r.Post("/login", h.LoginHandler)
		r.Get("/logout", h.LogoutHandler)
		r.With(h.RequireSession).Get("/me", h.MeHandler)
		if config.AppConfig.EnableCaptcha {
			r.Get("/captcha", h.NewCaptchaHandler)
		}
	})

	if config.AppConfig.EnableCaptcha {
		r.Handle("/captcha/*", captcha.Server(captcha.StdWidth, captcha.StdHeight))
	}

	r.Route("/journal", func(r chi.Router) {
		r.Use(h.RequireSession)
		r.Get("/entries", h.ListEntriesHandler)
		r.Post("/entries", h.CreateEntryHandler)
		r.Put("/entries/{id}", h.UpdateEntryHandler)
		r.Delete("/entries/{id}", h.DeleteEntryHandler)
	})
}

type messageResponse struct {
	Message string `json:"message"`
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func sendMessage(w http.ResponseWriter, status int, lang, key string) {
	sendJSON(w, status, messageResponse{Message: i18n.T(lang, key)})
}

type contextKey string

const identityKey contextKey = "identity"

// RequireSession gates protected routes: a valid session puts the resolved
// identity on the request context, anything else stops with 401. No fallback,
// no retry.
func (h *Handlers) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := h.sessions.Identity(r)
		if !ok {
			sendMessage(w, http.StatusUnauthorized, i18n.DetectLanguage(r), "PleaseLogIn")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(auth.Identity)
	return ident, ok
}
