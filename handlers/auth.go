package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dchest/captcha"

	"daybook/config"
	"daybook/crypto"
	"daybook/i18n"
	"daybook/store"
)

type credentialsRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	CaptchaID       string `json:"captcha_id,omitempty"`
	CaptchaSolution string `json:"captcha_solution,omitempty"`
}

// RegisterHandler creates a new account.
func (h *Handlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)

	ip := getClientIP(r)
	if !registerLimiter.Allow(ip) {
		sendMessage(w, http.StatusTooManyRequests, lang, "TooManyAttempts")
		return
	}

	var input credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendMessage(w, http.StatusBadRequest, lang, "InvalidRequestBody")
		return
	}

	if input.Username == "" || input.Password == "" {
		sendMessage(w, http.StatusBadRequest, lang, "CredentialsRequired")
		return
	}

	if config.AppConfig.EnableCaptcha && !captcha.VerifyString(input.CaptchaID, input.CaptchaSolution) {
		sendMessage(w, http.StatusBadRequest, lang, "InvalidCaptcha")
		return
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		sendMessage(w, http.StatusInternalServerError, lang, "InternalServerError")
		return
	}

	user, err := h.users.Create(r.Context(), input.Username, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			sendMessage(w, http.StatusBadRequest, lang, "UserAlreadyExists")
			return
		}
		log.Printf("Error creating user: %v", err)
		sendMessage(w, http.StatusInternalServerError, lang, "InternalServerError")
		return
	}

	// Record the attempt to limit the rate of account creation per IP
	registerLimiter.RecordFailure(ip)

	sendJSON(w, http.StatusCreated, map[string]any{"id": user.ID, "username": user.Username})
}

// LoginHandler checks credentials and establishes a session bound to the
// response cookie.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)

	ip := getClientIP(r)
	if !loginLimiter.Allow(ip) {
		sendMessage(w, http.StatusTooManyRequests, lang, "TooManyAttempts")
		return
	}

	var input credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendMessage(w, http.StatusBadRequest, lang, "InvalidRequestBody")
		return
	}

	user, err := h.users.GetByUsername(r.Context(), input.Username)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Printf("Error looking up user: %v", err)
		sendMessage(w, http.StatusInternalServerError, lang, "InternalServerError")
		return
	}

	// Timing attack mitigation: always check a password hash
	targetHash := crypto.DummyHash
	if err == nil {
		targetHash = user.PasswordHash
	}
	match := crypto.CheckPasswordHash(input.Password, targetHash)

	if err != nil || !match {
		loginLimiter.RecordFailure(ip)
		sendMessage(w, http.StatusUnauthorized, lang, "InvalidCredentials")
		return
	}

	loginLimiter.Reset(ip)

	if err := h.sessions.Create(w, r, user.ID, user.Username); err != nil {
		log.Printf("Error creating session: %v", err)
		sendMessage(w, http.StatusInternalServerError, lang, "InternalServerError")
		return
	}

	sendJSON(w, http.StatusOK, map[string]any{"user_id": user.ID, "username": user.Username})
}

// LogoutHandler destroys the session. Destruction errors are logged, never
// surfaced.
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		log.Printf("Error destroying session: %v", err)
	}
	sendMessage(w, http.StatusOK, i18n.DetectLanguage(r), "LoggedOut")
}

// MeHandler reports the identity bound to the current session.
func (h *Handlers) MeHandler(w http.ResponseWriter, r *http.Request) {
	ident, _ := identityFromContext(r.Context())
	sendJSON(w, http.StatusOK, map[string]any{"user_id": ident.UserID, "username": ident.Username})
}

// NewCaptchaHandler mints a captcha challenge for the registration form. The
// image itself is served under /captcha/{id}.png.
func (h *Handlers) NewCaptchaHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"captcha_id": captcha.New()})
}
