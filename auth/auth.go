package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

const SessionName = "daybook-session"

// Identity is what a session binds a request to.
type Identity struct {
	UserID   int
	Username string
}

// Manager owns the cookie-backed session store. It is injected into the
// handlers instead of living as package state.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager derives two 32-byte keys from the configured session key:
// an HMAC key for signing and an AES key for content encryption.
func NewManager(sessionKey string, secure bool) *Manager {
	authKey := sha256.Sum256([]byte(sessionKey + "auth"))
	encKey := sha256.Sum256([]byte(sessionKey + "encryption"))

	store := sessions.NewCookieStore(authKey[:], encKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store}
}

// Create binds a new session to the response cookie.
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, userID int, username string) error {
	session, _ := m.store.Get(r, SessionName)
	session.Values["userID"] = userID
	session.Values["username"] = username
	return session.Save(r, w)
}

// Identity resolves the request's session cookie. ok is false when the cookie
// is absent or invalid.
func (m *Manager) Identity(r *http.Request) (Identity, bool) {
	session, _ := m.store.Get(r, SessionName)
	userID, ok := session.Values["userID"].(int)
	if !ok || userID == 0 {
		return Identity{}, false
	}
	username, _ := session.Values["username"].(string)
	return Identity{UserID: userID, Username: username}, true
}

// Destroy expires the session cookie. The error is for logging only; logout
// never fails observably.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
