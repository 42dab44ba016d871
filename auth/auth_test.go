package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testKey = "test-secret-key-12345678901234567890123456789012"

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestSessionLifecycle(t *testing.T) {
	m := NewManager(testKey, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	if err := m.Create(w, r, 42, "alice"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Cookies set on the response must resolve on a fresh request
	r2 := requestWithCookies(w.Result().Cookies())
	ident, ok := m.Identity(r2)
	if !ok {
		t.Fatal("Identity did not resolve a freshly created session")
	}
	if ident.UserID != 42 {
		t.Errorf("Expected userID 42, got %d", ident.UserID)
	}
	if ident.Username != "alice" {
		t.Errorf("Expected username alice, got %s", ident.Username)
	}

	// Destroy must expire the cookie
	w2 := httptest.NewRecorder()
	if err := m.Destroy(w2, r2); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	var expired bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("Destroy did not set an expired session cookie")
	}
}

func TestIdentityWithoutCookie(t *testing.T) {
	m := NewManager(testKey, false)

	if _, ok := m.Identity(httptest.NewRequest("GET", "/", nil)); ok {
		t.Error("Identity resolved a request with no session cookie")
	}
}

func TestIdentityRejectsTamperedCookie(t *testing.T) {
	m := NewManager(testKey, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	m.Create(w, r, 7, "bob")

	cookies := w.Result().Cookies()
	for _, c := range cookies {
		if c.Name == SessionName {
			c.Value = "tampered" + c.Value[8:]
		}
	}

	if _, ok := m.Identity(requestWithCookies(cookies)); ok {
		t.Error("Identity accepted a tampered cookie")
	}
}

func TestIdentityRejectsForeignKey(t *testing.T) {
	m1 := NewManager(testKey, false)
	m2 := NewManager("a-completely-different-secret-key", false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	m1.Create(w, r, 7, "bob")

	if _, ok := m2.Identity(requestWithCookies(w.Result().Cookies())); ok {
		t.Error("A manager with a different key accepted the cookie")
	}
}
