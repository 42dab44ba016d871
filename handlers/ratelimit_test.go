package handlers

import (
	"net/http"
	"testing"
	"time"
)

func newTestLimiter() *rateLimiter {
	return &rateLimiter{
		attempts: make(map[string]*attemptData),
		blocked:  make(map[string]time.Time),
	}
}

func TestRateLimiterAllowsByDefault(t *testing.T) {
	rl := newTestLimiter()
	if !rl.Allow("1.2.3.4") {
		t.Error("Fresh limiter should allow any IP")
	}
}

func TestRateLimiterBlocksAfterMaxAttempts(t *testing.T) {
	rl := newTestLimiter()
	ip := "1.2.3.4"

	for i := 0; i < maxAttempts; i++ {
		if !rl.Allow(ip) {
			t.Fatalf("IP blocked too early, after %d failures", i)
		}
		rl.RecordFailure(ip)
	}

	if rl.Allow(ip) {
		t.Errorf("IP should be blocked after %d failures", maxAttempts)
	}

	// Other IPs are unaffected
	if !rl.Allow("5.6.7.8") {
		t.Error("Unrelated IP was blocked")
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := newTestLimiter()
	ip := "1.2.3.4"

	for i := 0; i < maxAttempts; i++ {
		rl.RecordFailure(ip)
	}
	if rl.Allow(ip) {
		t.Fatal("IP should be blocked")
	}

	rl.Reset(ip)
	if !rl.Allow(ip) {
		t.Error("IP should be allowed again after Reset")
	}
}

func TestRateLimiterBlockExpiry(t *testing.T) {
	rl := newTestLimiter()
	ip := "1.2.3.4"

	rl.Lock()
	rl.blocked[ip] = time.Now().Add(-time.Minute) // already expired
	rl.Unlock()

	if !rl.Allow(ip) {
		t.Error("Expired block should have been cleaned up")
	}
}

func TestLoginRateLimitEndpoint(t *testing.T) {
	router := newTestRouter()
	ip := "10.9.9.9:1000"
	defer loginLimiter.Reset("10.9.9.9")

	bad := map[string]string{"username": "nobody-here", "password": "wrong"}

	for i := 0; i < maxAttempts; i++ {
		w := doRequest(t, router, "POST", "/auth/login", ip, bad, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}

	w := doRequest(t, router, "POST", "/auth/login", ip, bad, nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after %d failures, got %d", maxAttempts, w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)

	r.RemoteAddr = "192.168.1.10:54321"
	if ip := getClientIP(r); ip != "192.168.1.10" {
		t.Errorf("Expected 192.168.1.10, got %s", ip)
	}

	r.RemoteAddr = "192.168.1.10"
	if ip := getClientIP(r); ip != "192.168.1.10" {
		t.Errorf("Expected raw address passthrough, got %s", ip)
	}
}
