package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d within the limit", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "limits are tracked per IP")
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(5, 10*time.Millisecond)
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	time.Sleep(25 * time.Millisecond)
	rl.Allow("10.0.0.2")
	rl.cleanup()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.requests, "10.0.0.1", "idle IPs are dropped after twice the window")
	assert.Contains(t, rl.requests, "10.0.0.2", "active IPs survive cleanup")
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}

func TestRateLimitAuthMiddleware(t *testing.T) {
	limited := RateLimitAuth()(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		limited(rec, httptest.NewRequest(http.MethodPost, "/auth/magic-link", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	}

	rec := httptest.NewRecorder()
	limited(rec, httptest.NewRequest(http.MethodPost, "/auth/magic-link", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4321"
	assert.Equal(t, "192.0.2.10", getClientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", getClientIP(req))
}
