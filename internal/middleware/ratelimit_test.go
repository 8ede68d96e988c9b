package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter("test", 3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4:/api/contact") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4:/api/contact") {
		t.Fatalf("4th request should be rejected")
	}
}

func TestRateLimiterIndependentKeys(t *testing.T) {
	rl := NewRateLimiter("test", 1, time.Minute)

	if !rl.Allow("a") {
		t.Fatalf("first key should be allowed")
	}
	if !rl.Allow("b") {
		t.Fatalf("independent key should be allowed")
	}
	if rl.Allow("a") {
		t.Fatalf("repeated key should be rejected")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter("test", 1, 10*time.Millisecond)

	if !rl.Allow("a") {
		t.Fatalf("first request should be allowed")
	}
	if rl.Allow("a") {
		t.Fatalf("second request should be rejected")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("a") {
		t.Fatalf("request after window reset should be allowed")
	}
}

func TestRateLimiterMiddlewareRejects(t *testing.T) {
	rl := NewRateLimiter("test", 1, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: got status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got status %d, want 429", rr.Code)
	}
}
