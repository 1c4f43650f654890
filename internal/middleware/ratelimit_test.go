package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// clock is a manually advanced time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, limit int, period time.Duration) (*RateLimiter, *clock) {
	t.Helper()
	rl := NewRateLimiter(limit, period)
	t.Cleanup(rl.Stop)
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl.now = c.now
	return rl, c
}

func TestRateLimiterAllow(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Second)

	for i := 0; i < 3; i++ {
		if !rl.Allow("conn-a") {
			t.Fatalf("event %d should be allowed", i+1)
		}
	}
	if rl.Allow("conn-a") {
		t.Error("4th event should be limited")
	}
	if !rl.Allow("conn-b") {
		t.Error("a different key has its own window")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl, c := newTestLimiter(t, 2, time.Second)

	rl.Allow("k")
	c.advance(600 * time.Millisecond)
	rl.Allow("k")

	if rl.Allow("k") {
		t.Fatal("should be limited inside the window")
	}

	// The first event leaves the window; the second is still inside.
	c.advance(500 * time.Millisecond)
	if !rl.Allow("k") {
		t.Error("should be allowed once the oldest event expires")
	}
	if rl.Allow("k") {
		t.Error("window is full again")
	}
}

func TestRateLimiterForget(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	rl.Allow("k")
	if rl.Allow("k") {
		t.Fatal("should be limited")
	}
	rl.Forget("k")
	if !rl.Allow("k") {
		t.Error("Forget should reset the key")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl, c := newTestLimiter(t, 10, 200*time.Millisecond)

	rl.Allow("idle")
	rl.Allow("busy")
	c.advance(250 * time.Millisecond)
	rl.Allow("busy")

	rl.sweep()

	rl.mu.Lock()
	_, idle := rl.keys["idle"]
	_, busy := rl.keys["busy"]
	rl.mu.Unlock()

	if idle {
		t.Error("idle key should be swept")
	}
	if !busy {
		t.Error("busy key should survive the sweep")
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, 30*time.Second)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/blogs/demo/customization", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		if rr := send(); rr.Code != http.StatusNoContent {
			t.Fatalf("request %d: got status %d, want 204", i+1, rr.Code)
		}
	}

	rr := send()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want 429", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After: got %q, want 30", got)
	}
	if !strings.Contains(rr.Body.String(), "too many requests") {
		t.Errorf("body: got %q", rr.Body.String())
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{name: "x-forwarded-for single", xff: "10.0.0.1", remoteAddr: "192.168.1.1:1234", want: "10.0.0.1"},
		{name: "x-forwarded-for multiple", xff: "10.0.0.1, 172.16.0.1", remoteAddr: "192.168.1.1:1234", want: "10.0.0.1"},
		{name: "x-real-ip", xri: "10.0.0.2", remoteAddr: "192.168.1.1:1234", want: "10.0.0.2"},
		{name: "remote addr only", remoteAddr: "192.168.1.1:1234", want: "192.168.1.1"},
		{name: "remote addr no port", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
		{name: "ipv6 remote addr", remoteAddr: "[::1]:8080", want: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
