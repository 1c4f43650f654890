package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "SAMEORIGIN"},
		{"X-XSS-Protection", "0"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"Cross-Origin-Resource-Policy", "cross-origin"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := rr.Header().Get(tt.header); got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestColorSchemeHints(t *testing.T) {
	handler := ColorSchemeHints(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Cookie")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("Accept-CH"); got != ColorSchemeHint {
		t.Errorf("Accept-CH: got %q", got)
	}
	vary := rr.Header().Values("Vary")
	if len(vary) != 2 || vary[0] != ColorSchemeHint || vary[1] != "Cookie" {
		t.Errorf("Vary: got %v", vary)
	}
}

func TestAddVary(t *testing.T) {
	h := http.Header{}
	h.Add("Vary", "Accept-Encoding, cookie")

	AddVary(h, "Cookie")
	AddVary(h, ColorSchemeHint)
	AddVary(h, ColorSchemeHint)

	vary := h.Values("Vary")
	if len(vary) != 2 || vary[1] != ColorSchemeHint {
		t.Errorf("Vary: got %v", vary)
	}
}

func TestPrefersDark(t *testing.T) {
	tests := []struct {
		hint string
		want bool
	}{
		{"dark", true},
		{"light", false},
		{"", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.hint != "" {
			req.Header.Set(ColorSchemeHint, tt.hint)
		}
		if got := PrefersDark(req); got != tt.want {
			t.Errorf("PrefersDark(%q) = %v, want %v", tt.hint, got, tt.want)
		}
	}
}
