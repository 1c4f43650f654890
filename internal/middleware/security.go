// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// ColorSchemeHint is the client hint carrying the browser's color scheme.
const ColorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

// SecureHeaders adds security-related HTTP headers to every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Prevent the browser from MIME-sniffing the Content-Type.
		h.Set("X-Content-Type-Options", "nosniff")

		// Prevent embedding in iframes from other origins (clickjacking).
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Disable the legacy XSS filter (can cause issues; CSP is preferred).
		h.Set("X-XSS-Protection", "0")

		// Control what information is sent in the Referer header.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Theme stylesheets are embedded by blog front-ends on other origins.
		h.Set("Cross-Origin-Resource-Policy", "cross-origin")

		next.ServeHTTP(w, r)
	})
}

// ColorSchemeHints asks the browser to send its preferred color scheme on
// later requests, and marks responses as varying on it.
func ColorSchemeHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Accept-CH", ColorSchemeHint)
		AddVary(h, ColorSchemeHint)
		h.Set("Critical-CH", ColorSchemeHint)
		next.ServeHTTP(w, r)
	})
}

// AddVary appends field to the Vary header unless it is already listed.
func AddVary(h http.Header, field string) {
	for _, v := range h.Values("Vary") {
		for _, f := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(f), field) {
				return
			}
		}
	}
	h.Add("Vary", field)
}

// PrefersDark reports whether the request's client hint asks for dark.
func PrefersDark(r *http.Request) bool {
	return r.Header.Get(ColorSchemeHint) == "dark"
}
