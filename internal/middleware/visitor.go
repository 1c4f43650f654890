// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// VisitorCookieName is the cookie that identifies an anonymous visitor.
	VisitorCookieName = "inkwell_visitor"

	// visitorCookieMaxAge keeps the id for a year.
	visitorCookieMaxAge = 365 * 24 * time.Hour
)

type visitorKey struct{}

// Visitor ensures every request carries a visitor id. A missing or
// malformed cookie is replaced by a fresh random id. The id keys the
// visitor's stored color mode and nothing else.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(VisitorCookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), visitorKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VisitorFromCtx returns the visitor id stored by Visitor, or "".
func VisitorFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
