// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/preference"
	"inkwell/internal/slug"
	"inkwell/internal/styling"
	"inkwell/internal/theme"
)

// Stylesheet serves GET /blogs/{slug}/theme.css: the blog's resolved custom
// properties on :root followed by the page stylesheet. It is the plain HTTP
// rendition of what a live session projects.
type Stylesheet struct {
	loader styling.RecordLoader
	sheets *theme.Stylesheets
	prefs  preference.Store
}

// NewStylesheet creates the theme.css handler.
func NewStylesheet(loader styling.RecordLoader, sheets *theme.Stylesheets, prefs preference.Store) *Stylesheet {
	return &Stylesheet{loader: loader, sheets: sheets, prefs: prefs}
}

// ServeHTTP implements http.Handler.
func (h *Stylesheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if !slug.Valid(s) {
		http.Error(w, "blog not found", http.StatusNotFound)
		return
	}
	page, err := models.ParsePageType(r.URL.Query().Get("page"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.loader.Load(r.Context(), s)
	if errors.Is(err, styling.ErrBlogNotFound) {
		http.Error(w, "blog not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("load blog failed", "slug", s, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var persisted models.ColorMode
	if visitor := middleware.VisitorFromCtx(r.Context()); visitor != "" && h.prefs != nil {
		persisted, err = h.prefs.Get(r.Context(), visitor, s)
		if err != nil {
			slog.Warn("preference load failed", "slug", s, "error", err)
		}
	}
	dark := theme.NewDarkMode(rec.Blog.Customization.DarkMode, persisted, middleware.PrefersDark(r)).Effective()

	etag := fmt.Sprintf(`W/"%d-%s-%d-%s-%t"`, rec.Blog.Version, rec.Theme.ID, rec.Theme.Version, page, dark)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, no-cache")
	middleware.AddVary(w.Header(), "Cookie")
	middleware.AddVary(w.Header(), middleware.ColorSchemeHint)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var b strings.Builder
	if href := theme.GoogleFontsURL(rec.Theme, rec.Blog.Customization); href != "" {
		fmt.Fprintf(&b, "@import url(%q);\n\n", href)
	}
	writeRoot(&b, theme.Resolve(rec.Theme, rec.Blog.Customization, dark))
	b.WriteString("\n")
	b.WriteString(h.sheets.For(r.Context(), rec.Theme, page))

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(b.String()))
}

// writeRoot renders tokens as a :root rule in stable order.
func writeRoot(b *strings.Builder, tokens theme.TokenSet) {
	b.WriteString(":root {\n")
	for _, name := range tokens.Names() {
		fmt.Fprintf(b, "  %s: %s;\n", theme.Property(name), tokens[name])
	}
	b.WriteString("}\n")
}
