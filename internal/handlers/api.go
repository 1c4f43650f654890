// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP surface of Inkwell: the theme and
// blog JSON API, the per-blog theme.css endpoint and the live styling
// WebSocket.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/catalog"
	"inkwell/internal/feed"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/preference"
	"inkwell/internal/slug"
)

// ThemeRepo is the theme storage used by the API.
type ThemeRepo interface {
	List(ctx context.Context) ([]models.ThemeDefinition, error)
	FindByID(ctx context.Context, id string) (*models.ThemeDefinition, error)
	Update(ctx context.Context, t models.ThemeDefinition) (*models.ThemeDefinition, error)
}

// BlogRepo is the blog storage used by the API.
type BlogRepo interface {
	List(ctx context.Context) ([]models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	UpdateCustomization(ctx context.Context, slug string, c models.Customization) (*models.Blog, error)
	SetTheme(ctx context.Context, slug, themeID string) (*models.Blog, error)
}

// API serves the JSON endpoints under /api.
type API struct {
	themes ThemeRepo
	blogs  BlogRepo
	prefs  preference.Store
	feed   feed.Feed
}

// NewAPI creates the API handler group.
func NewAPI(themes ThemeRepo, blogs BlogRepo, prefs preference.Store, f feed.Feed) *API {
	return &API{themes: themes, blogs: blogs, prefs: prefs, feed: f}
}

// ListThemes handles GET /api/themes.
func (a *API) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := a.themes.List(r.Context())
	if err != nil {
		slog.Error("list themes failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if themes == nil {
		themes = []models.ThemeDefinition{}
	}
	writeJSON(w, http.StatusOK, themes)
}

// GetTheme handles GET /api/themes/{id}.
func (a *API) GetTheme(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !slug.Valid(id) {
		writeError(w, http.StatusNotFound, "theme not found")
		return
	}
	def, err := a.themes.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find theme failed", "theme", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if def == nil {
		writeError(w, http.StatusNotFound, "theme not found")
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// themeInput is the writable part of a theme.
type themeInput struct {
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Styles   models.ThemeStyles `json:"styles"`
}

// UpdateTheme handles PUT /api/themes/{id}. Every blog using the theme is
// restyled through the feed.
func (a *API) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !slug.Valid(id) {
		writeError(w, http.StatusNotFound, "theme not found")
		return
	}

	var in themeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	def := models.ThemeDefinition{ID: id, Name: in.Name, Category: in.Category, Styles: in.Styles}
	if err := catalog.Validate(def); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := a.themes.Update(r.Context(), def)
	if err != nil {
		slog.Error("update theme failed", "theme", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "theme not found")
		return
	}

	slog.Info("theme updated", "theme", id, "version", updated.Version)
	a.publish(r.Context(), feed.Event{Kind: feed.KindTheme, Key: id, Version: updated.Version})
	writeJSON(w, http.StatusOK, updated)
}

// ListBlogs handles GET /api/blogs.
func (a *API) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := a.blogs.List(r.Context())
	if err != nil {
		slog.Error("list blogs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	writeJSON(w, http.StatusOK, blogs)
}

// GetBlog handles GET /api/blogs/{slug}.
func (a *API) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := a.findBlog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// UpdateCustomization handles PUT /api/blogs/{slug}/customization. The body
// replaces the stored customization as a whole.
func (a *API) UpdateCustomization(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if !slug.Valid(s) {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}

	var c models.Customization
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateCustomization(c); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	blog, err := a.blogs.UpdateCustomization(r.Context(), s, c)
	if err != nil {
		slog.Error("update customization failed", "slug", s, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if blog == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}

	slog.Info("customization updated", "slug", s, "version", blog.Version)
	a.publish(r.Context(), feed.Event{Kind: feed.KindBlog, Key: s, Version: blog.Version})
	writeJSON(w, http.StatusOK, blog)
}

type themeSelection struct {
	ThemeID string `json:"themeId"`
}

// SetTheme handles PUT /api/blogs/{slug}/theme.
func (a *API) SetTheme(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if !slug.Valid(s) {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}

	var in themeSelection
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !slug.Valid(in.ThemeID) {
		writeError(w, http.StatusUnprocessableEntity, "themeId is invalid")
		return
	}
	def, err := a.themes.FindByID(r.Context(), in.ThemeID)
	if err != nil {
		slog.Error("find theme failed", "theme", in.ThemeID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if def == nil {
		writeError(w, http.StatusUnprocessableEntity, "theme does not exist")
		return
	}

	blog, err := a.blogs.SetTheme(r.Context(), s, in.ThemeID)
	if err != nil {
		slog.Error("set theme failed", "slug", s, "theme", in.ThemeID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if blog == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}

	slog.Info("blog theme changed", "slug", s, "theme", in.ThemeID, "version", blog.Version)
	a.publish(r.Context(), feed.Event{Kind: feed.KindBlog, Key: s, Version: blog.Version})
	writeJSON(w, http.StatusOK, blog)
}

type modeInput struct {
	Mode models.ColorMode `json:"mode"`
}

// SetPreference handles PUT /api/blogs/{slug}/preference. It stores the
// calling visitor's color mode for the blog.
func (a *API) SetPreference(w http.ResponseWriter, r *http.Request) {
	blog, ok := a.findBlog(w, r)
	if !ok {
		return
	}

	var in modeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !in.Mode.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "mode must be light, dark or system")
		return
	}

	visitor := middleware.VisitorFromCtx(r.Context())
	if visitor == "" {
		writeError(w, http.StatusBadRequest, "missing visitor id")
		return
	}
	if err := a.prefs.Set(r.Context(), visitor, blog.Slug, in.Mode); err != nil {
		slog.Error("store preference failed", "slug", blog.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// findBlog loads the blog named by the {slug} URL parameter, writing the
// error response itself when it reports false.
func (a *API) findBlog(w http.ResponseWriter, r *http.Request) (*models.Blog, bool) {
	s := chi.URLParam(r, "slug")
	if !slug.Valid(s) {
		writeError(w, http.StatusNotFound, "blog not found")
		return nil, false
	}
	blog, err := a.blogs.FindBySlug(r.Context(), s)
	if err != nil {
		slog.Error("find blog failed", "slug", s, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if blog == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return nil, false
	}
	return blog, true
}

// publish announces a change. The write is already stored, so a failure only
// delays other viewers until their next load.
func (a *API) publish(ctx context.Context, e feed.Event) {
	if a.feed == nil {
		return
	}
	if err := a.feed.Publish(ctx, e); err != nil {
		slog.Warn("publish update failed", "event", e.String(), "error", err)
	}
}
