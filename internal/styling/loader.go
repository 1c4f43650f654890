// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"inkwell/internal/models"
)

// ErrBlogNotFound is returned when a slug has no blog record.
var ErrBlogNotFound = errors.New("blog not found")

// BlogReader reads blog records. FindBySlug returns nil, nil when missing.
type BlogReader interface {
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
}

// BlogWriter persists blog customization.
type BlogWriter interface {
	UpdateCustomization(ctx context.Context, slug string, c models.Customization) (*models.Blog, error)
}

// ThemeReader reads theme records. FindByID returns nil, nil when missing.
type ThemeReader interface {
	FindByID(ctx context.Context, id string) (*models.ThemeDefinition, error)
}

// Record is a blog together with the theme it uses.
type Record struct {
	Blog  models.Blog
	Theme models.ThemeDefinition
	// Fallback is set when Theme is the baseline theme because the blog's
	// theme could not be loaded.
	Fallback bool
}

// DefaultLoadTimeout bounds one record load.
const DefaultLoadTimeout = 5 * time.Second

// Loader reads records. Concurrent loads of the same slug share one query.
type Loader struct {
	blogs   BlogReader
	themes  ThemeReader
	timeout time.Duration
	group   singleflight.Group
}

// NewLoader creates a loader.
func NewLoader(blogs BlogReader, themes ThemeReader) *Loader {
	return &Loader{blogs: blogs, themes: themes, timeout: DefaultLoadTimeout}
}

// Load returns the current record for slug. A missing or unreadable theme
// falls back to the baseline theme; a missing blog is ErrBlogNotFound.
func (l *Loader) Load(ctx context.Context, slug string) (Record, error) {
	ch := l.group.DoChan(slug, func() (any, error) {
		// Shared by every waiter, so it must outlive any single caller.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		return l.load(ctx, slug)
	})

	select {
	case <-ctx.Done():
		return Record{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Record{}, res.Err
		}
		return res.Val.(Record), nil
	}
}

func (l *Loader) load(ctx context.Context, slug string) (Record, error) {
	start := time.Now()
	defer func() { loadDuration.Observe(time.Since(start).Seconds()) }()

	blog, err := l.blogs.FindBySlug(ctx, slug)
	if err != nil {
		return Record{}, fmt.Errorf("load blog %s: %w", slug, err)
	}
	if blog == nil {
		return Record{}, fmt.Errorf("load blog %s: %w", slug, ErrBlogNotFound)
	}

	rec := Record{Blog: *blog}
	def, err := l.themes.FindByID(ctx, blog.ThemeID)
	switch {
	case err != nil:
		slog.Warn("theme load failed, using baseline", "slug", slug, "theme", blog.ThemeID, "error", err)
	case def == nil:
		slog.Warn("theme not found, using baseline", "slug", slug, "theme", blog.ThemeID)
	default:
		rec.Theme = *def
		return rec, nil
	}

	loadFallbacksTotal.Inc()
	rec.Theme = models.BaselineTheme()
	rec.Fallback = true
	return rec, nil
}

// Forget makes the next Load of slug start a new query instead of joining
// one already in flight. Called when a change notification arrives.
func (l *Loader) Forget(slug string) {
	l.group.Forget(slug)
}
