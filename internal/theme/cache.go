// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go keeps generated stylesheets in memory (L1) and optionally in a
// shared cache (L2). Entries are keyed by theme id, theme version and page
// type, so a theme update automatically produces a miss.
package theme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"inkwell/internal/models"
)

// SharedCache is a cross-process stylesheet cache such as Valkey.
type SharedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, css []byte)
	InvalidateTheme(ctx context.Context, themeID string)
}

// cacheKey uniquely identifies a generated stylesheet.
type cacheKey struct {
	themeID string
	version int
	page    models.PageType
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%s:%d:%s", k.themeID, k.version, k.page)
}

// Stylesheets generates page stylesheets through a two-level cache.
type Stylesheets struct {
	mu      sync.RWMutex
	entries map[cacheKey]string
	shared  SharedCache
}

// NewStylesheets creates an empty stylesheet cache. shared may be nil.
func NewStylesheets(shared SharedCache) *Stylesheets {
	return &Stylesheets{
		entries: make(map[cacheKey]string),
		shared:  shared,
	}
}

// For returns the stylesheet for def and page, generating it on a miss.
func (s *Stylesheets) For(ctx context.Context, def models.ThemeDefinition, page models.PageType) string {
	def = def.WithDefaults()
	key := cacheKey{themeID: def.ID, version: def.Version, page: page}

	s.mu.RLock()
	css, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return css
	}

	if s.shared != nil {
		if cached, ok := s.shared.Get(ctx, key.String()); ok {
			css = string(cached)
			s.put(key, css)
			return css
		}
	}

	css = Generate(def, page)
	s.put(key, css)
	if s.shared != nil {
		s.shared.Set(ctx, key.String(), []byte(css))
	}
	return css
}

func (s *Stylesheets) put(key cacheKey, css string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = css
	slog.Debug("stylesheet cached", "theme", key.themeID, "version", key.version, "page", key.page, "size", len(s.entries))
}

// Invalidate drops every cached stylesheet of a theme. Called when the
// theme record changes.
func (s *Stylesheets) Invalidate(ctx context.Context, themeID string) {
	s.mu.Lock()
	for k := range s.entries {
		if k.themeID == themeID {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()

	if s.shared != nil {
		s.shared.InvalidateTheme(ctx, themeID)
	}
	slog.Debug("stylesheet cache invalidated", "theme", themeID)
}

// Len returns the number of in-memory entries.
func (s *Stylesheets) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
