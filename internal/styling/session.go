// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package styling keeps live documents styled. A Session owns one surface
// and re-resolves the blog's tokens whenever the record, the page type, the
// dark mode state or a preview changes. Refreshes are ordered by sequence
// number: only the most recently initiated one may apply its result.
package styling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/preference"
	"inkwell/internal/surface"
	"inkwell/internal/theme"
)

// Resolution triggers, used as metric labels.
const (
	triggerMount    = "mount"
	triggerRefresh  = "refresh"
	triggerNavigate = "navigate"
	triggerDark     = "dark"
	triggerPreview  = "preview"
)

// ErrSessionClosed is returned by operations on an unmounted session.
var ErrSessionClosed = errors.New("session closed")

// RecordLoader loads the blog and theme for a slug.
type RecordLoader interface {
	Load(ctx context.Context, slug string) (Record, error)
}

// MountRequest describes a new styling scope.
type MountRequest struct {
	Slug    string
	Page    models.PageType
	Visitor string
	// OSDark is the browser's reported color scheme at mount time.
	OSDark bool
}

// Session styles one document of one blog.
type Session struct {
	id      string
	slug    string
	visitor string
	deps    *deps
	surface *surface.Surface

	mu      sync.Mutex
	page    models.PageType
	record  Record
	dark    *theme.DarkMode
	preview *models.BrandColors
	applied theme.TokenSet
	seq     uint64
	closed  bool

	// mounting is set until the first record is applied. A refresh requested
	// meanwhile sets missed, and mount reloads once it has applied.
	mounting bool
	missed   bool
}

// deps are shared by every session of a coordinator.
type deps struct {
	loader    RecordLoader
	writer    BlogWriter
	prefs     preference.Store
	sheets    *theme.Stylesheets
	publisher Publisher
}

func newSession(d *deps, req MountRequest) *Session {
	return &Session{
		id:      uuid.NewString(),
		slug:    req.Slug,
		visitor: req.Visitor,
		deps:    d,
		surface: surface.New(),
		page:     req.Page,
		applied:  theme.TokenSet{},
		mounting: true,
	}
}

// mount loads the record and the visitor's stored mode, then applies. If a
// change notification arrived during the load it refreshes once more.
func (s *Session) mount(ctx context.Context, osDark bool) error {
	rec, err := s.deps.loader.Load(ctx, s.slug)
	if err != nil {
		return err
	}

	var persisted models.ColorMode
	if s.visitor != "" && s.deps.prefs != nil {
		persisted, err = s.deps.prefs.Get(ctx, s.visitor, s.slug)
		if err != nil {
			// A missing preference only loses the visitor's choice.
			slog.Warn("preference load failed", "slug", s.slug, "error", err)
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.record = rec
	s.dark = theme.NewDarkMode(rec.Blog.Customization.DarkMode, persisted, osDark)
	s.applyLocked(ctx, triggerMount)
	s.mounting = false
	missed := s.missed
	s.missed = false
	s.mu.Unlock()

	if !missed {
		return nil
	}
	slog.Debug("change arrived during mount, refreshing", "session", s.id, "slug", s.slug)
	if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrSessionClosed) {
		slog.Warn("refresh after mount failed", "session", s.id, "slug", s.slug, "error", err)
	}
	return nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Slug returns the blog the session styles.
func (s *Session) Slug() string { return s.slug }

// Surface returns the session's surface.
func (s *Session) Surface() *surface.Surface { return s.surface }

// Page returns the current page type.
func (s *Session) Page() models.PageType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// ThemeID returns the id of the theme currently applied.
func (s *Session) ThemeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Theme.ID
}

// usesTheme reports whether the session's blog selects themeID, including
// while it is rendered with the baseline fallback. A session still mounting
// may use any theme.
func (s *Session) usesTheme(themeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounting || s.record.Theme.ID == themeID || s.record.Blog.ThemeID == themeID
}

// BlogVersion returns the version of the blog record currently applied.
func (s *Session) BlogVersion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Blog.Version
}

// Tokens returns a copy of the tokens currently projected.
func (s *Session) Tokens() theme.TokenSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied.Clone()
}

// DarkAvailable reports whether the blog offers dark mode.
func (s *Session) DarkAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark != nil && s.dark.Enabled()
}

// DarkEffective reports whether the dark palette is applied.
func (s *Session) DarkEffective() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark != nil && s.dark.Effective()
}

// Refresh reloads the record and re-applies it. If another refresh is
// initiated before this one completes, or the session is re-targeted, the
// loaded result is discarded and the newer refresh wins. On a session that
// is still mounting the refresh is deferred until the mount has applied.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.mounting {
		s.missed = true
		s.mu.Unlock()
		return nil
	}
	s.seq++
	seq := s.seq
	slug := s.slug
	s.mu.Unlock()

	rec, err := s.deps.loader.Load(ctx, slug)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if seq != s.seq || slug != s.slug {
		staleDropsTotal.Inc()
		slog.Debug("stale refresh dropped", "session", s.id, "seq", seq, "latest", s.seq)
		return nil
	}
	if err != nil {
		// Keep the last good styling in place.
		return fmt.Errorf("refresh %s: %w", slug, err)
	}
	if rec.Blog.Version < s.record.Blog.Version {
		staleDropsTotal.Inc()
		slog.Debug("older record dropped", "session", s.id, "version", rec.Blog.Version, "applied", s.record.Blog.Version)
		return nil
	}

	s.record = rec
	s.dark.SetConfig(rec.Blog.Customization.DarkMode)
	s.applyLocked(ctx, triggerRefresh)
	return nil
}

// Navigate switches the session to another page type of the same blog.
func (s *Session) Navigate(ctx context.Context, page models.PageType) error {
	return s.mutate(ctx, triggerNavigate, func() bool {
		if s.page == page {
			return false
		}
		s.page = page
		return true
	})
}

// ToggleDark flips dark mode for this session only.
func (s *Session) ToggleDark(ctx context.Context) error {
	return s.mutate(ctx, triggerDark, func() bool { return s.dark.Toggle() })
}

// SetOSDark records the browser's color scheme.
func (s *Session) SetOSDark(ctx context.Context, dark bool) error {
	return s.mutate(ctx, triggerDark, func() bool { return s.dark.SetOSDark(dark) })
}

// SetMode stores the visitor's mode for this blog and applies it.
func (s *Session) SetMode(ctx context.Context, mode models.ColorMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid color mode %q", mode)
	}
	if s.visitor != "" && s.deps.prefs != nil {
		if err := s.deps.prefs.Set(ctx, s.visitor, s.slug, mode); err != nil {
			return fmt.Errorf("store mode: %w", err)
		}
	}
	return s.mutate(ctx, triggerDark, func() bool {
		s.dark.SetPersisted(mode)
		// The stored mode may equal the effective state while still
		// clearing an override, so always re-apply.
		return true
	})
}

// Unmount removes everything the session projected and closes it.
func (s *Session) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.seq++

	applied := s.applied
	s.surface.Update(func(e *surface.Editor) {
		e.Teardown(applied)
		e.SetIdentity("", "")
		e.SetDark(false)
		e.RemoveElement(surface.StyleID)
		e.RemoveElement(surface.FontLinkID)
	})
	s.applied = theme.TokenSet{}
}

// mutate runs change under the lock and re-applies when it reports a change.
func (s *Session) mutate(ctx context.Context, trigger string, change func() bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if change() {
		s.applyLocked(ctx, trigger)
	}
	return nil
}

// applyLocked resolves the current state and fully replaces the surface's
// styling in one revision. Tokens from the previous set that are absent
// from the new one are torn down, so dark-only tokens vanish when switching
// to light.
func (s *Session) applyLocked(ctx context.Context, trigger string) {
	def := s.record.Theme
	custom := s.record.Blog.Customization
	if s.preview != nil {
		custom.BrandColors = custom.BrandColors.Merge(*s.preview)
	}
	dark := s.dark.Effective()

	tokens := theme.Resolve(def, custom, dark)
	css := s.deps.sheets.For(ctx, def, s.page)
	fonts := theme.GoogleFontsURL(def, custom)
	stale := s.applied.Without(tokens)

	s.surface.Update(func(e *surface.Editor) {
		e.Teardown(stale)
		e.Project(tokens)
		e.SetIdentity(def.WithDefaults().ID, string(s.page))
		e.SetDark(dark)
		e.Inject(css)
		e.SetFontLink(fonts)
	})
	s.applied = tokens

	resolutionsTotal.WithLabelValues(trigger).Inc()
	slog.Debug("styles applied",
		"session", s.id,
		"slug", s.slug,
		"theme", def.ID,
		"page", s.page,
		"dark", dark,
		"preview", s.preview != nil,
		"trigger", trigger,
	)
}
