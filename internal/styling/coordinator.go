// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styling

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"inkwell/internal/feed"
	"inkwell/internal/preference"
	"inkwell/internal/theme"
)

// DefaultRefreshTimeout bounds a refresh triggered by a feed event.
const DefaultRefreshTimeout = 10 * time.Second

// Config wires a Coordinator.
type Config struct {
	Loader      *Loader
	Writer      BlogWriter
	Preferences preference.Store
	Stylesheets *theme.Stylesheets
	Feed        feed.Feed
}

// Coordinator tracks mounted sessions and routes feed events to them.
type Coordinator struct {
	loader *Loader
	deps   *deps
	feed   feed.Feed

	mu       sync.RWMutex
	sessions map[string]*Session

	inflight sync.WaitGroup
	unsub    func()
}

// NewCoordinator creates a coordinator. Call Start to begin consuming the
// feed.
func NewCoordinator(cfg Config) *Coordinator {
	sheets := cfg.Stylesheets
	if sheets == nil {
		sheets = theme.NewStylesheets(nil)
	}
	var publisher Publisher
	if cfg.Feed != nil {
		publisher = cfg.Feed
	}
	return &Coordinator{
		loader: cfg.Loader,
		deps: &deps{
			loader:    cfg.Loader,
			writer:    cfg.Writer,
			prefs:     cfg.Preferences,
			sheets:    sheets,
			publisher: publisher,
		},
		feed:     cfg.Feed,
		sessions: make(map[string]*Session),
	}
}

// Start subscribes to the feed.
func (c *Coordinator) Start() {
	if c.feed == nil {
		return
	}
	c.unsub = c.feed.Subscribe(c.handle)
}

// Stop unsubscribes from the feed and waits for in-flight refreshes.
func (c *Coordinator) Stop() {
	if c.unsub != nil {
		c.unsub()
	}
	c.inflight.Wait()
}

// Wait blocks until every refresh started by a feed event has finished.
func (c *Coordinator) Wait() {
	c.inflight.Wait()
}

// Mount creates, registers and styles a session. The session is registered
// before its first load so feed events arriving during the load reach it.
func (c *Coordinator) Mount(ctx context.Context, req MountRequest) (*Session, error) {
	s := newSession(c.deps, req)

	c.mu.Lock()
	c.sessions[s.id] = s
	n := len(c.sessions)
	c.mu.Unlock()
	sessionsActive.Set(float64(n))

	if err := s.mount(ctx, req.OSDark); err != nil {
		c.forget(s)
		return nil, err
	}

	slog.Info("session mounted", "session", s.id, "slug", s.slug, "page", req.Page, "sessions", n)
	return s, nil
}

// Unmount tears a session down and forgets it.
func (c *Coordinator) Unmount(s *Session) {
	s.Unmount()
	n := c.forget(s)
	slog.Info("session unmounted", "session", s.id, "slug", s.slug, "sessions", n)
}

func (c *Coordinator) forget(s *Session) int {
	c.mu.Lock()
	delete(c.sessions, s.id)
	n := len(c.sessions)
	c.mu.Unlock()

	sessionsActive.Set(float64(n))
	return n
}

// Len returns the number of mounted sessions.
func (c *Coordinator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// handle routes one feed event: blog events to the sessions of that blog,
// theme events to every session currently using the theme.
func (c *Coordinator) handle(_ context.Context, e feed.Event) {
	feedEventsTotal.WithLabelValues(string(e.Kind)).Inc()

	var targets []*Session
	switch e.Kind {
	case feed.KindTheme:
		c.deps.sheets.Invalidate(context.Background(), e.Key)
		targets = c.matching(func(s *Session) bool { return s.usesTheme(e.Key) })
	case feed.KindBlog:
		targets = c.matching(func(s *Session) bool {
			return s.slug == e.Key && (e.Version == 0 || s.BlogVersion() < e.Version)
		})
	default:
		slog.Warn("unknown feed event", "event", e.String())
		return
	}

	slugs := map[string]bool{}
	for _, s := range targets {
		slugs[s.slug] = true
	}
	for slug := range slugs {
		c.loader.Forget(slug)
	}

	slog.Debug("feed event routed", "event", e.String(), "sessions", len(targets))
	for _, s := range targets {
		c.inflight.Add(1)
		go func() {
			defer c.inflight.Done()
			ctx, cancel := context.WithTimeout(context.Background(), DefaultRefreshTimeout)
			defer cancel()
			if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrSessionClosed) {
				slog.Warn("refresh failed", "session", s.id, "slug", s.slug, "error", err)
			}
		}()
	}
}

func (c *Coordinator) matching(match func(*Session) bool) []*Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Session
	for _, s := range c.sessions {
		if match(s) {
			out = append(out, s)
		}
	}
	return out
}
