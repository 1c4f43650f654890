// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwell/internal/color"
	"inkwell/internal/feed"
	"inkwell/internal/models"
)

// ErrNoPreview is returned by SavePreview outside preview mode.
var ErrNoPreview = errors.New("no preview in progress")

// Publisher announces record changes.
type Publisher interface {
	Publish(ctx context.Context, e feed.Event) error
}

// EnterPreview overlays candidate brand colors on the persisted
// customization without storing them. Calling it again replaces the previous
// candidate. Invalid colors are rejected.
func (s *Session) EnterPreview(ctx context.Context, candidate models.BrandColors) error {
	normalized, err := normalizeBrandColors(candidate)
	if err != nil {
		return err
	}
	return s.mutate(ctx, triggerPreview, func() bool {
		s.preview = &normalized
		return true
	})
}

// ExitPreview drops the candidate and restores the persisted styling.
func (s *Session) ExitPreview(ctx context.Context) error {
	return s.mutate(ctx, triggerPreview, func() bool {
		if s.preview == nil {
			return false
		}
		s.preview = nil
		return true
	})
}

// InPreview reports whether a candidate is overlaid.
func (s *Session) InPreview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview != nil
}

// SavePreview persists the candidate through the blog store, announces the
// new blog version and leaves preview mode.
func (s *Session) SavePreview(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.preview == nil {
		s.mu.Unlock()
		return ErrNoPreview
	}
	custom := s.record.Blog.Customization
	custom.BrandColors = custom.BrandColors.Merge(*s.preview)
	s.mu.Unlock()

	if s.deps.writer == nil {
		return fmt.Errorf("save preview: no blog writer configured")
	}
	blog, err := s.deps.writer.UpdateCustomization(ctx, s.slug, custom)
	if err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	if blog == nil {
		return fmt.Errorf("save preview %s: %w", s.slug, ErrBlogNotFound)
	}

	s.mu.Lock()
	if !s.closed {
		if blog.Version >= s.record.Blog.Version {
			s.record.Blog = *blog
		}
		s.preview = nil
		s.dark.SetConfig(s.record.Blog.Customization.DarkMode)
		s.applyLocked(ctx, triggerPreview)
	}
	s.mu.Unlock()

	slog.Info("preview saved", "slug", s.slug, "version", blog.Version)
	if s.deps.publisher != nil {
		e := feed.Event{Kind: feed.KindBlog, Key: s.slug, Version: blog.Version}
		if err := s.deps.publisher.Publish(ctx, e); err != nil {
			// Stored already; other viewers catch up on their next refresh.
			slog.Warn("publish blog update failed", "slug", s.slug, "error", err)
		}
	}
	return nil
}

func normalizeBrandColors(b models.BrandColors) (models.BrandColors, error) {
	fields := []*string{
		&b.Primary, &b.Secondary, &b.Accent,
		&b.HeaderBg, &b.HeaderText, &b.FooterBg, &b.FooterText,
		&b.SiteBg, &b.SiteText,
	}
	for _, f := range fields {
		if *f == "" {
			continue
		}
		n, err := color.Normalize(*f)
		if err != nil {
			return models.BrandColors{}, err
		}
		*f = n
	}
	return b, nil
}
