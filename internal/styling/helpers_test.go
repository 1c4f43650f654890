// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styling

import (
	"context"
	"errors"
	"sync"

	"inkwell/internal/feed"
	"inkwell/internal/models"
	"inkwell/internal/theme"
)

type fakeBlogs struct {
	mu    sync.Mutex
	blogs map[string]models.Blog
	err   error
}

func newFakeBlogs(blogs ...models.Blog) *fakeBlogs {
	f := &fakeBlogs{blogs: map[string]models.Blog{}}
	for _, b := range blogs {
		f.blogs[b.Slug] = b
	}
	return f
}

func (f *fakeBlogs) FindBySlug(_ context.Context, slug string) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.blogs[slug]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBlogs) UpdateCustomization(_ context.Context, slug string, c models.Customization) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[slug]
	if !ok {
		return nil, nil
	}
	b.Customization = c
	b.Version++
	f.blogs[slug] = b
	return &b, nil
}

// edit changes a stored blog and bumps its version.
func (f *fakeBlogs) edit(slug string, fn func(b *models.Blog)) models.Blog {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.blogs[slug]
	fn(&b)
	b.Version++
	f.blogs[slug] = b
	return b
}

type fakeThemes struct {
	mu     sync.Mutex
	themes map[string]models.ThemeDefinition
}

func newFakeThemes(themes ...models.ThemeDefinition) *fakeThemes {
	f := &fakeThemes{themes: map[string]models.ThemeDefinition{}}
	for _, t := range themes {
		f.themes[t.ID] = t
	}
	return f
}

func (f *fakeThemes) FindByID(_ context.Context, id string) (*models.ThemeDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.themes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeThemes) edit(id string, fn func(t *models.ThemeDefinition)) models.ThemeDefinition {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.themes[id]
	fn(&t)
	t.Version++
	f.themes[id] = t
	return t
}

// gatedLoader hands out queued records. A call whose gate is non-nil blocks
// until the gate is closed.
type gatedLoader struct {
	mu      sync.Mutex
	queue   []gatedResult
	started chan int
	calls   int
}

type gatedResult struct {
	rec  Record
	err  error
	gate chan struct{}
}

func (l *gatedLoader) push(r gatedResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, r)
}

func (l *gatedLoader) Load(ctx context.Context, _ string) (Record, error) {
	l.mu.Lock()
	if len(l.queue) == 0 {
		l.mu.Unlock()
		return Record{}, errors.New("no queued record")
	}
	r := l.queue[0]
	l.queue = l.queue[1:]
	l.calls++
	n := l.calls
	l.mu.Unlock()

	if l.started != nil {
		l.started <- n
	}
	if r.gate != nil {
		select {
		case <-r.gate:
		case <-ctx.Done():
			return Record{}, ctx.Err()
		}
	}
	return r.rec, r.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []feed.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e feed.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func oceanTheme() models.ThemeDefinition {
	return models.ThemeDefinition{
		ID:      "ocean",
		Name:    "Ocean",
		Version: 1,
		Styles: models.ThemeStyles{
			PrimaryColor:   "#2563eb",
			SecondaryColor: "#f8fafc",
			AccentColor:    "#3b82f6",
		},
	}
}

func minimalTheme() models.ThemeDefinition {
	return models.ThemeDefinition{
		ID:      "minimal",
		Name:    "Minimal",
		Version: 1,
		Styles: models.ThemeStyles{
			PrimaryColor: "#111827",
			Layout:       models.LayoutMinimal,
			Shadow:       models.ShadowNone,
		},
	}
}

func testBlog(slug, themeID string) models.Blog {
	return models.Blog{Slug: slug, Name: slug, ThemeID: themeID, Version: 1}
}

func record(blog models.Blog, def models.ThemeDefinition) Record {
	return Record{Blog: blog, Theme: def}
}

// sessionWith builds a mounted session around a gated loader whose first
// queued result is rec.
func sessionWith(rec Record, page models.PageType) (*Session, *gatedLoader) {
	loader := &gatedLoader{}
	loader.push(gatedResult{rec: rec})
	s := newSession(&deps{loader: loader, sheets: theme.NewStylesheets(nil)}, MountRequest{Slug: rec.Blog.Slug, Page: page})
	if err := s.mount(context.Background(), false); err != nil {
		panic(err)
	}
	return s, loader
}
