// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory repositories and a routed test server
// shared by the handler tests. No external services are needed.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/feed"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/preference"
	"inkwell/internal/styling"
	"inkwell/internal/theme"
)

// memThemes is an in-memory ThemeRepo.
type memThemes struct {
	mu     sync.Mutex
	themes map[string]models.ThemeDefinition
}

func (m *memThemes) List(_ context.Context) ([]models.ThemeDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ThemeDefinition
	for _, t := range m.themes {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b models.ThemeDefinition) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *memThemes) FindByID(_ context.Context, id string) (*models.ThemeDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.themes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memThemes) Update(_ context.Context, t models.ThemeDefinition) (*models.ThemeDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.themes[t.ID]
	if !ok {
		return nil, nil
	}
	t.Version = old.Version + 1
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = time.Now()
	m.themes[t.ID] = t
	return &t, nil
}

// memBlogs is an in-memory BlogRepo.
type memBlogs struct {
	mu    sync.Mutex
	blogs map[string]models.Blog
}

func (m *memBlogs) List(context.Context) ([]models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b models.Blog) int { return strings.Compare(a.Slug, b.Slug) })
	return out, nil
}

func (m *memBlogs) FindBySlug(_ context.Context, slug string) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[slug]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memBlogs) UpdateCustomization(_ context.Context, slug string, c models.Customization) (*models.Blog, error) {
	return m.edit(slug, func(b *models.Blog) { b.Customization = c })
}

func (m *memBlogs) SetTheme(_ context.Context, slug, themeID string) (*models.Blog, error) {
	return m.edit(slug, func(b *models.Blog) { b.ThemeID = themeID })
}

func (m *memBlogs) edit(slug string, fn func(*models.Blog)) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[slug]
	if !ok {
		return nil, nil
	}
	fn(&b)
	b.Version++
	b.UpdatedAt = time.Now()
	m.blogs[slug] = b
	return &b, nil
}

// recordingFeed is a Bus that remembers what was published.
type recordingFeed struct {
	*feed.Bus
	mu     sync.Mutex
	events []feed.Event
}

func (f *recordingFeed) Publish(ctx context.Context, e feed.Event) error {
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
	return f.Bus.Publish(ctx, e)
}

func (f *recordingFeed) published() []feed.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.events)
}

func oceanTheme() models.ThemeDefinition {
	return models.ThemeDefinition{
		ID:       "ocean",
		Name:     "Ocean",
		Category: "modern",
		Version:  1,
		Styles: models.ThemeStyles{
			PrimaryColor:    "#0ea5e9",
			SecondaryColor:  "#f0f9ff",
			AccentColor:     "#06b6d4",
			TextColor:       "#0f172a",
			BackgroundColor: "#ffffff",
			Layout:          models.LayoutGrid,
		},
	}
}

func forestTheme() models.ThemeDefinition {
	return models.ThemeDefinition{
		ID:       "forest",
		Name:     "Forest",
		Category: "classic",
		Version:  1,
		Styles:   models.ThemeStyles{PrimaryColor: "#166534", Layout: models.LayoutList},
	}
}

func demoBlog() models.Blog {
	return models.Blog{
		ID:      uuid.New(),
		Slug:    "demo",
		Name:    "Demo",
		ThemeID: "ocean",
		Version: 1,
		Customization: models.Customization{
			BrandColors: models.BrandColors{Primary: "#2563eb"},
			DarkMode:    models.DarkModeConfig{Enabled: true, DefaultMode: models.ModeLight},
		},
	}
}

// testEnv is a fully wired handler stack over in-memory storage.
type testEnv struct {
	themes *memThemes
	blogs  *memBlogs
	prefs  *preference.MemoryStore
	feed   *recordingFeed
	coord  *styling.Coordinator
	router chi.Router
}

func newTestEnv(t *testing.T, limiter *middleware.RateLimiter) *testEnv {
	t.Helper()

	env := &testEnv{
		themes: &memThemes{themes: map[string]models.ThemeDefinition{
			"ocean":  oceanTheme(),
			"forest": forestTheme(),
		}},
		blogs: &memBlogs{blogs: map[string]models.Blog{"demo": demoBlog()}},
		prefs: preference.NewMemoryStore(),
		feed:  &recordingFeed{Bus: feed.NewBus()},
	}

	loader := styling.NewLoader(env.blogs, env.themes)
	sheets := theme.NewStylesheets(nil)
	env.coord = styling.NewCoordinator(styling.Config{
		Loader:      loader,
		Writer:      env.blogs,
		Preferences: env.prefs,
		Stylesheets: sheets,
		Feed:        env.feed,
	})
	env.coord.Start()
	t.Cleanup(env.coord.Stop)

	api := NewAPI(env.themes, env.blogs, env.prefs, env.feed)
	live := NewLive(env.coord, nil, limiter)

	r := chi.NewRouter()
	r.Use(middleware.Visitor(false))
	r.Route("/api", func(r chi.Router) {
		r.Get("/themes", api.ListThemes)
		r.Get("/themes/{id}", api.GetTheme)
		r.Put("/themes/{id}", api.UpdateTheme)
		r.Get("/blogs/{slug}", api.GetBlog)
		r.Put("/blogs/{slug}/customization", api.UpdateCustomization)
		r.Put("/blogs/{slug}/theme", api.SetTheme)
		r.Put("/blogs/{slug}/preference", api.SetPreference)
		r.Handle("/blogs/{slug}/live", live.Editor())
	})
	r.Handle("/blogs/{slug}/theme.css", NewStylesheet(loader, sheets, env.prefs))
	r.Handle("/blogs/{slug}/live", live)
	env.router = r
	return env
}

// do sends a request through the router.
func (e *testEnv) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

const testVisitor = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func visitorCookie() *http.Cookie {
	return &http.Cookie{Name: middleware.VisitorCookieName, Value: testVisitor}
}
