// Package main is the entry point for the Inkwell styling server.
// It loads configuration, connects to Postgres and Valkey, seeds the theme
// catalog, wires the styling coordinator to the update feed and serves HTTP
// until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"inkwell/internal/cache"
	"inkwell/internal/catalog"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/feed"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/preference"
	"inkwell/internal/router"
	"inkwell/internal/store"
	"inkwell/internal/styling"
	"inkwell/internal/theme"
)

// Rate limits for API writes (per client IP) and live messages (per
// connection).
const (
	writeLimit        = 60
	writeWindow       = time.Minute
	liveMessageLimit  = 30
	liveMessageWindow = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"log_level", cfg.LogLevel.String(),
	)

	if err := run(cfg); err != nil {
		slog.Error("server terminated with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}

func run(cfg *config.Config) error {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	themes, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load theme catalog: %w", err)
	}
	if err := database.SeedThemes(db, themes); err != nil {
		return fmt.Errorf("seed themes: %w", err)
	}
	if cfg.SeedDemo && len(themes) > 0 {
		if err := database.SeedDemoBlog(db, themes[0].ID); err != nil {
			return fmt.Errorf("seed demo blog: %w", err)
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer valkeyClient.Close()

	themeStore := store.NewThemeStore(db)
	blogStore := store.NewBlogStore(db)
	prefs := preference.NewValkeyStore(valkeyClient, preference.DefaultTTL)
	updates := feed.NewValkeyFeed(valkeyClient)

	// L1 in-process stylesheet cache backed by the shared L2 cache in Valkey.
	sheets := theme.NewStylesheets(cache.NewStylesheetCache(valkeyClient, cfg.StylesheetTTL))

	loader := styling.NewLoader(blogStore, themeStore)
	coord := styling.NewCoordinator(styling.Config{
		Loader:      loader,
		Writer:      blogStore,
		Preferences: prefs,
		Stylesheets: sheets,
		Feed:        updates,
	})
	coord.Start()
	defer coord.Stop()

	writeLimiter := middleware.NewRateLimiter(writeLimit, writeWindow)
	defer writeLimiter.Stop()
	liveLimiter := middleware.NewRateLimiter(liveMessageLimit, liveMessageWindow)
	defer liveLimiter.Stop()

	r := router.New(router.Handlers{
		API:           handlers.NewAPI(themeStore, blogStore, prefs, updates),
		Stylesheet:    handlers.NewStylesheet(loader, sheets, prefs),
		Live:          handlers.NewLive(coord, cfg.AllowedOrigins, liveLimiter),
		WriteLimit:    writeLimiter,
		SecureCookies: !cfg.IsDev(),
	})

	// Shutdown does not track hijacked connections, so live sockets watch
	// this context instead.
	connCtx, closeLive := context.WithCancel(context.Background())
	defer closeLive()

	// No WriteTimeout: live connections stay open for the whole visit.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return connCtx },
	}
	srv.RegisterOnShutdown(closeLive)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := updates.Run(ctx); err != nil {
			return fmt.Errorf("update feed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
