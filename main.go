// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
tscat serves Qt Linguist translation catalogs over HTTP.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/audit"
	"codeberg.org/tscat/tscat/i18n"
	"codeberg.org/tscat/tscat/server/router"
	"codeberg.org/tscat/tscat/server/routes"
)

// http.Server timeouts (gosec G112).
const (
	readHeaderTimeout = 15 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 30 * time.Second

	shutdownGrace = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("tscat stopped")
	}
}

func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := loadCatalogs(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cat := config.Global.Catalogs; cat.Watch {
		go func() {
			err := i18n.Watch(ctx, cat.Dir, cat.Domain, cat.WatchDebounce, routes.PurgeCache)
			if err != nil {
				log.Error().Err(err).Msg("Catalog watcher stopped")
			}
		}()
	}

	r := router.NewRouter()
	r.DefineRoutes()
	r.RegisterMiddleware()

	return serve(ctx, &http.Server{
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	})
}

// loadCatalogs reads the catalog directory and prepares the export cache.
func loadCatalogs() error {
	cat := config.Global.Catalogs

	if err := i18n.Setup(os.DirFS(cat.Dir), ".", cat.Domain); err != nil {
		return fmt.Errorf("failed to load catalogs from %s: %w", cat.Dir, err)
	}

	log.Info().
		Str("dir", cat.Dir).
		Str("domain", cat.Domain).
		Int("catalogs", len(i18n.Locales())).
		Msg("Loaded catalogs")

	size := 0
	if config.Global.Cache.Enabled {
		size = config.Global.Cache.Size
	}

	if err := routes.SetupCache(size, config.Global.Cache.Compress); err != nil {
		return fmt.Errorf("failed to initialize export cache: %w", err)
	}

	return nil
}

// serve runs srv until it fails or ctx is cancelled, then shuts it down
// within shutdownGrace.
func serve(ctx context.Context, srv *http.Server) error {
	ln, err := listen(ctx)
	if err != nil {
		return err
	}

	errs := make(chan error, 1)

	go func() { errs <- srv.Serve(ln) }()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shut down: %w", err)
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}
