// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last file event before
// reloading.
const DefaultDebounce = 300 * time.Millisecond

// Watch reloads the catalogs of domain from the directory dir whenever a .ts
// file in it is written, created, renamed or removed. onReload, if not nil,
// is called after every successful reload.
//
// Rapid bursts of events are coalesced. A reload that fails, for example
// because a file is only partly written, keeps the previous catalogs and is
// logged.
//
// Watch blocks until ctx is done.
func Watch(ctx context.Context, dir, domain string, debounce time.Duration, onReload func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch catalog directory: %w", err)
	}

	Logger.Info().Str("dir", dir).Msg("Watching catalogs for changes")

	reload := make(chan struct{}, 1)

	timer := time.AfterFunc(time.Hour, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			Logger.Info().Str("dir", dir).Msg("Catalog watcher stopped")

			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !strings.HasSuffix(event.Name, ".ts") ||
				event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			Logger.Debug().
				Str("file", filepath.Base(event.Name)).
				Str("op", event.Op.String()).
				Msg("Catalog file changed")

			timer.Reset(debounce)

		case <-reload:
			if err := Setup(os.DirFS(dir), ".", domain); err != nil {
				reloadsTotal.WithLabelValues("failure").Inc()

				Logger.Error().Err(err).Str("dir", dir).Msg("Catalog reload failed")

				continue
			}

			reloadsTotal.WithLabelValues("success").Inc()

			Logger.Info().Str("dir", dir).Msg("Reloaded catalogs")

			if onReload != nil {
				onReload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			Logger.Error().Err(err).Str("dir", dir).Msg("Catalog watcher error")
		}
	}
}
