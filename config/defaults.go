// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default HTTP cache max age in seconds.
	defaultHTTPCacheMaxAgeSeconds = 60

	// Default watch debounce in milliseconds.
	defaultWatchDebounceMs = 300

	// Default idle time before a client's limiter is dropped, in minutes.
	defaultLimiterMaxIdleMinutes = 10
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8383"

	cfg.Catalogs.Dir = "./translations"
	cfg.Catalogs.Domain = ""
	cfg.Catalogs.Watch = false
	cfg.Catalogs.WatchDebounce = defaultWatchDebounceMs * time.Millisecond
	cfg.Catalogs.IncludeUnfinished = false

	cfg.Lint.MinSeverity = "info"

	cfg.Cache.Enabled = true
	cfg.Cache.Size = 64
	cfg.Cache.Compress = true

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = 20
	cfg.Limiter.Burst = 40
	cfg.Limiter.MaxIdle = defaultLimiterMaxIdleMinutes * time.Minute

	cfg.Internationalization.StrictMissingKeys = false
}
