// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"TSCAT_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"TSCAT_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"TSCAT_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"TSCAT_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"TSCAT_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"TSCAT_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
		// Bearer token required by /metrics. Empty leaves it open.
		MetricsToken string `env:"TSCAT_METRICS_TOKEN" yaml:"metricsToken"`
	} `yaml:"basic"`

	Catalogs struct {
		Dir    string `env:"TSCAT_CATALOG_DIR,overwrite" yaml:"dir"`
		Domain string `env:"TSCAT_CATALOG_DOMAIN,overwrite" yaml:"domain"`
		// Reload catalogs when files in Dir change.
		Watch         bool          `env:"TSCAT_CATALOG_WATCH,overwrite" yaml:"watch"`
		WatchDebounce time.Duration `env:"TSCAT_CATALOG_WATCH_DEBOUNCE,overwrite" yaml:"watchDebounce"`
		// Serve unfinished translations that have text instead of the source.
		IncludeUnfinished bool `env:"TSCAT_INCLUDE_UNFINISHED,overwrite" yaml:"includeUnfinished"`
	} `yaml:"catalogs"`

	Lint struct {
		MinSeverity string   `env:"TSCAT_LINT_MIN_SEVERITY,overwrite" yaml:"minSeverity"`
		Disabled    []string `env:"TSCAT_LINT_DISABLED,overwrite" yaml:"disabled"`
	} `yaml:"lint"`

	Cache struct {
		Enabled  bool `env:"TSCAT_CACHE,overwrite" yaml:"enabled"`
		Size     int  `env:"TSCAT_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		Compress bool `env:"TSCAT_CACHE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"cache"`

	HTTPCache struct {
		MaxAge time.Duration `env:"TSCAT_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
	} `yaml:"httpCache"`

	Instance struct {
		StartingTime string `yaml:"-"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"TSCAT_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"TSCAT_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"TSCAT_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"TSCAT_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled bool `env:"TSCAT_LIMITER,overwrite" yaml:"enabled"`
		// Requests per second allowed for each client address.
		Rate    float64       `env:"TSCAT_LIMITER_RATE,overwrite"     yaml:"rate"`
		Burst   int           `env:"TSCAT_LIMITER_BURST,overwrite"    yaml:"burst"`
		PassIPs []string      `env:"TSCAT_LIMITER_PASS_IPS,overwrite" yaml:"passList"`
		MaxIdle time.Duration `env:"TSCAT_LIMITER_MAX_IDLE,overwrite" yaml:"maxIdle"`
	} `yaml:"limiter"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"TSCAT_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration file chosen by resolveConfigPath and
// the environment into cfg.
func (cfg *ServerConfig) LoadConfig() error {
	return cfg.load(resolveConfigPath())
}

// load applies defaults, the YAML file at path, .env and the environment in
// that order, then validates the result and installs the logger.
func (cfg *ServerConfig) load(path string) error {
	cfg.SetDefaults()
	cfg.Build.load()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	steps := []struct {
		name string
		run  func() error
	}{
		{"read " + path, func() error { return cfg.readYAML(path) }},
		{"read .env", useDotEnv},
		{"read environment", func() error { return readEnv(cfg) }},
		{"validate", cfg.validateAndSet},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("config: %s: %w", step.name, err)
		}
	}

	cfg.setupAudit()
	cfg.print()
	cfg.logContainerWarning()

	return nil
}

// quietPaths are probes that are not request-logged outside development.
var quietPaths = []string{"/metrics", "/healthz"}

func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	return !cfg.Development.InDevelopment && slices.ContainsFunc(quietPaths, func(prefix string) bool {
		return strings.HasPrefix(path, prefix)
	})
}

// GetDurationEncoderOption makes the YAML encoder write durations as
// strings like "300ms" instead of nanosecond integers.
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler(func(d time.Duration) ([]byte, error) {
		return yaml.Marshal(d.String())
	})
}

// logContainerWarning warns when the server listens on loopback inside a
// container, where it is unreachable from outside.
func (cfg *ServerConfig) logContainerWarning() {
	if cfg.Basic.UnixSocket == "" && isContainerized() && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a container but host is not a wildcard address; the service may be unreachable")
	}
}

// isContainerized checks for common indicators of a containerized environment.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	return false
}
