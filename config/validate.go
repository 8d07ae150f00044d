// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"os/user"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/tscat/tscat/core/lint"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errCatalogDirRequired           = errors.New("catalogs.dir is required")
	errCatalogDirNotDirectory       = errors.New("catalogs.dir is not a directory")
	errInvalidCatalogDomain         = errors.New("catalogs.domain must not contain path separators")
	errInvalidMinSeverity           = errors.New("invalid Lint.MinSeverity")
	errUnknownLintRule              = errors.New("unknown rule in Lint.Disabled")
	errInvalidCacheSize             = errors.New("cache size must be positive when the cache is enabled")
	errInvalidLimiterRate           = errors.New("limiter rate must be positive")
	errInvalidLimiterBurst          = errors.New("limiter burst must be at least 1")
	errInvalidPassIP                = errors.New("invalid address in Limiter.PassIPs")
	errInvalidLogLevel              = errors.New("invalid Log.Level")
	errInvalidLogFormat             = errors.New("invalid Log.Format")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
)

// validateAndSet validates the server configuration and populates some fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	if cfg.Catalogs.Dir == "" {
		return errCatalogDirRequired
	}

	fi, err := os.Stat(cfg.Catalogs.Dir)
	if err != nil {
		return fmt.Errorf("catalogs.dir: %w", err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", errCatalogDirNotDirectory, cfg.Catalogs.Dir)
	}

	if strings.ContainsAny(cfg.Catalogs.Domain, `/\`) {
		return errInvalidCatalogDomain
	}

	if _, err := lint.ParseSeverity(cfg.Lint.MinSeverity); err != nil {
		return fmt.Errorf("%w: %w", errInvalidMinSeverity, err)
	}

	for _, rule := range cfg.Lint.Disabled {
		if _, ok := lint.Rules[lint.Rule(rule)]; !ok {
			return fmt.Errorf("%w: %q", errUnknownLintRule, rule)
		}
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	if level, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || level == zerolog.NoLevel {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	// Skip validating Limiter configuration if it's not enabled
	if !cfg.Limiter.Enabled {
		return nil
	}

	if cfg.Limiter.Rate <= 0 {
		return errInvalidLimiterRate
	}

	if cfg.Limiter.Burst < 1 {
		return errInvalidLimiterBurst
	}

	for _, entry := range cfg.Limiter.PassIPs {
		_, addrErr := netip.ParseAddr(entry)
		_, prefixErr := netip.ParsePrefix(entry)

		if addrErr != nil && prefixErr != nil {
			return fmt.Errorf("%w: %q", errInvalidPassIP, entry)
		}
	}

	return nil
}

// validateListener fills the TCP defaults, or checks the unix socket
// settings when a socket path is configured.
func (cfg *ServerConfig) validateListener() error {
	b := &cfg.Basic

	if b.UnixSocket == "" {
		if b.Host == "" {
			b.Host = "localhost"
		}

		if b.Port == "" {
			b.Port = "8383"
		}

		return nil
	}

	if b.Host != "" || b.Port != "" {
		return errUnixSocketWithHostPort
	}

	mode, err := parseSocketMode(b.RawUnixSocketPermissions)
	if err != nil {
		return err
	}

	b.UnixSocketPermissions = mode

	if !accountExists(b.UnixSocketUser, user.Lookup, user.LookupId) {
		return fmt.Errorf("%w: %s", errUnixSocketUserDoesNotExist, b.UnixSocketUser)
	}

	if !accountExists(b.UnixSocketGroup, user.LookupGroup, user.LookupGroupId) {
		return fmt.Errorf("%w: %s", errUnixSocketGroupDoesNotExist, b.UnixSocketGroup)
	}

	return nil
}

// parseSocketMode accepts an octal mode such as "660" or "0660", or a
// symbolic one such as "rw-rw----". Empty means 0o666.
func parseSocketMode(raw string) (os.FileMode, error) {
	switch {
	case raw == "":
		return 0o666, nil
	case fileModeOctalRegexp.MatchString(raw):
		n, err := strconv.ParseUint(raw, 8, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errUnixSocketInvalidPermissions, err)
		}

		return os.FileMode(n), nil
	case fileModeStringRegexp.MatchString(raw):
		var mode os.FileMode

		for _, c := range raw {
			mode <<= 1
			if c != '-' {
				mode |= 1
			}
		}

		return mode, nil
	}

	return 0, fmt.Errorf("%w: %q", errUnixSocketInvalidPermissions, raw)
}

// accountExists looks name up by id when it is numeric and by name
// otherwise. An empty name always exists.
func accountExists[T any](name string, byName, byID func(string) (T, error)) bool {
	if name == "" {
		return true
	}

	lookup := byName
	if digitsRegexp.MatchString(name) {
		lookup = byID
	}

	_, err := lookup(name)

	return err == nil
}
