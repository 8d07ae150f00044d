// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/core/audit"
)

const logFilePermissions = 0o644

// setupAudit replaces the global logger according to the Log section.
// Outputs that cannot be opened are reported on stderr and skipped.
func (cfg *ServerConfig) setupAudit() {
	zerolog.SetGlobalLevel(cfg.logLevel())

	var writers []io.Writer

	for _, output := range cfg.Log.Outputs {
		f, err := openLogOutput(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tscat: skipping log output: %v\n", err)

			continue
		}

		if cfg.Log.Format == "json" {
			writers = append(writers, f)
		} else {
			writers = append(writers, audit.ConsoleWriter(f))
		}
	}

	if len(writers) == 0 {
		writers = []io.Writer{audit.ConsoleWriter(os.Stderr)}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}

func (cfg *ServerConfig) logLevel() zerolog.Level {
	if cfg.Development.InDevelopment {
		return zerolog.DebugLevel
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}

// openLogOutput maps the special paths /dev/stdout and /dev/stderr to the
// process streams and opens anything else for appending.
func openLogOutput(path string) (*os.File, error) {
	switch path {
	case "/dev/stdout":
		return os.Stdout, nil
	case "/dev/stderr":
		return os.Stderr, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec G304 -- operator supplied log path
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return f, nil
}
