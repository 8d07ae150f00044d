// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// redacted returns a copy of cfg without secrets.
func (cfg *ServerConfig) redacted() ServerConfig {
	out := *cfg

	if out.Basic.MetricsToken != "" {
		out.Basic.MetricsToken = redactedValue
	}

	return out
}

// print logs the build and dumps the effective configuration to stderr.
func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("catalogs", cfg.Catalogs.Dir).
		Msg("Starting tscat")

	dump, err := yaml.MarshalWithOptions(cfg.redacted(), GetDurationEncoderOption())
	if err != nil {
		log.Error().Err(err).Msg("Failed to render configuration")

		return
	}

	fmt.Fprintf(os.Stderr, "# effective configuration\n%s\n", dump)
}
