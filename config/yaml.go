// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// readYAML merges the file at path into cfg. A missing file is not an error;
// unknown keys are.
func (cfg *ServerConfig) readYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied config path
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", path).Msg("No YAML configuration file, using defaults and environment")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Loaded configuration file")

	return nil
}
