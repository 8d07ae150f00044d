// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"os"
)

const (
	configFlag        = "config"
	defaultConfigPath = "./config.yaml"
)

// resolveConfigPath picks the configuration file: an explicit -config flag,
// then TSCAT_CONFIGFILE, then ./config.yaml or, failing that, ./config.yml.
func resolveConfigPath() string {
	if flag.Lookup(configFlag) == nil {
		flag.String(configFlag, defaultConfigPath, "Path to a tscat server configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	explicit := false

	flag.Visit(func(f *flag.Flag) { explicit = explicit || f.Name == configFlag })

	if explicit {
		return flag.Lookup(configFlag).Value.String()
	}

	if path := os.Getenv("TSCAT_CONFIGFILE"); path != "" {
		return path
	}

	for _, path := range []string{defaultConfigPath, "./config.yml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return defaultConfigPath
}
