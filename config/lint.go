// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/tscat/tscat/core/lint"

// LintOptions converts the Lint and Catalogs sections to lint options.
// The values were checked by validateAndSet.
func (cfg *ServerConfig) LintOptions() lint.Options {
	sev, _ := lint.ParseSeverity(cfg.Lint.MinSeverity)

	opts := lint.Options{Domain: cfg.Catalogs.Domain, MinSeverity: sev}
	for _, r := range cfg.Lint.Disabled {
		opts.Disabled = append(opts.Disabled, lint.Rule(r))
	}

	return opts
}
