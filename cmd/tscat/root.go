// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/audit"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	domain  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:     "tscat",
		Short:   "Qt Linguist catalog toolkit",
		Long:    `tscat lints, summarises, converts and queries Qt Linguist .ts translation catalogs.`,
		Version: config.BuildVersion,

		SilenceUsage: true,

		PersistentPreRun: func(*cobra.Command, []string) {
			audit.SetDefaultLogger()

			level := zerolog.WarnLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}

			zerolog.SetGlobalLevel(level)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.domain, "domain", "d", "", "catalog domain, the file name prefix before _<locale>.ts")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")

	cmd.AddCommand(
		newLintCommand(opts),
		newStatsCommand(),
		newLookupCommand(opts),
		newExportPoCommand(),
		newImportPoCommand(),
		newFmtCommand(),
	)

	return cmd
}
