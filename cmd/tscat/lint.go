// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/tscat/tscat/core/lint"
)

var errLintFailed = errors.New("lint failed")

func newLintCommand(global *globalOptions) *cobra.Command {
	var (
		format      string
		minSeverity string
		failOn      string
		disabled    []string
		jobs        int
	)

	cmd := &cobra.Command{
		Use:   "lint PATH...",
		Short: "Check catalogs for problems",
		Long: `Check .ts catalogs for structural problems and translation mistakes such as
missing placeholders or mismatched markup. Directories are expanded to the
.ts files they contain. The exit status is non-zero when a finding reaches
the --fail-on severity.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := lint.Options{Domain: global.domain, Concurrency: jobs}

			var err error

			if opts.MinSeverity, err = lint.ParseSeverity(minSeverity); err != nil {
				return err
			}

			threshold, err := lint.ParseSeverity(failOn)
			if err != nil {
				return err
			}

			for _, name := range disabled {
				rule := lint.Rule(name)
				if _, ok := lint.Rules[rule]; !ok {
					return fmt.Errorf("unknown rule %q", name)
				}

				opts.Disabled = append(opts.Disabled, rule)
			}

			paths, err := catalogPaths(args)
			if err != nil {
				return err
			}

			report, err := lint.Run(cmd.Context(), paths, opts)
			if err != nil {
				return err
			}

			if err := report.Write(cmd.OutOrStdout(), format); err != nil {
				return err
			}

			if report.Failed(threshold) {
				return fmt.Errorf("%w: findings at or above %s", errLintFailed, threshold)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "info", "drop findings below this severity")
	cmd.Flags().StringVar(&failOn, "fail-on", "error", "exit non-zero on findings at or above this severity")
	cmd.Flags().StringSliceVar(&disabled, "disable", nil, "rules to skip, comma separated")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "catalogs checked in parallel, 0 for GOMAXPROCS")

	return cmd
}
