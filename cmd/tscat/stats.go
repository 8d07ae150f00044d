// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"github.com/spf13/cobra"

	"codeberg.org/tscat/tscat/core/stats"
	"codeberg.org/tscat/tscat/core/ts"
)

func newStatsCommand() *cobra.Command {
	var (
		format     string
		perContext bool
	)

	cmd := &cobra.Command{
		Use:   "stats PATH...",
		Short: "Show translation progress",
		Long:  `Count finished, unfinished, empty and obsolete messages per catalog and report the completion ratio.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := catalogPaths(args)
			if err != nil {
				return err
			}

			files := make([]stats.FileStats, 0, len(paths))

			for _, path := range paths {
				cat, err := ts.ParseFile(path)
				if err != nil {
					return err
				}

				files = append(files, stats.Compute(path, cat))
			}

			return stats.Summarize(files).Write(cmd.OutOrStdout(), format, perContext)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVarP(&perContext, "contexts", "c", false, "break the counts down per context")

	return cmd
}
