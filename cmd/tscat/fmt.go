// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/tscat/tscat/core/ts"
)

var errNotFormatted = errors.New("catalogs are not formatted")

func newFmtCommand() *cobra.Command {
	var (
		list  bool
		check bool
	)

	cmd := &cobra.Command{
		Use:   "fmt PATH...",
		Short: "Rewrite catalogs in the canonical lupdate layout",
		Long: `Decode and re-encode catalogs so they use the layout lupdate writes. Files
already in that layout are not touched. With --check nothing is written and
the exit status is non-zero when a file would change.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := catalogPaths(args)
			if err != nil {
				return err
			}

			changed := 0

			for _, path := range paths {
				formatted, same, err := formatFile(path)
				if err != nil {
					return err
				}

				if same {
					continue
				}

				changed++

				if list || check {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}

				if check {
					continue
				}

				if err := writeAtomic(path, func(w io.Writer) error {
					_, err := w.Write(formatted)

					return err
				}); err != nil {
					return err
				}

				log.Debug().Str("path", path).Msg("Formatted catalog")
			}

			if check && changed > 0 {
				return fmt.Errorf("%w: %d file(s)", errNotFormatted, changed)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "print the files that change")
	cmd.Flags().BoolVar(&check, "check", false, "only report files that would change")

	return cmd
}

// formatFile returns the canonical encoding of the catalog at path and
// whether it matches the file contents.
func formatFile(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- formatting user supplied catalogs
	if err != nil {
		return nil, false, err
	}

	cat, err := ts.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := ts.Encode(&buf, cat); err != nil {
		return nil, false, err
	}

	return buf.Bytes(), bytes.Equal(buf.Bytes(), data), nil
}
