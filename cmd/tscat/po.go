// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/tscat/tscat/core/pofile"
	"codeberg.org/tscat/tscat/core/ts"
)

func newExportPoCommand() *cobra.Command {
	var (
		output  string
		project string
	)

	cmd := &cobra.Command{
		Use:   "export-po CATALOG",
		Short: "Convert a catalog to gettext .po",
		Long: `Write the active messages of CATALOG as a gettext .po file. The context and
disambiguation comment are joined in msgctxt as "Context|comment" and
unfinished translations are marked fuzzy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ts.ParseFile(args[0])
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return pofile.Export(w, cat, pofile.Options{Project: project})
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout if empty")
	cmd.Flags().StringVar(&project, "project", "", "Project-Id-Version header value")

	return cmd
}

func newImportPoCommand() *cobra.Command {
	var (
		output string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import-po CATALOG PO",
		Short: "Apply translations from a gettext .po file",
		Long: `Copy the translations in PO into the matching active messages of CATALOG
and mark them finished. CATALOG is rewritten in place unless --output is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ts.ParseFile(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			res, err := pofile.Import(cat, data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d applied, %d without translation\n", res.Applied, res.Missing)

			if dryRun {
				return nil
			}

			if output == "" {
				output = args[0]
			}

			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return ts.Encode(w, cat)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of CATALOG, - for stdout")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report without writing")

	return cmd
}
