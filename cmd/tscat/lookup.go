// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/ts"
	"codeberg.org/tscat/tscat/i18n"
)

type lookupOutput struct {
	i18n.Result
	Language string `json:"language"`
}

func newLookupCommand(global *globalOptions) *cobra.Command {
	var (
		dir        string
		lang       string
		key        ts.Key
		count      int
		unfinished bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "lookup SOURCE",
		Short: "Translate a message the way the application would",
		Long: `Load the catalogs in --dir, pick the best match for --lang and translate
SOURCE. Untranslated messages print the source text. With -n the numerus form
for that count is selected and %n is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := i18n.ParseLocale(lang)
			if err != nil {
				return fmt.Errorf("invalid language %q: %w", lang, err)
			}

			config.Global.Catalogs.IncludeUnfinished = unfinished

			if err := i18n.Setup(os.DirFS(dir), ".", global.domain); err != nil {
				return err
			}

			key.Source = args[0]
			res := i18n.Lookup(tag, key, count)

			if !asJSON {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Text)

				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(lookupOutput{Result: res, Language: res.Language.String()})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory holding the catalogs")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "requested language, for example pl or zh_CN (required)")
	cmd.Flags().StringVar(&key.Context, "context", "", "message context")
	cmd.Flags().StringVar(&key.Comment, "comment", "", "disambiguation comment")
	cmd.Flags().IntVarP(&count, "count", "n", -1, "count for numerus messages")
	cmd.Flags().BoolVar(&unfinished, "unfinished", false, "use unfinished translations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")

	_ = cmd.MarkFlagRequired("lang")

	return cmd
}
