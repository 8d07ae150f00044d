// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// ts_extract scans Go packages for translatable messages and merges them
// into a Qt Linguist catalog.
//
//	go run ./cmd/ts_extract -o translations/tscat-server_pl.ts ./...
//
// Locations are written relative to the catalog, as lupdate does.
package main

import (
	"bytes"
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/tscat/tscat/core/audit"
	"codeberg.org/tscat/tscat/core/extract"
	"codeberg.org/tscat/tscat/core/numerus"
	"codeberg.org/tscat/tscat/core/ts"
)

const filePerm = 0o644

func main() {
	outPath := flag.String("o", "", "catalog to create or update (required)")
	lang := flag.String("lang", "", "language of a new catalog; defaults to the one in the file name")
	domain := flag.String("domain", "", "catalog domain used to read the language from the file name")
	dryRun := flag.Bool("n", false, "report changes without writing the catalog")
	flag.Parse()

	audit.SetDefaultLogger()

	if *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	// templ-generated files must exist on disk before this runs.
	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, patterns...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Failed to load packages due to errors")
	}

	root, err := filepath.Abs(filepath.Dir(*outPath))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve catalog directory")
	}

	cat, created, err := openCatalog(*outPath, *lang, *domain)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to read catalog")
	}

	res := extract.Merge(cat, extract.FromPackages(pkgs, root), formsFor(cat))

	log.Info().
		Str("path", *outPath).
		Int("added", res.Added).
		Int("updated", res.Updated).
		Int("revived", res.Revived).
		Int("vanished", res.Vanished).
		Int("dropped", res.Dropped).
		Msg("Merged catalog")

	if *dryRun || (!created && !res.Changed()) {
		return
	}

	var buf bytes.Buffer
	if err := ts.Encode(&buf, cat); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode catalog")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	if err := renameio.WriteFile(*outPath, buf.Bytes(), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write catalog")
	}
}

// openCatalog reads path, or starts a new catalog when it does not exist.
func openCatalog(path, lang, domain string) (cat *ts.Catalog, created bool, err error) {
	cat, err = ts.ParseFile(path)
	if err == nil {
		return cat, false, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}

	if lang == "" {
		lang, _ = ts.LanguageFromFilename(filepath.Base(path), domain)
	}

	return ts.NewCatalog(lang), true, nil
}

// formsFor returns the numerus form count of the catalog language, or two
// when the language is unknown.
func formsFor(cat *ts.Catalog) int {
	tag, err := cat.LanguageTag()
	if err != nil {
		return 2
	}

	return numerus.Count(tag)
}
