// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lint

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/tscat/tscat/core/ts"
)

// Run lints the catalogs at paths concurrently. Catalogs that fail to parse
// produce an xml-malformed finding; only I/O errors abort the run.
func Run(ctx context.Context, paths []string, opts Options) (*Report, error) {
	files := make([]FileReport, len(paths))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fr, err := CheckFile(path, opts)
			if err != nil {
				return err
			}

			files[i] = *fr

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{Files: files}, nil
}

// CheckFile reads and lints a single catalog.
func CheckFile(path string, opts Options) (*FileReport, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- linting user supplied catalogs
	if err != nil {
		return nil, err
	}

	return CheckBytes(path, data, opts), nil
}

// CheckBytes lints the catalog data read from file.
func CheckBytes(file string, data []byte, opts Options) *FileReport {
	cat, err := ts.Decode(bytes.NewReader(data))
	if err != nil {
		fc := &fileChecker{file: file, opts: opts}
		fc.add(RuleMalformed, 0, ts.Key{}, "%v", err)

		log.Debug().
			Str("sys", "lint").
			Str("file", file).
			Err(err).
			Msg("Catalog is not well-formed")

		return &FileReport{File: file, Findings: fc.findings}
	}

	return NewFileReport(file, cat, CheckCatalog(file, cat, opts))
}

// NewFileReport summarises cat and attaches findings sorted by line.
func NewFileReport(file string, cat *ts.Catalog, findings []Finding) *FileReport {
	fr := &FileReport{
		File:     file,
		Language: cat.Language,
		Messages: cat.Len(),
		Findings: findings,
	}

	for _, m := range cat.All() {
		if m.Type == ts.Unfinished {
			fr.Unfinished++
		}
	}

	sort.SliceStable(fr.Findings, func(i, j int) bool { return fr.Findings[i].Line < fr.Findings[j].Line })

	log.Debug().
		Str("sys", "lint").
		Str("file", file).
		Int("messages", fr.Messages).
		Int("findings", len(fr.Findings)).
		Msg("Checked catalog")

	return fr
}
