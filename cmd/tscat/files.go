// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/renameio/v2"
)

// catalogPaths expands directories in args to the .ts files they contain.
func catalogPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !fi.IsDir() {
			paths = append(paths, arg)

			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.ts"))
		if err != nil {
			return nil, err
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no .ts files", arg)
		}

		slices.Sort(matches)
		paths = append(paths, matches...)
	}

	return paths, nil
}

// writeAtomic replaces path with the output of write. The file is left
// untouched if write fails.
func writeAtomic(path string, write func(io.Writer) error) error {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions())
	if err != nil {
		return err
	}
	defer pf.Cleanup()

	if err := write(pf); err != nil {
		return err
	}

	return pf.CloseAtomicallyReplace()
}

// writeOutput writes to path atomically, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}

	return writeAtomic(path, write)
}
