// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// tscat inspects and converts Qt Linguist catalogs.
//
//	tscat lint translations/
//	tscat stats --format json translations/
//	tscat lookup --dir translations --lang pl --context CMonthView "%n event(s)" -n 3
//	tscat export-po translations/dde-calendar_pl.ts -o pl.po
//	tscat import-po translations/dde-calendar_pl.ts pl.po
//	tscat fmt translations/
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
