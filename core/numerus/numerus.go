// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package numerus maps counts to the index of a numerus form in a Qt Linguist
catalog.

Qt stores one <numerusform> per plural category the target language
distinguishes for whole numbers. The categories come from the CLDR cardinal
rules in golang.org/x/text/feature/plural and are ordered zero, one, two,
few, many, other. Categories that only apply to fractions (Polish "other",
for example) are not counted, which matches the number of forms lupdate
creates.
*/
package numerus

import (
	"slices"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// probeLimit is large enough to hit every integer category in CLDR, the
// hundreds rules included.
const probeLimit = 1000

var order = []plural.Form{plural.Zero, plural.One, plural.Two, plural.Few, plural.Many, plural.Other}

// formsByLang caches the result of Forms per base language string.
var formsByLang sync.Map // key: string, value: []plural.Form

// Forms returns the plural categories tag uses for whole numbers in numerus
// form order. Languages without plural rules have a single form.
func Forms(tag language.Tag) []plural.Form {
	base, _ := tag.Base()
	key := base.String()

	if v, ok := formsByLang.Load(key); ok {
		return v.([]plural.Form)
	}

	seen := make(map[plural.Form]bool, len(order))
	for n := range probeLimit {
		seen[match(tag, n)] = true
	}

	forms := make([]plural.Form, 0, len(seen))
	for _, f := range order {
		if seen[f] {
			forms = append(forms, f)
		}
	}

	formsByLang.Store(key, forms)

	return forms
}

// Count returns the number of numerus forms a catalog for tag should carry.
func Count(tag language.Tag) int {
	return len(Forms(tag))
}

// Index returns the numerus form index used for count n.
func Index(tag language.Tag, n int) int {
	i := slices.Index(Forms(tag), match(tag, n))
	if i < 0 {
		return 0
	}

	return i
}

func match(tag language.Tag, n int) plural.Form {
	if n < 0 {
		n = -n
	}

	return plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0)
}
