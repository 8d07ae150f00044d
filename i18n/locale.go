// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sort"

	"golang.org/x/text/language"

	"codeberg.org/tscat/tscat/core/ts"
)

// BaseLocale is the source language of the catalogs. Lookups for it return
// the source text.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// Languages returns the tags of the loaded catalogs together with
// [BaseLocale].
//
// The returned slice is a copy, is sorted by tag string, and is safe to retain.
//
// Setup must be called successfully before using Languages; otherwise it panics.
func Languages() []language.Tag {
	set := current.Load()
	if set == nil {
		panic("i18n: Setup must be called before calling Languages")
	}

	out := make([]language.Tag, len(set.tags))
	copy(out, set.tags)

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

// Locale is a loaded catalog.
type Locale struct {
	Tag     language.Tag
	File    string // path within the file system given to Setup
	Catalog *ts.Catalog
	// Generation numbers the Setup call that loaded the catalog. It grows
	// with every successful Setup.
	Generation uint64
}

// Generation returns the generation of the active catalog set, or 0 before
// Setup.
func Generation() uint64 {
	if set := current.Load(); set != nil {
		return set.generation
	}

	return 0
}

// LocaleFor returns the catalog loaded for tag. Unlike lookups it does not
// fall back to a related language: tag must name a loaded catalog.
func LocaleFor(tag language.Tag) (*Locale, bool) {
	set := current.Load()
	if set == nil {
		return nil, false
	}

	loc, ok := set.byTag[tag.String()]

	return loc, ok
}

// Match returns the catalog lookups for tag would use, following the same
// fallback as [Lookup]: "pl_PL" finds a "pl" catalog. It reports false when
// tag only matches [BaseLocale] or nothing at all.
func Match(tag language.Tag) (*Locale, bool) {
	set := current.Load()
	if set == nil {
		return nil, false
	}

	_, i, conf := set.matcher.Match(tag)
	if conf == language.No || i < 0 || i >= len(set.locales) || set.locales[i] == nil {
		return nil, false
	}

	return set.locales[i], true
}

// Locales returns the loaded catalogs sorted by tag string.
func Locales() []*Locale {
	set := current.Load()
	if set == nil {
		return nil
	}

	out := make([]*Locale, 0, len(set.byTag))
	for _, loc := range set.byTag {
		out = append(out, loc)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Tag.String() < out[j].Tag.String() })

	return out
}
