// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/tscat/tscat/core/ts"
)

// catalogSet is an immutable snapshot of the loaded catalogs.
type catalogSet struct {
	domain     string
	generation uint64

	// tags lists the matcher's supported tags with baseTag first.
	// locales is parallel to tags; locales[0] is nil unless a catalog for
	// BaseLocale itself was loaded.
	tags    []language.Tag
	locales []*Locale

	byTag   map[string]*Locale
	matcher language.Matcher
}

var (
	current     atomic.Pointer[catalogSet]
	generations atomic.Uint64
	loggerOnce  sync.Once
)

// Setup loads the Qt Linguist catalogs of domain from dir in fsys and
// constructs a language matcher.
//
// Catalog files are named after the domain and a locale, as lrelease and
// QTranslator::load expect:
//
//	<dir>/<domain>_<locale>.ts
//
// for example "dde-calendar_pl.ts" or "dde-calendar_zh_CN.ts". The locale part
// is normalised to a BCP 47 tag. Files whose locale does not parse are
// skipped with a warning. An empty domain accepts any "<name>_<locale>.ts".
//
// Catalogs are parsed concurrently. If any of them is malformed, Setup
// returns an error and the previously loaded set stays in place; otherwise
// the new set replaces it atomically.
func Setup(fsys fs.FS, dir, domain string) error {
	// The logger is built after the configured outputs are installed and is
	// never replaced, so lookups may read it while Watch reloads.
	loggerOnce.Do(func() { Logger = log.With().Str("sys", "i18n").Logger() })

	set, err := load(fsys, dir, domain)
	if err != nil {
		return err
	}

	current.Store(set)
	reportedMissing.Clear()

	loadedCatalogs.Set(float64(len(set.byTag)))

	return nil
}

type catalogFile struct {
	name string
	tag  language.Tag
}

func load(fsys fs.FS, dir, domain string) (*catalogSet, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var files []catalogFile

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		code, ok := ts.LanguageFromFilename(entry.Name(), domain)
		if !ok {
			continue
		}

		t, err := ts.ParseLanguage(code)
		if err != nil {
			Logger.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping invalid locale file")

			continue
		}

		files = append(files, catalogFile{name: entry.Name(), tag: t})
	}

	locales := make([]*Locale, len(files))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range files {
		g.Go(func() error {
			p := path.Join(dir, f.name)

			cat, err := ts.ParseFS(fsys, p)
			if err != nil {
				return err
			}

			if attr, err := cat.LanguageTag(); err == nil && attr != f.tag {
				Logger.Warn().
					Str("file", p).
					Stringer("attribute", attr).
					Stringer("filename", f.tag).
					Msg("Catalog language attribute disagrees with its file name")
			}

			locales[i] = &Locale{Tag: f.tag, File: p, Catalog: cat}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newCatalogSet(domain, locales), nil
}

func newCatalogSet(domain string, locales []*Locale) *catalogSet {
	sort.Slice(locales, func(i, j int) bool { return locales[i].File < locales[j].File })

	set := &catalogSet{
		domain:     domain,
		generation: generations.Add(1),
		tags:    []language.Tag{baseTag},
		locales: []*Locale{nil},
		byTag:   make(map[string]*Locale, len(locales)),
	}

	for _, loc := range locales {
		key := loc.Tag.String()
		if prev, ok := set.byTag[key]; ok {
			Logger.Warn().
				Str("file", loc.File).
				Str("loaded", prev.File).
				Str("locale", key).
				Msg("Skipping second catalog for locale")

			continue
		}

		loc.Generation = set.generation
		set.byTag[key] = loc

		Logger.Info().
			Str("locale", key).
			Str("file", loc.File).
			Int("messages", loc.Catalog.Len()).
			Msg("Loaded catalog")

		if loc.Tag == baseTag {
			set.locales[0] = loc

			continue
		}

		set.tags = append(set.tags, loc.Tag)
		set.locales = append(set.locales, loc)
	}

	// baseTag is first to make it the default fallback for matching.
	set.matcher = language.NewMatcher(set.tags)

	return set
}

// resolve matches t against the loaded catalogs and returns the catalog to
// use, which may be nil, and the matched tag.
func (set *catalogSet) resolve(t language.Tag) (*Locale, language.Tag) {
	_, idx, conf := set.matcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(set.tags) {
		return set.locales[0], baseTag
	}

	return set.locales[idx], set.tags[idx]
}
