// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pofile

import (
	"errors"
	"fmt"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/core/numerus"
	"codeberg.org/tscat/tscat/core/ts"
)

// ErrNoTranslations is returned by Import when the .po data holds no
// translation for any message of the catalog.
var ErrNoTranslations = errors.New("no matching translations")

// Result counts what Import did.
type Result struct {
	Applied int `json:"applied" yaml:"applied"`
	Missing int `json:"missing" yaml:"missing"`
}

// Import applies the translations in the .po data to the active messages of
// cat. Applied messages lose their unfinished mark; messages without a
// translation in data are left untouched.
//
// Numerus forms are read by position: msgstr[i] becomes the i-th numerus
// form, in the CLDR category order Export writes. The Plural-Forms header of
// data is not consulted, so files for languages without a gettext
// expression import just as well.
func Import(cat *ts.Catalog, data []byte) (Result, error) {
	var res Result

	po := gotext.NewPo()
	po.Parse(data)

	entries := poEntries{
		plain:      po.GetDomain().GetTranslations(),
		contextual: po.GetDomain().GetCtxTranslations(),
	}

	tag, tagErr := cat.LanguageTag()

	for ctx, m := range cat.All() {
		if !m.IsActive() {
			continue
		}

		entry := entries.lookup(MsgCtxt(ctx.Name, m.Comment), m.Source)

		var ok bool

		switch {
		case entry == nil:
		case m.Numerus:
			if tagErr != nil {
				return res, fmt.Errorf("numerus message %q: %w", m.Source, tagErr)
			}

			ok = importNumerus(entry, m, numerus.Count(tag))
		default:
			ok = importSingle(entry, m)
		}

		if !ok {
			res.Missing++

			continue
		}

		m.Type = ts.Finished
		res.Applied++
	}

	log.Debug().
		Str("sys", "pofile").
		Str("language", cat.Language).
		Int("applied", res.Applied).
		Int("missing", res.Missing).
		Msg("Imported translations")

	if res.Applied == 0 && res.Missing > 0 {
		return res, ErrNoTranslations
	}

	return res, nil
}

// poEntries indexes the parsed entries by msgctxt and msgid.
type poEntries struct {
	plain      map[string]*gotext.Translation
	contextual map[string]map[string]*gotext.Translation
}

func (e poEntries) lookup(msgctxt, msgid string) *gotext.Translation {
	if msgctxt == "" {
		return e.plain[msgid]
	}

	return e.contextual[msgctxt][msgid]
}

func importSingle(entry *gotext.Translation, m *ts.Message) bool {
	if !entry.IsTranslated() {
		return false
	}

	m.Translation = entry.Trs[0]

	return true
}

// importNumerus requires every one of the count forms to be translated.
func importNumerus(entry *gotext.Translation, m *ts.Message, count int) bool {
	forms := make([]string, count)

	for i := range forms {
		if !entry.IsTranslatedN(i) {
			return false
		}

		forms[i] = entry.Trs[i]
	}

	m.NumerusForms = forms

	return true
}
