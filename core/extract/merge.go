// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"slices"

	"codeberg.org/tscat/tscat/core/ts"
)

// Result counts what Merge changed.
type Result struct {
	Added    int `json:"added"`
	Updated  int `json:"updated"`
	Revived  int `json:"revived"`
	Vanished int `json:"vanished"`
	Dropped  int `json:"dropped"`
}

// Changed reports whether the catalog was modified.
func (r Result) Changed() bool {
	return r != Result{}
}

// Merge brings cat in line with the messages found in the sources.
//
// Existing translations are kept and their locations replaced. Messages that
// disappeared from the sources are marked vanished, or dropped when nothing
// was translated yet. Vanished and obsolete messages that reappear become
// unfinished. New messages are appended as unfinished with nforms empty
// numerus forms where needed; new contexts follow the existing ones.
func Merge(cat *ts.Catalog, found []*Message, nforms int) Result {
	var res Result

	byKey := make(map[ts.Key]*Message, len(found))
	for _, m := range found {
		byKey[m.Key] = m
	}

	seen := make(map[ts.Key]bool, len(found))

	for _, ctx := range cat.Contexts {
		ctx.Messages = slices.DeleteFunc(ctx.Messages, func(m *ts.Message) bool {
			key := m.Key(ctx.Name)

			src, ok := byKey[key]
			if !ok || seen[key] {
				return retire(m, &res)
			}

			seen[key] = true

			if !m.IsActive() {
				m.Type = ts.Unfinished
				res.Revived++
			}

			if !slices.Equal(m.Locations, src.Locations) || m.Numerus != src.Numerus {
				res.Updated++
			}

			m.Locations = slices.Clone(src.Locations)
			setNumerus(m, src.Numerus, nforms)

			return false
		})
	}

	cat.Contexts = slices.DeleteFunc(cat.Contexts, func(ctx *ts.Context) bool {
		return len(ctx.Messages) == 0
	})

	for _, src := range found {
		if seen[src.Key] {
			continue
		}

		m := &ts.Message{
			Source:    src.Key.Source,
			Comment:   src.Key.Comment,
			Locations: slices.Clone(src.Locations),
			Type:      ts.Unfinished,
		}
		setNumerus(m, src.Numerus, nforms)

		cat.Add(src.Key.Context, m)
		res.Added++
	}

	cat.Reindex()

	return res
}

// retire handles a message no longer present in the sources and reports
// whether it should be removed.
func retire(m *ts.Message, res *Result) bool {
	if !m.IsActive() {
		return false
	}

	if m.IsEmpty() {
		res.Dropped++

		return true
	}

	m.Type = ts.Vanished
	m.Locations = nil
	res.Vanished++

	return false
}

// setNumerus converts m between plain and numerus messages, carrying over
// the first translated form.
func setNumerus(m *ts.Message, numerus bool, nforms int) {
	switch {
	case numerus && !m.Numerus:
		forms := make([]string, max(nforms, 1))
		forms[0] = m.Translation
		m.NumerusForms = forms
		m.Translation = ""

		if forms[0] != "" && m.Type == ts.Finished {
			m.Type = ts.Unfinished
		}
	case numerus && len(m.NumerusForms) < nforms:
		m.NumerusForms = append(m.NumerusForms, make([]string, nforms-len(m.NumerusForms))...)
	case !numerus && m.Numerus:
		if len(m.NumerusForms) > 0 {
			m.Translation = m.NumerusForms[0]
		}

		m.NumerusForms = nil
	}

	m.Numerus = numerus
}
