// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/tscat/tscat/core/stats"
	"codeberg.org/tscat/tscat/i18n"
)

type languageResponse struct {
	Tag        string  `json:"tag"`
	Language   string  `json:"language,omitempty"`
	File       string  `json:"file,omitempty"`
	Base       bool    `json:"base,omitempty"`
	Messages   int     `json:"messages"`
	Completion float64 `json:"completion"`
}

// Languages lists the source language and every loaded catalog.
func Languages(w http.ResponseWriter, _ *http.Request) error {
	out := []languageResponse{{Tag: i18n.BaseLocale, Base: true, Completion: 1}}

	for _, loc := range i18n.Locales() {
		st := stats.Compute(loc.File, loc.Catalog)

		out = append(out, languageResponse{
			Tag:        loc.Tag.String(),
			Language:   loc.Catalog.Language,
			File:       loc.File,
			Messages:   st.Active(),
			Completion: st.Completion(),
		})
	}

	return writeJSON(w, out)
}
