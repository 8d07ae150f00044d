// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"codeberg.org/tscat/tscat/i18n"
)

func writeJSON(w http.ResponseWriter, v any) error {
	return writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// localeParam resolves the {lang} path value to a loaded catalog.
func localeParam(r *http.Request) (*i18n.Locale, error) {
	raw := r.PathValue("lang")

	tag, err := i18n.ParseLocale(raw)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest,
			i18n.NewUserError(r.Context(), messageContext, "Invalid language {{.Lang}}", "Lang", strconv.Quote(raw)))
	}

	loc, ok := i18n.LocaleFor(tag)
	if !ok {
		return nil, NewHTTPError(http.StatusNotFound,
			i18n.NewUserError(r.Context(), messageContext, "No catalog for language {{.Lang}}", "Lang", tag.String()))
	}

	return loc, nil
}
