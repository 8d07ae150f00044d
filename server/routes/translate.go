// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"strconv"

	"codeberg.org/tscat/tscat/core/ts"
	"codeberg.org/tscat/tscat/i18n"
	"codeberg.org/tscat/tscat/server/request_context"
)

type translateResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Found    bool   `json:"found"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Translate answers a single lookup.
//
// Query parameters: source (required), context, comment, n (numerus count)
// and lang. Without lang the language negotiated for the request is used.
func Translate(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	key := ts.Key{
		Context: q.Get("context"),
		Source:  q.Get("source"),
		Comment: q.Get("comment"),
	}

	if key.Source == "" {
		return NewHTTPError(http.StatusBadRequest,
			i18n.NewUserError(r.Context(), messageContext, "Missing parameter {{.Name}}", "Name", "source"))
	}

	n := -1

	if raw := q.Get("n"); raw != "" {
		var err error

		n, err = strconv.Atoi(raw)
		if err != nil || n < 0 {
			return NewHTTPError(http.StatusBadRequest,
				i18n.NewUserError(r.Context(), messageContext, "Parameter {{.Name}} must be a non-negative integer", "Name", "n"))
		}
	}

	// The request context already resolved lang, the cookie and Accept-Language.
	res := i18n.Lookup(request_context.FromRequest(r).T, key, n)

	return writeJSON(w, translateResponse{
		Text:     res.Text,
		Language: res.Language.String(),
		Found:    res.Found,
		Fallback: res.Fallback,
	})
}
