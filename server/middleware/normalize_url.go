// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// NormalizeURL redirects paths with a trailing slash (except the root) to
// the path without it.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !hasTrailingSlash(r) {
		next.ServeHTTP(w, r)

		return
	}

	target := *r.URL
	target.Path = strings.TrimRight(target.Path, "/")
	target.RawPath = ""

	if target.Path == "" {
		target.Path = "/"
	}

	http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
}

func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}
