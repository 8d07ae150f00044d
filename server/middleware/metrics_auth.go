// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequireToken protects next with a static bearer token. An empty token
// disables the check.
func RequireToken(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="metrics"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r)
	})
}
