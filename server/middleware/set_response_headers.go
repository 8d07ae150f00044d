// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strconv"
	"strings"

	"codeberg.org/tscat/tscat/config"
)

// baseHeaders are set on every response.
var baseHeaders = http.Header{
	"Referrer-Policy":         {"no-referrer"},
	"X-Frame-Options":         {"DENY"},
	"X-Content-Type-Options":  {"nosniff"},
	"Content-Security-Policy": {"default-src 'none'; frame-ancestors 'none'"},
}

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	headers.Set("Tscat-Version", config.BuildVersion)
	headers.Set("Tscat-Revision", config.Global.Build.Revision())
	headers.Set("Cache-Control", cacheControl(r.Method, r.URL.Path))
	headers.Add("Vary", "Accept-Language, Cookie")

	next.ServeHTTP(w, r)
}

// cacheControl lets clients cache catalog data for HTTPCache.MaxAge.
// Only GET requests are cached. Health and metrics never are, nor is
// anything in development.
func cacheControl(method, path string) string {
	maxAge := int(config.Global.HTTPCache.MaxAge.Seconds())

	if config.Global.Development.InDevelopment || maxAge <= 0 ||
		method != http.MethodGet || !strings.HasPrefix(path, "/api/") {
		return "no-store"
	}

	return "public, max-age=" + strconv.Itoa(maxAge)
}
