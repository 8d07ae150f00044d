// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"codeberg.org/tscat/tscat/server/request_context"
)

// WithRequestContext attaches a RequestContext to each request and echoes
// its id in the response.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := request_context.WithRequestContext(r.Context(), r)

	w.Header().Set(request_context.HeaderRequestID, request_context.FromContext(ctx).RequestID)

	next.ServeHTTP(w, r.WithContext(ctx))
}
