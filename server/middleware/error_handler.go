// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/audit"
	"codeberg.org/tscat/tscat/server/request_context"
	"codeberg.org/tscat/tscat/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// The handler's output is buffered in an httptest.ResponseRecorder. After it
// returns:
//   - a returned error discards the buffered output and is answered with a
//     JSON error using the status carried by a routes.HTTPError, or 500;
//   - a 404 written by the handler is also replaced by the JSON error;
//   - otherwise the buffered response is written to the client.
//
// The request is then logged via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Name:      "handler",
			RequestID: ctx.RequestID,
			Method:    r.Method,
			URL:       r.URL.String(),
		}

		r = r.WithContext(span.Begin(r.Context()))

		recorder := httptest.NewRecorder()

		err := handler(recorder, r)

		ctx.RequestError = err

		// Close the span before any header is written so that Server-Timing
		// carries its duration.
		span.End()

		switch {
		case err != nil:
			ctx.StatusCode = routes.StatusOf(err)
			if ctx.StatusCode < http.StatusBadRequest {
				ctx.StatusCode = http.StatusInternalServerError
			}

			routes.ErrorPage(w, r)

		case recorder.Code == http.StatusNotFound:
			ctx.StatusCode = http.StatusNotFound

			routes.ErrorPage(w, r)

		default:
			ctx.StatusCode = recorder.Code
			ctx.Size = recorder.Body.Len()

			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Size = ctx.Size
		span.Error = ctx.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}
