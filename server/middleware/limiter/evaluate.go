// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"errors"
	"math"
	"net/http"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/server/request_context"
	"codeberg.org/tscat/tscat/server/routes"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     string = "RateLimit-Limit"
	HeaderRateLimitRemaining string = "RateLimit-Remaining"
	HeaderRetryAfter         string = "Retry-After"
)

var errRateLimited = errors.New("rate limit exceeded")

// excludedPaths are never limited. Paths must match exactly.
var excludedPaths = []string{
	"/healthz",
	"/metrics",
}

// Evaluate is the limiter middleware.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	now := l.now()
	defer l.maybeCleanup(now)

	if isExcludedPath(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	ip := clientAddr(r)

	if passListed(ip, l.settings.PassIPs) {
		next.ServeHTTP(w, r)

		return
	}

	allowed, remaining := l.allow(ip, now)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(l.settings.Burst))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))

	if allowed {
		next.ServeHTTP(w, r)

		return
	}

	log.Warn().
		Str("ip", ip).
		Str("path", r.URL.Path).
		Msg("Rate limit exceeded")

	w.Header().Set(HeaderRetryAfter, strconv.Itoa(l.retryAfter()))

	rc := request_context.FromRequest(r)
	rc.StatusCode = http.StatusTooManyRequests
	rc.RequestError = errRateLimited

	routes.ErrorPage(w, r)
}

// retryAfter is the number of whole seconds until one token is available.
func (l *Limiter) retryAfter() int {
	if l.settings.Rate <= 0 {
		return 1
	}

	return max(1, int(math.Ceil(1/l.settings.Rate)))
}

func isExcludedPath(path string) bool {
	return slices.Contains(excludedPaths, path)
}
