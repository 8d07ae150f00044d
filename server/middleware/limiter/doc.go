// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that enforces per-client rate limiting for HTTP requests.

Each client address gets a token bucket. Addresses in the pass list, and the
health and metrics endpoints, are never limited. Buckets idle for longer than
the configured maximum are dropped.
*/
package limiter
