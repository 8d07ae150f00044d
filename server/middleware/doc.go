// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware chain of the tscat server.

The chain itself is assembled by router.RegisterMiddleware. Handlers that
return errors are adapted with [CatchError].
*/
package middleware
