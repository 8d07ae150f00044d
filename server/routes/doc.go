// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package routes implements the HTTP API over the loaded catalogs.

Handlers return an error instead of writing failures themselves; the
middleware.CatchError wrapper turns it into a JSON error response. Errors
built with [NewHTTPError] choose the status code, any other error is a 500.
*/
package routes
