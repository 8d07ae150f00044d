// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/server/middleware"
	"codeberg.org/tscat/tscat/server/middleware/limiter"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)
	router.Use(middleware.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)

	if config.Global.Limiter.Enabled {
		router.Use(limiter.FromConfig().Evaluate)
	}
}
