// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/server/middleware"
	"codeberg.org/tscat/tscat/server/routes"
)

// DefineRoutes registers every route of the API.
func (router *Router) DefineRoutes() {
	router.HandleFunc("GET /healthz", middleware.CatchError(routes.Healthz))

	router.HandleFunc("GET /api/v1/languages", middleware.CatchError(routes.Languages))
	router.HandleFunc("GET /api/v1/translate", middleware.CatchError(routes.Translate))
	router.HandleFunc("PUT /api/v1/language", middleware.CatchError(routes.SetLanguage))

	router.HandleFunc("GET /api/v1/catalogs/{lang}/stats", middleware.CatchError(routes.CatalogStats))
	router.HandleFunc("GET /api/v1/catalogs/{lang}/lint", middleware.CatchError(routes.CatalogLint))
	router.HandleFunc("GET /api/v1/catalogs/{lang}/po", middleware.CatchError(routes.CatalogPo))

	router.Handle("GET /metrics", middleware.RequireToken(config.Global.Basic.MetricsToken, promhttp.Handler()))

	// Everything else gets a JSON 404.
	router.HandleFunc("/", middleware.CatchError(func(http.ResponseWriter, *http.Request) error {
		return routes.NewHTTPError(http.StatusNotFound, routes.ErrNotFound)
	}))
}
