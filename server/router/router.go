// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package router assembles the HTTP routes and the middleware chain.
package router

import (
	"net/http"
	"slices"

	"codeberg.org/tscat/tscat/server/middleware"
)

// Router is an http.ServeMux behind a chain of middleware. Routes are added
// through the embedded mux; requests enter through ServeHTTP.
type Router struct {
	*http.ServeMux

	chain   []middleware.Middleware
	handler http.Handler
}

func NewRouter() *Router {
	mux := http.NewServeMux()

	return &Router{ServeMux: mux, handler: mux}
}

// Use appends m to the chain. Middleware added first runs first.
// Use is not safe to call while requests are being served.
func (router *Router) Use(m middleware.Middleware) {
	router.chain = append(router.chain, m)

	var h http.Handler = router.ServeMux
	for _, m := range slices.Backward(router.chain) {
		h = middleware.Wrap(m, h)
	}

	router.handler = h
}

func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.handler.ServeHTTP(w, r)
}
