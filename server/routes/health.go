// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/lrucache"
	"codeberg.org/tscat/tscat/i18n"
)

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
	Started  string `json:"started,omitempty"`
	Catalogs int    `json:"catalogs"`

	ExportCache *lrucache.Stats `json:"export_cache,omitempty"`
}

// Healthz reports that the server is up, how many catalogs are loaded and
// how the export cache performs.
func Healthz(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, healthResponse{
		Status:   "ok",
		Version:  config.BuildVersion,
		Revision: config.Global.Build.Revision(),
		Started:  config.Global.Instance.StartingTime,
		Catalogs: len(i18n.Locales()),

		ExportCache: exportCacheStats(),
	})
}
