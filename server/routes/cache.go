// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/core/lrucache"
	"codeberg.org/tscat/tscat/i18n"
)

// exportCache holds rendered .po exports keyed by exportKey. It is nil when
// caching is disabled.
var exportCache *lrucache.Cache

var exportCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tscat_export_cache_requests_total",
	Help: "Lookups in the .po export cache by result",
}, []string{"result"}) // result=hit|miss

// SetupCache creates the export cache. A size of zero disables it.
func SetupCache(size int, compress bool) error {
	if size == 0 {
		exportCache = nil

		return nil
	}

	cache, err := lrucache.New(size, compress)
	if err != nil {
		return err
	}

	exportCache = cache

	log.Info().
		Int("size", size).
		Bool("compress", compress).
		Msg("Initialized export cache")

	return nil
}

// PurgeCache drops every cached export. It is called after catalogs reload.
func PurgeCache() {
	if exportCache == nil {
		return
	}

	exportCache.Purge()

	log.Debug().Msg("Purged export cache")
}

// exportKey names the export of loc. Catalogs reloaded by Setup carry a new
// generation, so exports rendered from a replaced catalog are never served.
func exportKey(loc *i18n.Locale) string {
	return loc.Tag.String() + "@" + strconv.FormatUint(loc.Generation, 10)
}

func cachedExport(loc *i18n.Locale) ([]byte, bool) {
	if exportCache == nil {
		return nil, false
	}

	body, ok := exportCache.Get(exportKey(loc))
	if ok {
		exportCacheRequests.WithLabelValues("hit").Inc()
	} else {
		exportCacheRequests.WithLabelValues("miss").Inc()
	}

	return body, ok
}

// storeExport caches body for loc. An export that finished rendering after
// its catalog was replaced is dropped again.
func storeExport(loc *i18n.Locale, body []byte) {
	if exportCache == nil {
		return
	}

	key := exportKey(loc)
	exportCache.Add(key, body)

	if loc.Generation != i18n.Generation() {
		exportCache.Remove(key)
	}
}

// exportCacheStats reports the export cache counters, or nil when caching is
// disabled.
func exportCacheStats() *lrucache.Stats {
	if exportCache == nil {
		return nil
	}

	stats := exportCache.Stats()

	return &stats
}
