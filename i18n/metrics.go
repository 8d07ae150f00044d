// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/language"
)

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tscat_lookups_total",
		Help: "Translation lookups by matched locale and outcome",
	}, []string{"locale", "outcome"}) // outcome=found|fallback|missing|source

	loadedCatalogs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tscat_catalogs_loaded",
		Help: "Number of catalogs in the active set",
	})

	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tscat_catalog_reloads_total",
		Help: "Catalog reloads triggered by file changes, by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

// recordLookup counts a lookup. Lookups for a locale without a catalog
// (the source language) are counted as "source".
func recordLookup(matched language.Tag, res Result, hasCatalog bool) {
	outcome := "missing"

	switch {
	case !hasCatalog:
		outcome = "source"
	case res.Fallback:
		outcome = "fallback"
	case res.Found:
		outcome = "found"
	}

	lookupsTotal.WithLabelValues(strippedTagString(matched), outcome).Inc()
}
