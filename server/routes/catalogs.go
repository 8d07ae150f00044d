// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"bytes"
	"net/http"
	"path"
	"strings"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/lint"
	"codeberg.org/tscat/tscat/core/pofile"
	"codeberg.org/tscat/tscat/core/stats"
)

// CatalogStats returns the completion statistics of one catalog.
// Per-context counts are included unless contexts=false.
func CatalogStats(w http.ResponseWriter, r *http.Request) error {
	loc, err := localeParam(r)
	if err != nil {
		return err
	}

	st := stats.Compute(loc.File, loc.Catalog)
	if r.URL.Query().Get("contexts") == "false" {
		st.Contexts = nil
	}

	return writeJSON(w, st)
}

// CatalogLint returns the lint report of one catalog, using the configured
// lint options. The severity query parameter raises the threshold.
func CatalogLint(w http.ResponseWriter, r *http.Request) error {
	loc, err := localeParam(r)
	if err != nil {
		return err
	}

	opts := config.Global.LintOptions()

	if raw := r.URL.Query().Get("severity"); raw != "" {
		sev, err := lint.ParseSeverity(raw)
		if err != nil {
			return NewHTTPError(http.StatusBadRequest, err)
		}

		opts.MinSeverity = max(opts.MinSeverity, sev)
	}

	findings := lint.CheckCatalog(loc.File, loc.Catalog, opts)

	return writeJSON(w, lint.NewFileReport(loc.File, loc.Catalog, findings))
}

// CatalogPo exports one catalog as a gettext .po file.
func CatalogPo(w http.ResponseWriter, r *http.Request) error {
	loc, err := localeParam(r)
	if err != nil {
		return err
	}

	body, ok := cachedExport(loc)
	if !ok {
		var buf bytes.Buffer
		if err := pofile.Export(&buf, loc.Catalog, pofile.Options{Project: config.Global.Catalogs.Domain}); err != nil {
			return err
		}

		body = buf.Bytes()
		storeExport(loc, body)
	}

	name := strings.TrimSuffix(path.Base(loc.File), ".ts") + ".po"

	w.Header().Set("Content-Type", "text/x-gettext-translation; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)

	_, err = w.Write(body)

	return err
}
