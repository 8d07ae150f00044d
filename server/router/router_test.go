// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"codeberg.org/tscat/tscat/i18n"
	"codeberg.org/tscat/tscat/server/request_context"
	"codeberg.org/tscat/tscat/server/routes"
)

const plCatalog = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="pl">
<context>
    <name>CScheduleOperation</name>
    <message>
        <location filename="../src/scheduleoperation.cpp" line="42"/>
        <source>Delete</source>
        <translation>Usuń</translation>
    </message>
    <message>
        <source>Edit</source>
        <translation type="unfinished"></translation>
    </message>
</context>
<context>
    <name>CMonthView</name>
    <message numerus="yes">
        <source>%n event(s)</source>
        <translation>
            <numerusform>%n wydarzenie</numerusform>
            <numerusform>%n wydarzenia</numerusform>
            <numerusform>%n wydarzeń</numerusform>
        </translation>
    </message>
</context>
</TS>
`

var testRouter *Router

func TestMain(m *testing.M) {
	fsys := fstest.MapFS{
		"dde-calendar_pl.ts": {Data: []byte(plCatalog)},
	}

	if err := i18n.Setup(fsys, ".", "dde-calendar"); err != nil {
		panic(err)
	}

	if err := routes.SetupCache(4, true); err != nil {
		panic(err)
	}

	testRouter = NewRouter()
	testRouter.DefineRoutes()
	testRouter.RegisterMiddleware()

	os.Exit(m.Run())
}

func get(t *testing.T, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		r.Header[k] = v
	}

	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, r)

	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := get(t, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", gjson.Get(rec.Body.String(), "status").String())
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "catalogs").Int())
	assert.True(t, gjson.Get(rec.Body.String(), "export_cache.hits").Exists())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get(request_context.HeaderRequestID))
	assert.Contains(t, rec.Header().Get("Server-Timing"), "handler")
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	rec := get(t, "/api/v1/languages", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()

	var tags []string
	for _, tag := range gjson.Get(body, "#.tag").Array() {
		tags = append(tags, tag.String())
	}

	assert.Equal(t, []string{"en", "pl"}, tags)
	assert.True(t, gjson.Get(body, "0.base").Bool())
	assert.Equal(t, int64(3), gjson.Get(body, "1.messages").Int())
	assert.InDelta(t, 2.0/3.0, gjson.Get(body, "1.completion").Float(), 1e-9)
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		header   http.Header
		status   int
		text     string
		language string
		found    bool
	}{
		{
			name:     "Query language",
			target:   "/api/v1/translate?lang=pl&context=CScheduleOperation&source=Delete",
			status:   http.StatusOK,
			text:     "Usuń",
			language: "pl",
			found:    true,
		},
		{
			name:     "Accept-Language",
			target:   "/api/v1/translate?context=CScheduleOperation&source=Delete",
			header:   http.Header{"Accept-Language": {"pl-PL,pl;q=0.9"}},
			status:   http.StatusOK,
			text:     "Usuń",
			language: "pl",
			found:    true,
		},
		{
			name:     "Unfinished falls back to source",
			target:   "/api/v1/translate?lang=pl&context=CScheduleOperation&source=Edit",
			status:   http.StatusOK,
			text:     "Edit",
			language: "pl",
		},
		{
			name:     "Numerus",
			target:   "/api/v1/translate?lang=pl&context=CMonthView&source=%25n+event(s)&n=5",
			status:   http.StatusOK,
			text:     "5 wydarzeń",
			language: "pl",
			found:    true,
		},
		{
			name:     "Base language",
			target:   "/api/v1/translate?context=CMonthView&source=%25n+event(s)&n=1",
			status:   http.StatusOK,
			text:     "1 event(s)",
			language: "en",
		},
		{
			name:   "Missing source",
			target: "/api/v1/translate?lang=pl&context=CScheduleOperation",
			status: http.StatusBadRequest,
		},
		{
			name:   "Negative count",
			target: "/api/v1/translate?lang=pl&source=x&n=-1",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := get(t, tt.target, tt.header)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			body := rec.Body.String()
			if tt.status != http.StatusOK {
				assert.Equal(t, int64(tt.status), gjson.Get(body, "status").Int())
				assert.NotEmpty(t, gjson.Get(body, "error").String())

				return
			}

			assert.Equal(t, tt.text, gjson.Get(body, "text").String())
			assert.Equal(t, tt.language, gjson.Get(body, "language").String())
			assert.Equal(t, tt.found, gjson.Get(body, "found").Bool())
		})
	}
}

func TestCatalogs(t *testing.T) {
	t.Parallel()

	t.Run("Stats", func(t *testing.T) {
		t.Parallel()

		rec := get(t, "/api/v1/catalogs/pl/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Equal(t, int64(3), gjson.Get(body, "total").Int())
		assert.Equal(t, int64(1), gjson.Get(body, "unfinished").Int())
		assert.Equal(t, int64(2), gjson.Get(body, "contexts.#").Int())
		assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
	})

	t.Run("Lint", func(t *testing.T) {
		t.Parallel()

		rec := get(t, "/api/v1/catalogs/pl/lint", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Equal(t, "unfinished", gjson.Get(body, "findings.0.rule").String())
		assert.Equal(t, int64(1), gjson.Get(body, "findings.#").Int())

		rec = get(t, "/api/v1/catalogs/pl/lint?severity=warning", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "findings.#").Int())

		rec = get(t, "/api/v1/catalogs/pl/lint?severity=fatal", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Po", func(t *testing.T) {
		t.Parallel()

		first := get(t, "/api/v1/catalogs/pl/po", nil)
		require.Equal(t, http.StatusOK, first.Code)
		assert.Contains(t, first.Header().Get("Content-Disposition"), "dde-calendar_pl.po")
		assert.Contains(t, first.Body.String(), "msgctxt \"CScheduleOperation\"\nmsgid \"Delete\"\nmsgstr \"Usuń\"")

		second := get(t, "/api/v1/catalogs/pl/po", nil)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("Unknown language", func(t *testing.T) {
		t.Parallel()

		rec := get(t, "/api/v1/catalogs/th/stats", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, gjson.Get(rec.Body.String(), "error").String(), "th")
	})

	t.Run("Invalid language", func(t *testing.T) {
		t.Parallel()

		rec := get(t, "/api/v1/catalogs/!!/stats", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	rec := get(t, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", gjson.Get(rec.Body.String(), "error").String())
	assert.NotEmpty(t, gjson.Get(rec.Body.String(), "request_id").String())
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	rec := get(t, "/api/v1/languages/?lang=pl", nil)

	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/api/v1/languages?lang=pl", rec.Header().Get("Location"))
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	get(t, "/api/v1/translate?lang=pl&context=CScheduleOperation&source=Delete", nil)

	rec := get(t, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tscat_lookups_total")
}

func TestSetLanguage(t *testing.T) {
	t.Parallel()

	put := func(target string, header http.Header) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPut, target, nil)
		for k, v := range header {
			r.Header[k] = v
		}

		rec := httptest.NewRecorder()
		testRouter.ServeHTTP(rec, r)

		return rec
	}

	tests := []struct {
		name     string
		target   string
		header   http.Header
		status   int
		language string
		cookie   string
	}{
		{"Set", "/api/v1/language?lang=pl_PL", nil, http.StatusOK, "pl", "lang=pl;"},
		{"Auto", "/api/v1/language?lang=auto", http.Header{"Cookie": {"lang=pl"}}, http.StatusOK, "en", "lang=;"},
		{"Auto keeps Accept-Language", "/api/v1/language", http.Header{"Accept-Language": {"pl"}}, http.StatusOK, "pl", "lang=;"},
		{"No catalog", "/api/v1/language?lang=de", nil, http.StatusNotFound, "", ""},
		{"Invalid", "/api/v1/language?lang=!!", nil, http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := put(tt.target, tt.header)
			require.Equal(t, tt.status, rec.Code)

			if tt.status != http.StatusOK {
				assert.Empty(t, rec.Header().Get("Set-Cookie"))

				return
			}

			assert.Equal(t, tt.language, gjson.Get(rec.Body.String(), "language").String())
			assert.True(t, strings.HasPrefix(rec.Header().Get("Set-Cookie"), tt.cookie))
			assert.Contains(t, rec.Header().Get("Set-Cookie"), "HttpOnly")
		})
	}
}
