// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/ts"
)

const plCatalog = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="pl">
<context>
    <name>CScheduleOperation</name>
    <message>
        <source>Delete</source>
        <translation>Usuń</translation>
    </message>
    <message>
        <source>All</source>
        <translation>Wszystkie</translation>
    </message>
    <message>
        <source>All</source>
        <comment>button</comment>
        <translation>Wszystkie (przycisk)</translation>
    </message>
    <message>
        <source>Edit</source>
        <translation type="unfinished">Edytuj</translation>
    </message>
    <message>
        <source>Old</source>
        <translation type="vanished">Stare</translation>
    </message>
    <message>
        <source>Cancel</source>
        <translation></translation>
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
<context>
    <name>AccountItem</name>
    <message>
        <source>Signed in as {{.Name}}</source>
        <translation>Zalogowano jako {{.Name}}</translation>
    </message>
</context>
</TS>
`

const thCatalog = `<TS version="2.1" language="th">
<context>
    <name>CScheduleOperation</name>
    <message><source>Delete</source><translation>ลบ</translation></message>
</context>
<context>
    <name>CMonthView</name>
    <message numerus="yes">
        <source>%n event(s)</source>
        <translation><numerusform>%n กิจกรรม</numerusform></translation>
    </message>
</context>
</TS>
`

const domain = "dde-calendar"

func catalogFS() fstest.MapFS {
	return fstest.MapFS{
		"translations/dde-calendar_pl.ts":         {Data: []byte(plCatalog)},
		"translations/dde-calendar_th.ts":         {Data: []byte(thCatalog)},
		"translations/dde-calendar-service_lo.ts": {Data: []byte(`<TS version="2.1" language="lo"></TS>`)},
		"translations/dde-calendar_!!.ts":         {Data: []byte(`<TS version="2.1"></TS>`)},
		"translations/README":                     {Data: []byte("not a catalog")},
	}
}

func TestMain(m *testing.M) {
	if err := Setup(catalogFS(), "translations", domain); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func tagged(lang string) context.Context {
	return WithTag(context.Background(), language.MustParse(lang))
}

func TestTr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang string
		got  func(ctx context.Context) string
		want string
	}{
		{"Exact", "pl", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Delete") }, "Usuń"},
		{"Region falls back to language", "pl-PL", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Delete") }, "Usuń"},
		{"Other locale", "th", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Delete") }, "ลบ"},
		{"Base locale", "en", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Delete") }, "Delete"},
		{"Unloaded locale", "ja", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Delete") }, "Delete"},
		{"Wrong context", "pl", func(ctx context.Context) string { return Tr(ctx, "CMonthView", "Delete") }, "Delete"},
		{"Comment", "pl", func(ctx context.Context) string { return TrC(ctx, "CScheduleOperation", "All", "button") }, "Wszystkie (przycisk)"},
		{"No comment", "pl", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "All") }, "Wszystkie"},
		{"Comment fallback", "pl", func(ctx context.Context) string { return TrC(ctx, "CScheduleOperation", "Delete", "menu") }, "Usuń"},
		{"Unfinished", "pl", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Edit") }, "Edit"},
		{"Vanished", "pl", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Old") }, "Old"},
		{"Empty", "pl", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Cancel") }, "Cancel"},
		{"Missing", "pl", func(ctx context.Context) string { return Tr(ctx, "CScheduleOperation", "Missing") }, "Missing"},
		{"Template", "pl", func(ctx context.Context) string { return Tr(ctx, "AccountItem", "Signed in as {{.Name}}", "Name", "Ola") }, "Zalogowano jako Ola"},
		{"Template source", "en", func(ctx context.Context) string { return Tr(ctx, "AccountItem", "Signed in as {{.Name}}", "Name", "Ann") }, "Signed in as Ann"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.got(tagged(tt.lang)))
		})
	}
}

func TestTrN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		n    int
		want string
	}{
		{"pl", 1, "1 wydarzenie"},
		{"pl", 3, "3 wydarzenia"},
		{"pl", 22, "22 wydarzenia"},
		{"pl", 5, "5 wydarzeń"},
		{"pl", 12, "12 wydarzeń"},
		{"pl", 0, "0 wydarzeń"},
		{"th", 5, "5 กิจกรรม"},
		{"en", 5, "5 event(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, TrN(tagged(tt.lang), "CMonthView", "%n event(s)", tt.n))
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	res := Lookup(language.Polish, ts.Key{Context: "CScheduleOperation", Source: "Delete", Comment: "menu"}, -1)
	assert.Equal(t, "Usuń", res.Text)
	assert.Equal(t, "pl", res.Language.String())
	assert.True(t, res.Found)
	assert.True(t, res.Fallback)

	res = Lookup(language.MustParse("pl-PL"), ts.Key{Context: "CScheduleOperation", Source: "Missing"}, -1)
	assert.False(t, res.Found)
	assert.Equal(t, "Missing", res.Text)
	assert.Equal(t, "pl", res.Language.String())
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	var got []string
	for _, tag := range Languages() {
		got = append(got, tag.String())
	}

	assert.Equal(t, []string{"en", "pl", "th"}, got)

	loc, ok := LocaleFor(language.Thai)
	require.True(t, ok)
	assert.Equal(t, "translations/dde-calendar_th.ts", loc.File)
	assert.Equal(t, 2, loc.Catalog.Len())

	_, ok = LocaleFor(language.Lao)
	assert.False(t, ok)

	assert.Len(t, Locales(), 2)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"pl-PL", "pl"},
		{"pl", "pl"},
		{"th-TH", "th"},
		{"de", ""},
		{"en", ""},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			loc, ok := Match(language.MustParse(tt.tag))
			if tt.want == "" {
				assert.False(t, ok)

				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, loc.Tag.String())
		})
	}
}

func TestTagFrom(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // nil context is part of the contract
	assert.Equal(t, "en", TagFrom(nil).String())
	assert.Equal(t, "en", TagFrom(context.Background()).String())
	assert.Equal(t, "th", TagFrom(WithTag(context.Background(), language.Thai)).String())
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{"Default", "/", "", "", "en"},
		{"Query", "/?lang=pl", "", "", "pl"},
		{"Qt style query", "/?lang=th_TH", "", "", "th"},
		{"Cookie", "/", "th", "", "th"},
		{"Query beats cookie", "/?lang=pl", "th", "", "pl"},
		{"Accept-Language", "/", "", "ja;q=0.9, pl-PL;q=0.8", "pl"},
		{"Auto ignores cookie", "/?lang=auto", "pl", "th", "th"},
		{"Unknown", "/?lang=zz-!!", "", "de", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: LangParam, Value: tt.cookie})
			}

			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}

			assert.Equal(t, tt.want, FromRequest(r).String())
		})
	}

	assert.Equal(t, "en", FromRequest(nil).String())
}

func TestMsgKey(t *testing.T) {
	t.Parallel()

	var c templ.Component = MsgKey{Context: "CScheduleOperation", Source: "All", Comment: "button"}

	var buf bytes.Buffer
	require.NoError(t, c.Render(tagged("pl"), &buf))
	assert.Equal(t, "Wszystkie (przycisk)", buf.String())

	assert.Equal(t, "Delete", MsgKey{Context: "CScheduleOperation", Source: "Delete"}.Tr(nil)) //nolint:staticcheck
}

func TestUserError(t *testing.T) {
	t.Parallel()

	err := NewUserError(tagged("pl"), "CScheduleOperation", "Delete")
	assert.EqualError(t, err, "Usuń")
}

// The tests below change package configuration and must not run in parallel.

func TestStrictMissingKeys(t *testing.T) {
	config.Global.Internationalization.StrictMissingKeys = true
	t.Cleanup(func() { config.Global.Internationalization.StrictMissingKeys = false })

	assert.Equal(t, "⟦Missing⟧", Tr(tagged("pl"), "CScheduleOperation", "Missing"))
	assert.Equal(t, "⟦Edit⟧", Tr(tagged("pl"), "CScheduleOperation", "Edit"))
	assert.Equal(t, "Usuń", Tr(tagged("pl"), "CScheduleOperation", "Delete"))

	// The source language has nothing to be missing.
	assert.Equal(t, "Missing", Tr(tagged("en"), "CScheduleOperation", "Missing"))

	// Template errors are surfaced.
	assert.Equal(t, "⟦Signed in as {{.Name}}⟧", Tr(tagged("en"), "AccountItem", "Signed in as {{.Name}}"))
}

func TestIncludeUnfinished(t *testing.T) {
	config.Global.Catalogs.IncludeUnfinished = true
	t.Cleanup(func() { config.Global.Catalogs.IncludeUnfinished = false })

	assert.Equal(t, "Edytuj", Tr(tagged("pl"), "CScheduleOperation", "Edit"))
	assert.Equal(t, "Old", Tr(tagged("pl"), "CScheduleOperation", "Old"))
}

func TestSetup_ReloadDuringLookups(t *testing.T) {
	config.Global.Internationalization.StrictMissingKeys = true
	t.Cleanup(func() { config.Global.Internationalization.StrictMissingKeys = false })

	done := make(chan error, 1)

	go func() {
		for range 20 {
			if err := Setup(catalogFS(), "translations", domain); err != nil {
				done <- err

				return
			}
		}

		done <- nil
	}()

	for range 200 {
		assert.Equal(t, "⟦Missing⟧", Tr(tagged("pl"), "Nowhere", "Missing"))
		assert.Equal(t, "Usuń", Tr(tagged("pl"), "CScheduleOperation", "Delete"))
	}

	require.NoError(t, <-done)
}

func TestSetup_Malformed(t *testing.T) {
	fsys := catalogFS()
	fsys["translations/dde-calendar_lo.ts"] = &fstest.MapFile{Data: []byte(`<TS version="2.1" language="lo"><context>`)}

	err := Setup(fsys, "translations", domain)
	require.ErrorIs(t, err, ts.ErrMalformed)
	assert.Contains(t, err.Error(), "dde-calendar_lo.ts")

	// The previous set is still active.
	assert.Equal(t, "Usuń", Tr(tagged("pl"), "CScheduleOperation", "Delete"))

	require.Error(t, Setup(fsys, "missing", domain))
}
