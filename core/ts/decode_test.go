// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "testdata/dde-calendar_pl.ts"

func TestDecode(t *testing.T) {
	t.Parallel()

	cat, err := ParseFile(samplePath)
	require.NoError(t, err)

	assert.Equal(t, "2.1", cat.Version)
	assert.Equal(t, "pl", cat.Language)
	require.Len(t, cat.Contexts, 2)
	assert.Equal(t, 5, cat.Len())

	account := cat.Contexts[0]
	assert.Equal(t, "AccountItem", account.Name)
	assert.Equal(t, 4, account.Line)

	sync := account.Messages[0]
	assert.Equal(t, 6, sync.Line)
	assert.Equal(t, "Sync successful", sync.Source)
	assert.Equal(t, "Synchronizacja zakończona", sync.Translation)
	assert.Equal(t, Finished, sync.Type)
	assert.Equal(t, []Location{
		{Filename: "../calendar-client/src/dataManage/accountitem.cpp", Line: 56},
		{Filename: "../calendar-client/src/dataManage/accountitem.cpp", Line: 59},
	}, sync.Locations)

	local, ok := cat.Lookup(Key{Context: "AccountItem", Source: "Local account"})
	require.True(t, ok)
	assert.Equal(t, Unfinished, local.Type)
	assert.True(t, local.IsEmpty())

	cancel, ok := cat.Lookup(Key{Context: "CColorPickerWidget", Source: "Cancel", Comment: "button"})
	require.True(t, ok)
	assert.Equal(t, "Anuluj", cancel.Translation)

	_, ok = cat.Lookup(Key{Context: "CColorPickerWidget", Source: "Cancel"})
	assert.False(t, ok, "comment is part of the key")

	events, ok := cat.Lookup(Key{Context: "CColorPickerWidget", Source: "%n event(s)"})
	require.True(t, ok)
	assert.True(t, events.Numerus)
	assert.Equal(t, []string{"%n wydarzenie", "%n wydarzenia", "%n wydarzeń"}, events.NumerusForms)

	link, ok := cat.Lookup(Key{Context: "CColorPickerWidget", Source: "Please go to the <a href='/'>Control Center</a>"})
	require.True(t, ok)
	assert.Equal(t, "Tab\there", link.Translation)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Not XML", "hello world"},
		{"Wrong root", `<?xml version="1.0"?><resources><string name="a">b</string></resources>`},
		{"Unclosed message", `<TS version="2.1"><context><name>A</name><message><source>x</source></context></TS>`},
		{"Truncated", `<TS version="2.1"><context><name>A</name>`},
		{"Garbage after root", `<TS version="2.1"></TS><oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cat, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, cat)
			assert.True(t, errors.Is(err, ErrMalformed), "error %v does not wrap ErrMalformed", err)
		})
	}
}

func TestDecode_IgnoresUnknownElements(t *testing.T) {
	t.Parallel()

	input := `<TS version="2.1" language="th" sourcelanguage="en">
<dependencies><dependency catalog="qtbase"/></dependencies>
<context>
    <name>A</name>
    <message>
        <source>Delete</source>
        <oldsource>Remove</oldsource>
        <extracomment>toolbar</extracomment>
        <translatorcomment>checked</translatorcomment>
        <extra-po-flags>c-format</extra-po-flags>
        <translation type="vanished">ลบ</translation>
    </message>
</context>
</TS>`

	cat, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "en", cat.SourceLanguage)

	m, ok := cat.Lookup(Key{Context: "A", Source: "Delete"})
	require.True(t, ok)
	assert.Equal(t, "toolbar", m.ExtraComment)
	assert.Equal(t, "checked", m.TranslatorComment)
	assert.Equal(t, Vanished, m.Type)
	assert.False(t, m.IsActive())
	assert.Equal(t, "ลบ", m.Translation)
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	want, err := ParseFile(samplePath)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, want))

	got, err := Decode(&buf)
	require.NoError(t, err)

	opts := cmp.Options{
		cmpopts.IgnoreUnexported(Catalog{}),
		cmpopts.IgnoreFields(Message{}, "Line"),
		cmpopts.IgnoreFields(Context{}, "Line"),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_Layout(t *testing.T) {
	t.Parallel()

	cat := NewCatalog("th")
	cat.Add("Ctx", &Message{
		Source:    "Save",
		Comment:   "button",
		Locations: []Location{{Filename: "a.cpp", Line: 3}},
		Type:      Unfinished,
	})
	cat.Add("Ctx", &Message{
		Source:      `Say "hi" & <wave>`,
		Translation: "ok",
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cat))

	want := `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="th">
<context>
    <name>Ctx</name>
    <message>
        <location filename="a.cpp" line="3"/>
        <source>Save</source>
        <comment>button</comment>
        <translation type="unfinished"></translation>
    </message>
    <message>
        <source>Say &quot;hi&quot; &amp; &lt;wave&gt;</source>
        <translation>ok</translation>
    </message>
</context>
</TS>
`
	assert.Equal(t, want, buf.String())
}

func TestCatalog_AddKeepsFirstDuplicate(t *testing.T) {
	t.Parallel()

	cat := NewCatalog("pl")
	cat.Add("A", &Message{Source: "x", Translation: "first"})
	cat.Add("A", &Message{Source: "x", Translation: "second"})

	assert.Equal(t, 2, cat.Len())
	require.Len(t, cat.Contexts, 1)

	m, ok := cat.Lookup(Key{Context: "A", Source: "x"})
	require.True(t, ok)
	assert.Equal(t, "first", m.Translation)
}
