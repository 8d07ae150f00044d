// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tscat/tscat/core/ts"
)

const existing = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="pl">
<context>
    <name>Main</name>
    <message>
        <location filename="app/app.go" line="3"/>
        <source>Hello</source>
        <translation>Cześć</translation>
    </message>
    <message>
        <source>Removed</source>
        <translation>Usunięte</translation>
    </message>
    <message>
        <source>Never translated</source>
        <translation type="unfinished"></translation>
    </message>
    <message>
        <source>Back</source>
        <translation type="vanished">Wróć</translation>
    </message>
    <message>
        <source>Files</source>
        <translation>Pliki</translation>
    </message>
</context>
<context>
    <name>Gone</name>
    <message>
        <source>Nothing</source>
        <translation type="unfinished"></translation>
    </message>
</context>
</TS>
`

func TestMerge(t *testing.T) {
	t.Parallel()

	cat, err := ts.Decode(strings.NewReader(existing))
	require.NoError(t, err)

	at := func(line int) []ts.Location {
		return []ts.Location{{Filename: "app/app.go", Line: line}}
	}

	found := []*Message{
		{Key: ts.Key{Context: "Main", Source: "Back"}, Locations: at(9)},
		{Key: ts.Key{Context: "Main", Source: "Files"}, Numerus: true, Locations: at(11)},
		{Key: ts.Key{Context: "Main", Source: "Hello"}, Locations: at(3)},
		{Key: ts.Key{Context: "Main", Source: "New"}, Locations: at(12)},
		{Key: ts.Key{Context: "Settings", Source: "%n day(s)"}, Numerus: true, Locations: at(20)},
	}

	res := Merge(cat, found, 3)

	assert.Equal(t, Result{Added: 2, Updated: 2, Revived: 1, Vanished: 1, Dropped: 2}, res)
	assert.True(t, res.Changed())

	require.Len(t, cat.Contexts, 2)
	assert.Equal(t, "Main", cat.Contexts[0].Name)
	assert.Equal(t, "Settings", cat.Contexts[1].Name)

	var sources []string
	for _, m := range cat.Contexts[0].Messages {
		sources = append(sources, m.Source)
	}

	assert.Equal(t, []string{"Hello", "Removed", "Back", "Files", "New"}, sources)

	hello, ok := cat.Lookup(ts.Key{Context: "Main", Source: "Hello"})
	require.True(t, ok)
	assert.Equal(t, ts.Finished, hello.Type)
	assert.Equal(t, "Cześć", hello.Translation)

	removed, ok := cat.Lookup(ts.Key{Context: "Main", Source: "Removed"})
	require.True(t, ok)
	assert.Equal(t, ts.Vanished, removed.Type)
	assert.Empty(t, removed.Locations)

	back, ok := cat.Lookup(ts.Key{Context: "Main", Source: "Back"})
	require.True(t, ok)
	assert.Equal(t, ts.Unfinished, back.Type)
	assert.Equal(t, "Wróć", back.Translation)
	assert.Equal(t, at(9), back.Locations)

	files, ok := cat.Lookup(ts.Key{Context: "Main", Source: "Files"})
	require.True(t, ok)
	assert.True(t, files.Numerus)
	assert.Equal(t, []string{"Pliki", "", ""}, files.NumerusForms)
	assert.Equal(t, ts.Unfinished, files.Type)

	days, ok := cat.Lookup(ts.Key{Context: "Settings", Source: "%n day(s)"})
	require.True(t, ok)
	assert.Equal(t, ts.Unfinished, days.Type)
	assert.Len(t, days.NumerusForms, 3)

	_, ok = cat.Lookup(ts.Key{Context: "Main", Source: "Never translated"})
	assert.False(t, ok)

	assert.False(t, Merge(cat, found, 3).Changed())
}
