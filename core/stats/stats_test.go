// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"codeberg.org/tscat/tscat/core/ts"
)

const catalog = `<TS version="2.1" language="th">
<context>
    <name>AccountItem</name>
    <message><source>Sync successful</source><translation>ซิงค์สำเร็จ</translation></message>
    <message><source>Network error</source><translation type="unfinished"></translation></message>
    <message><source>Storage full</source><translation></translation></message>
</context>
<context>
    <name>CalendarWindow</name>
    <message><source>Calendar</source><translation>ปฏิทิน</translation></message>
    <message><source>Old title</source><translation type="obsolete">เก่า</translation></message>
</context>
</TS>`

func compute(t *testing.T) FileStats {
	t.Helper()

	cat, err := ts.Decode(strings.NewReader(catalog))
	require.NoError(t, err)

	return Compute("dde-calendar_th.ts", cat)
}

func TestCompute(t *testing.T) {
	t.Parallel()

	st := compute(t)

	assert.Equal(t, "th", st.Language)
	assert.Equal(t, Counts{Total: 5, Finished: 2, Unfinished: 1, Empty: 1, Obsolete: 1}, st.Counts)
	assert.Equal(t, 4, st.Active())
	assert.InDelta(t, 0.5, st.Completion(), 1e-9)

	require.Len(t, st.Contexts, 2)
	assert.Equal(t, "CalendarWindow", st.Contexts[1].Name)
	assert.InDelta(t, 1.0, st.Contexts[1].Completion(), 1e-9)
}

func TestCounts_CompletionEmpty(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, Counts{}.Completion(), 1e-9)
	assert.InDelta(t, 1.0, Counts{Total: 2, Obsolete: 2}.Completion(), 1e-9)
}

func TestSummary_Write(t *testing.T) {
	t.Parallel()

	st := compute(t)
	sum := Summarize([]FileStats{st, st})

	assert.Equal(t, 10, sum.Total)
	assert.Equal(t, 4, sum.Finished)

	var table bytes.Buffer
	require.NoError(t, sum.Write(&table, "text", true))
	assert.Contains(t, table.String(), "dde-calendar_th.ts")
	assert.Contains(t, table.String(), "  CalendarWindow")
	assert.Contains(t, table.String(), "50.0%")
	assert.Contains(t, table.String(), "total")

	var js bytes.Buffer
	require.NoError(t, sum.Write(&js, "json", false))
	assert.Equal(t, int64(10), gjson.Get(js.String(), "total").Int())
	assert.Equal(t, "th", gjson.Get(js.String(), "files.0.language").String())
	assert.Equal(t, int64(1), gjson.Get(js.String(), "files.0.contexts.0.unfinished").Int())

	assert.Error(t, sum.Write(&js, "csv", false))
}
