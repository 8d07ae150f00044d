// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"testing"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	t.Parallel()

	var header servertiming.Header

	ctx := servertiming.NewContext(context.Background(), &header)

	span := Span{Name: "translate"}
	span.Begin(ctx)
	span.End()
	span.End()

	require.Len(t, header.Metrics, 1)
	assert.Equal(t, "translate", header.Metrics[0].Name)
	assert.Equal(t, span.Duration(), header.Metrics[0].Duration)
	assert.Contains(t, header.Metrics[0].Extra, "start")
}

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512", humanizeSize(512))
	assert.Equal(t, "1.50K", humanizeSize(1536))
	assert.Equal(t, "2.00M", humanizeSize(2*bytesInMB))
}

func TestCondenseRequest(t *testing.T) {
	t.Parallel()

	fields := map[string]any{"sys": "http", "method": "GET", "status_code": 200, "url": "/healthz", "dur": 3}
	require.NoError(t, condenseRequest(fields))

	assert.Equal(t, "200 GET   /healthz", fields["message"])
	assert.Equal(t, map[string]any{"message": "200 GET   /healthz", "dur": 3}, fields)

	other := map[string]any{"sys": "i18n", "message": "Reloaded catalogs"}
	require.NoError(t, condenseRequest(other))
	assert.Equal(t, "Reloaded catalogs", other["message"])
}
