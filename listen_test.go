// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupID(t *testing.T) {
	t.Parallel()

	names := map[string]string{"calendar": "1042", "broken": "abc"}

	lookup := func(name string) (string, error) {
		if id, ok := names[name]; ok {
			return id, nil
		}

		return "", errors.New("unknown")
	}

	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"", -1, false},
		{"1000", 1000, false},
		{"calendar", 1042, false},
		{"broken", -1, true},
		{"nobody-here", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			id, err := lookupID(tt.value, lookup)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
