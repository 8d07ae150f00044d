// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"errors"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    string
		want    string
		wantErr error
	}{
		{"pl", "pl", nil},
		{"zh_CN", "zh-CN", nil},
		{"pt-BR", "pt-BR", nil},
		{"sr@latin", "sr", nil},
		{"", "", ErrNoLanguage},
		{"C", "", ErrNoLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLanguage(tt.code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseLanguage(%q) error = %v, want %v", tt.code, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseLanguage(%q) unexpected error: %v", tt.code, err)
			}

			if got.String() != tt.want {
				t.Errorf("ParseLanguage(%q) = %s, want %s", tt.code, got, tt.want)
			}
		})
	}

	if _, err := ParseLanguage("not a language!"); err == nil {
		t.Error("ParseLanguage accepted an invalid code")
	}
}

func TestLanguageFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		domain string
		want   string
		wantOK bool
	}{
		{"dde-calendar_pl.ts", "dde-calendar", "pl", true},
		{"translations/dde-calendar-service_lo.ts", "dde-calendar-service", "lo", true},
		{"dde-calendar-service_lo.ts", "dde-calendar", "", false},
		{"dde-calendar_zh_CN.ts", "dde-calendar", "zh_CN", true},
		{"dde-calendar_zh_CN.ts", "", "zh_CN", true},
		{"dde-calendar_th.ts", "", "th", true},
		{"dde-calendar_th.po", "", "", false},
		{"calendar.ts", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.domain, func(t *testing.T) {
			t.Parallel()

			got, ok := LanguageFromFilename(tt.name, tt.domain)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LanguageFromFilename(%q, %q) = %q, %v; want %q, %v", tt.name, tt.domain, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
