// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
)

var ErrNoLanguage = errors.New("catalog has no language")

// ParseLanguage converts a Qt locale name such as "zh_CN" or "pl" to a
// BCP 47 tag. A "@modifier" suffix ("sr@latin") is dropped.
func ParseLanguage(code string) (language.Tag, error) {
	code, _, _ = strings.Cut(code, "@")
	code = strings.TrimSpace(code)

	if code == "" || code == "C" {
		return language.Und, ErrNoLanguage
	}

	t, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", code, err)
	}

	return t, nil
}

// LanguageTag returns the parsed language attribute of c.
func (c *Catalog) LanguageTag() (language.Tag, error) {
	return ParseLanguage(c.Language)
}

// LanguageFromFilename extracts the locale part of a catalog file name
// following the "<domain>_<locale>.ts" convention, for example "pl" from
// "dde-calendar_pl.ts" or "zh_CN" from "dde-calendar_zh_CN.ts".
//
// If domain is non-empty the name must start with domain+"_". Otherwise the
// locale is the last underscore separated part, extended by one more part
// when that last part looks like a region code.
func LanguageFromFilename(name, domain string) (string, bool) {
	base := strings.TrimSuffix(path.Base(name), ".ts")
	if base == path.Base(name) {
		return "", false
	}

	if domain != "" {
		rest, ok := strings.CutPrefix(base, domain+"_")
		if !ok || rest == "" {
			return "", false
		}

		return rest, true
	}

	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return "", false
	}

	last := parts[len(parts)-1]
	if len(parts) >= 3 && isRegion(last) {
		return parts[len(parts)-2] + "_" + last, true
	}

	return last, last != ""
}

func isRegion(s string) bool {
	switch len(s) {
	case 2:
		return s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'A' && s[1] <= 'Z'
	case 3:
		for i := range 3 {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}

		return true
	}

	return false
}
