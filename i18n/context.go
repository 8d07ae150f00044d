// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/tscat/tscat/core/ts"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// LangParam is the name of the URL query parameter and of the cookie used by
// HTTP helpers to read a preferred language as a BCP 47 tag or a Qt locale
// name such as "zh_CN".
const LangParam = "lang"

// WithTag stores t in ctx and returns a derived context that carries it.
//
// Passing the zero value of [language.Tag] clears any existing value.
// The ctx must not be nil.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the tag for [BaseLocale]
// if none is present. It never returns the zero value of [language.Tag].
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// FromRequest matches the preferences of r against the loaded catalogs.
// Preferences are read from the [LangParam] query parameter, then the
// [LangParam] cookie, then Accept-Language. A query value of "auto" drops the
// first two so that only the browser setting counts.
//
// Without a request or before Setup, FromRequest returns the [BaseLocale] tag.
func FromRequest(r *http.Request) language.Tag {
	set := current.Load()
	if r == nil || set == nil {
		return baseTag
	}

	_, i, conf := set.matcher.Match(preferences(r)...)
	if conf == language.No || i < 0 || i >= len(set.tags) {
		return baseTag
	}

	return set.tags[i]
}

func preferences(r *http.Request) []language.Tag {
	var tags []language.Tag

	if q := r.URL.Query().Get(LangParam); !strings.EqualFold(q, "auto") {
		tags = appendParsed(tags, q)

		if c, err := r.Cookie(LangParam); err == nil {
			tags = appendParsed(tags, c.Value)
		}
	}

	if accepted, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
		tags = append(tags, accepted...)
	}

	return tags
}

// WithRequest resolves the language from r using [FromRequest] and installs the
// matched tag in the returned context.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return WithTag(ctx, FromRequest(r))
}

// ParseLocale parses a user-supplied locale, accepting both BCP 47 tags and
// Qt style names such as "pt_BR" or "sr@latin".
func ParseLocale(s string) (language.Tag, error) {
	return ts.ParseLanguage(s)
}

func appendParsed(tags []language.Tag, s string) []language.Tag {
	if s == "" {
		return tags
	}

	if t, err := ParseLocale(s); err == nil {
		tags = append(tags, t)
	}

	return tags
}
