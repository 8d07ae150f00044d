// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"

	"codeberg.org/tscat/tscat/core/numerus"
	"codeberg.org/tscat/tscat/core/ts"
)

// templateCache caches compiled templates per unique template text.
var templateCache sync.Map // key: text, value: *template.Template

type Vars map[string]any

// NewUserError creates a new UserError translated for the locale in ctx.
func NewUserError(ctx context.Context, ctxName, source string, kv ...any) *UserError {
	return &UserError{
		msg: Tr(ctx, ctxName, source, kv...),
		kv:  kv,
	}
}

// UserError is an error type whose message is a translated string.
// It is intended for errors that can be shown directly to the end user.
type UserError struct {
	msg string
	kv  []any
}

// Error returns the translated error message.
func (e *UserError) Error() string {
	return e.msg
}

// Tr returns the translation of source in the context named ctxName. If key-value
// pairs are provided, the translation is formatted using text/template-style
// named placeholders.
//
// If a translation is not found, Tr returns source unchanged, or visibly
// wrapped if strict mode is enabled.
func Tr(ctx context.Context, ctxName, source string, kv ...any) string {
	return translate(ctx, ts.Key{Context: ctxName, Source: source}, -1, v(kv...))
}

// TrC translates source with a disambiguation comment, the third argument of
// QCoreApplication::translate. A message stored without a comment answers
// when no message with the comment exists.
func TrC(ctx context.Context, ctxName, source, comment string, kv ...any) string {
	return translate(ctx, ts.Key{Context: ctxName, Source: source, Comment: comment}, -1, v(kv...))
}

// TrN translates a numerus message for the count n. The form is chosen with
// the locale's plural rules and every %n in the result is replaced by n,
// including in the source text returned when the translation is missing.
func TrN(ctx context.Context, ctxName, source string, n int, kv ...any) string {
	return translate(ctx, ts.Key{Context: ctxName, Source: source}, n, v(kv...))
}

// TrNC is the disambiguated variant of TrN.
func TrNC(ctx context.Context, ctxName, source, comment string, n int, kv ...any) string {
	return translate(ctx, ts.Key{Context: ctxName, Source: source, Comment: comment}, n, v(kv...))
}

// Result describes a single lookup.
type Result struct {
	Text     string       `json:"text"`
	Language language.Tag `json:"-"`
	Found    bool         `json:"found"`
	// Fallback is set when the message was found only after dropping the
	// disambiguation comment.
	Fallback bool `json:"fallback,omitempty"`
}

// Lookup resolves k for the locale t without formatting. n selects the
// numerus form and replaces %n; pass a negative n for plain messages.
// It does not apply strict mode wrapping.
func Lookup(t language.Tag, k ts.Key, n int) Result {
	set := current.Load()
	if set == nil {
		return Result{Text: substituteCount(k.Source, n), Language: baseTag}
	}

	loc, matched := set.resolve(t)
	res := Result{Text: k.Source, Language: matched}

	if loc != nil {
		text, fallback, ok := find(loc.Catalog, matched, k, n)
		if ok {
			res.Text, res.Found, res.Fallback = text, true, fallback
		}
	}

	res.Text = substituteCount(res.Text, n)

	recordLookup(matched, res, loc != nil)

	return res
}

// translate performs the lookup and formatting behind the Tr functions.
func translate(ctx context.Context, k ts.Key, n int, vars Vars) string {
	res := Lookup(TagFrom(ctx), k, n)

	text := res.Text
	if !res.Found && res.Language != baseTag && strictMissingKeys() {
		logMissingOnce(strippedTagString(res.Language), k.String())

		text = "⟦" + text + "⟧"
	}

	return render(res.Language, text, vars)
}

// find applies the QTranslator lookup order: the exact key first, then the
// key without its disambiguation comment.
func find(cat *ts.Catalog, t language.Tag, k ts.Key, n int) (text string, fallback, ok bool) {
	if m, found := cat.Lookup(k); found {
		if text, ok := usable(m, t, n); ok {
			return text, false, true
		}
	}

	if k.Comment == "" {
		return "", false, false
	}

	k.Comment = ""

	if m, found := cat.Lookup(k); found {
		if text, ok := usable(m, t, n); ok {
			return text, true, true
		}
	}

	return "", false, false
}

// usable returns the translation of m for count n, or false when m must be
// treated as untranslated.
func usable(m *ts.Message, t language.Tag, n int) (string, bool) {
	switch m.Type {
	case ts.Finished:
	case ts.Unfinished:
		if !includeUnfinished() {
			return "", false
		}
	default:
		return "", false
	}

	if !m.Numerus {
		return m.Translation, m.Translation != ""
	}

	if len(m.NumerusForms) == 0 {
		return "", false
	}

	i := 0
	if n >= 0 {
		i = min(numerus.Index(t, n), len(m.NumerusForms)-1)
	}

	text := m.NumerusForms[i]

	return text, text != ""
}

// substituteCount replaces %n and %Ln with n. A negative n leaves s unchanged.
func substituteCount(s string, n int) string {
	if n < 0 || !strings.Contains(s, "%") {
		return s
	}

	count := strconv.Itoa(n)

	return strings.NewReplacer("%Ln", count, "%n", count).Replace(s)
}

// render formats s as a text/template using the provided data.
func render(locale language.Tag, s string, data Vars) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var tmpl *template.Template
	if t, ok := templateCache.Load(s); ok {
		tmpl = t.(*template.Template)
	} else {
		var err error

		tmpl, err = template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			if strictMissingKeys() {
				return "⟦" + s + "⟧"
			}

			Logger.Warn().Err(err).Stringer("locale", locale).Str("text", s).Msg("Template parse error")

			return s
		}

		templateCache.Store(s, tmpl)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		if strictMissingKeys() {
			return "⟦" + s + "⟧"
		}

		Logger.Warn().Err(err).Stringer("locale", locale).Str("text", s).Msg("Template execute error")

		return s
	}

	return buf.String()
}

// v builds Vars from alternating key, value pairs.
// Panics on programmer error.
func v(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("i18n.V: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n.V: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}
