// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lint

import (
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// placeholderRegexp matches QString::arg markers (%1 .. %99, %L1) and the
// numerus marker %n.
var placeholderRegexp = regexp.MustCompile(`%L?([0-9]{1,2}|n)`)

func placeholders(s string) []string {
	matches := placeholderRegexp.FindAllStringSubmatch(s, -1)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, "%"+m[1])
	}

	return dedupe(out)
}

// comparePlaceholders compares the sets of markers. Qt allows translations
// to reorder and repeat markers, so counts are ignored.
func comparePlaceholders(source, translation string) (missing, extra []string) {
	return multisetDiff(placeholders(source), placeholders(translation))
}

// markup returns the start and end tags in s, sorted.
func markup(s string) []string {
	if !strings.ContainsRune(s, '<') {
		return nil
	}

	var out []string

	z := html.NewTokenizer(strings.NewReader(s))

	for {
		switch z.Next() {
		case html.ErrorToken:
			sort.Strings(out)

			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			out = append(out, "<"+string(name)+">")
		case html.EndTagToken:
			name, _ := z.TagName()
			out = append(out, "</"+string(name)+">")
		}
	}
}

// compareMarkup compares rich text tags. Attribute values such as link
// targets are not compared.
func compareMarkup(source, translation string) (missing, extra []string) {
	return multisetDiff(markup(source), markup(translation))
}

func sameOuterSpace(source, translation string) bool {
	return hasLeadingSpace(source) == hasLeadingSpace(translation) &&
		hasTrailingSpace(source) == hasTrailingSpace(translation)
}

func hasLeadingSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return s != "" && unicode.IsSpace(r)
}

func hasTrailingSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)

	return s != "" && unicode.IsSpace(r)
}

// multisetDiff returns the elements of want missing from got and the
// elements of got not in want, both sorted.
func multisetDiff(want, got []string) (missing, extra []string) {
	counts := make(map[string]int, len(want))
	for _, w := range want {
		counts[w]++
	}

	for _, g := range got {
		if counts[g] > 0 {
			counts[g]--

			continue
		}

		extra = append(extra, g)
	}

	for _, w := range want {
		if counts[w] > 0 {
			counts[w]--

			missing = append(missing, w)
		}
	}

	sort.Strings(missing)
	sort.Strings(extra)

	return missing, extra
}

func dedupe(s []string) []string {
	sort.Strings(s)

	return slices.Compact(s)
}
