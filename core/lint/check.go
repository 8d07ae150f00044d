// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lint

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"

	"codeberg.org/tscat/tscat/core/numerus"
	"codeberg.org/tscat/tscat/core/ts"
)

// Options configures a lint run.
type Options struct {
	// Domain is the catalog file prefix, for example "dde-calendar". It is
	// used to read the expected language from file names.
	Domain string

	// Disabled rules produce no findings.
	Disabled []Rule

	// MinSeverity drops findings below it from the result.
	MinSeverity Severity

	// Concurrency bounds the number of files checked at once by Run.
	// Zero means GOMAXPROCS.
	Concurrency int
}

func (o Options) enabled(r Rule) bool {
	return !slices.Contains(o.Disabled, r) && Rules[r] >= o.MinSeverity
}

// fileChecker accumulates the findings for one catalog.
type fileChecker struct {
	file     string
	opts     Options
	tag      language.Tag
	tagOK    bool
	findings []Finding
}

func (c *fileChecker) add(r Rule, line int, key ts.Key, format string, args ...any) {
	if !c.opts.enabled(r) {
		return
	}

	c.findings = append(c.findings, Finding{
		File:     c.file,
		Line:     line,
		Context:  key.Context,
		Source:   key.Source,
		Comment:  key.Comment,
		Rule:     r,
		Severity: Rules[r],
		Message:  fmt.Sprintf(format, args...),
	})
}

// CheckCatalog runs every enabled rule except xml-malformed against cat,
// which was decoded from file.
func CheckCatalog(file string, cat *ts.Catalog, opts Options) []Finding {
	c := &fileChecker{file: file, opts: opts}

	c.checkHeader(cat)

	seen := make(map[ts.Key]int)

	for _, ctx := range cat.Contexts {
		if ctx.Name == "" {
			c.add(RuleEmptyContextName, ctx.Line, ts.Key{}, "context has an empty <name>")
		}

		for _, m := range ctx.Messages {
			key := m.Key(ctx.Name)

			if m.Source == "" {
				c.add(RuleEmptySource, m.Line, key, "message has an empty <source>")
			}

			if first, dup := seen[key]; dup {
				c.add(RuleDuplicateKey, m.Line, key, "duplicate of the message at line %d", first)
			} else {
				seen[key] = m.Line
			}

			if !m.Type.Valid() {
				c.add(RuleInvalidType, m.Line, key, "unknown translation type %q", m.Type)

				continue
			}

			if m.IsActive() {
				c.checkTranslation(key, m)
			}
		}
	}

	return c.findings
}

func (c *fileChecker) checkHeader(cat *ts.Catalog) {
	switch cat.Version {
	case "2.0", "2.1":
	case "":
		c.add(RuleVersion, 0, ts.Key{}, "<TS> has no version attribute")
	default:
		c.add(RuleVersion, 0, ts.Key{}, "unsupported TS version %q", cat.Version)
	}

	if cat.Language == "" {
		c.add(RuleLanguageMissing, 0, ts.Key{}, "<TS> has no language attribute")

		return
	}

	tag, err := cat.LanguageTag()
	if err != nil {
		c.add(RuleLanguageInvalid, 0, ts.Key{}, "language %q is not a valid locale", cat.Language)

		return
	}

	c.tag, c.tagOK = tag, true

	fromName, ok := ts.LanguageFromFilename(c.file, c.opts.Domain)
	if !ok {
		return
	}

	nameTag, err := ts.ParseLanguage(fromName)
	if err != nil {
		return
	}

	if nameTag != tag {
		c.add(RuleLanguageMismatch, 0, ts.Key{},
			"language attribute %q does not match file name locale %q", cat.Language, fromName)
	}
}

func (c *fileChecker) checkTranslation(key ts.Key, m *ts.Message) {
	if m.Type == ts.Unfinished {
		c.add(RuleUnfinished, m.Line, key, "translation is unfinished")

		return
	}

	if m.IsEmpty() {
		c.add(RuleEmptyTranslation, m.Line, key, "translation is marked finished but empty")

		return
	}

	if m.Numerus && c.tagOK {
		if want := numerus.Count(c.tag); len(m.NumerusForms) != want {
			c.add(RuleNumerusForms, m.Line, key,
				"%d numerus forms, language %s needs %d", len(m.NumerusForms), c.tag, want)
		}
	}

	for i, tr := range m.Translations() {
		form := ""
		if m.Numerus {
			form = fmt.Sprintf(" (numerus form %d)", i)
		}

		if tr == "" {
			continue
		}

		if missing, extra := comparePlaceholders(m.Source, tr); len(missing)+len(extra) > 0 {
			c.add(RulePlaceholders, m.Line, key,
				"place markers differ%s: missing %v, unexpected %v", form, missing, extra)
		}

		if missing, extra := compareMarkup(m.Source, tr); len(missing)+len(extra) > 0 {
			c.add(RuleMarkup, m.Line, key,
				"markup differs%s: missing %v, unexpected %v", form, missing, extra)
		}

		if !sameOuterSpace(m.Source, tr) {
			c.add(RuleWhitespace, m.Line, key, "leading or trailing whitespace differs from the source%s", form)
		}
	}
}
