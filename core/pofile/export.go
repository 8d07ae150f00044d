// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package pofile converts Qt Linguist catalogs to and from gettext .po files.
//
// Contexts and disambiguation comments are folded into msgctxt as
// "Context|comment", the convention lconvert uses. Vanished and obsolete
// messages are not exported.
package pofile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"codeberg.org/tscat/tscat/core/numerus"
	"codeberg.org/tscat/tscat/core/ts"
)

// ContextSeparator joins the context name and the comment in msgctxt.
const ContextSeparator = "|"

// Options control the header of an exported file.
type Options struct {
	// Project is written as Project-Id-Version.
	Project string
	// Now overrides the creation date, for reproducible output.
	Now time.Time
}

// MsgCtxt returns the msgctxt for a message of the named context.
func MsgCtxt(context, comment string) string {
	if comment == "" {
		return context
	}

	return context + ContextSeparator + comment
}

// SplitMsgCtxt is the inverse of MsgCtxt.
func SplitMsgCtxt(msgctxt string) (context, comment string) {
	context, comment, _ = strings.Cut(msgctxt, ContextSeparator)

	return context, comment
}

// Export writes the active messages of cat as a .po file.
func Export(w io.Writer, cat *ts.Catalog, opts Options) error {
	bw := bufio.NewWriter(w)

	writeHeader(bw, cat, opts)

	for ctx, m := range cat.All() {
		if !m.IsActive() {
			continue
		}

		writeEntry(bw, ctx.Name, m)
	}

	return bw.Flush()
}

func writeHeader(w *bufio.Writer, cat *ts.Catalog, opts Options) {
	project := opts.Project
	if project == "" {
		project = "tscat"
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	fmt.Fprintln(w, `msgid ""`)
	fmt.Fprintln(w, `msgstr ""`)
	fmt.Fprintf(w, "\"Project-Id-Version: %s\\n\"\n", project)
	fmt.Fprintf(w, "\"POT-Creation-Date: %s\\n\"\n", now.UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintf(w, "\"Language: %s\\n\"\n", cat.Language)
	fmt.Fprintln(w, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(w, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(w, `"Content-Transfer-Encoding: 8bit\n"`)

	if tag, err := cat.LanguageTag(); err == nil {
		if rule, ok := numerus.GettextRule(tag); ok {
			fmt.Fprintf(w, "\"Plural-Forms: %s\\n\"\n", rule)
		}
	}

	fmt.Fprintln(w, `"X-Qt-Contexts: true\n"`)

	if cat.SourceLanguage != "" {
		fmt.Fprintf(w, "\"X-Source-Language: %s\\n\"\n", cat.SourceLanguage)
	}
}

func writeEntry(w *bufio.Writer, context string, m *ts.Message) {
	fmt.Fprintln(w)

	for line := range strings.Lines(m.TranslatorComment) {
		fmt.Fprintf(w, "# %s\n", strings.TrimSuffix(line, "\n"))
	}

	for line := range strings.Lines(m.ExtraComment) {
		fmt.Fprintf(w, "#. %s\n", strings.TrimSuffix(line, "\n"))
	}

	if len(m.Locations) > 0 {
		fmt.Fprint(w, "#:")

		for _, loc := range m.Locations {
			if loc.Line > 0 {
				fmt.Fprintf(w, " %s:%d", loc.Filename, loc.Line)
			} else {
				fmt.Fprintf(w, " %s", loc.Filename)
			}
		}

		fmt.Fprintln(w)
	}

	if m.Type == ts.Unfinished && !m.IsEmpty() {
		fmt.Fprintln(w, "#, fuzzy")
	}

	if msgctxt := MsgCtxt(context, m.Comment); msgctxt != "" {
		writeString(w, "msgctxt", msgctxt)
	}

	writeString(w, "msgid", m.Source)

	if !m.Numerus {
		writeString(w, "msgstr", m.Translation)

		return
	}

	writeString(w, "msgid_plural", m.Source)

	forms := m.NumerusForms
	if len(forms) == 0 {
		forms = []string{""}
	}

	for i, f := range forms {
		writeString(w, fmt.Sprintf("msgstr[%d]", i), f)
	}
}

// writeString writes keyword followed by s as a .po string, splitting
// multi-line values after each newline the way msgmerge does.
func writeString(w *bufio.Writer, keyword, s string) {
	if !strings.Contains(strings.TrimSuffix(s, "\n"), "\n") {
		fmt.Fprintf(w, "%s %s\n", keyword, quote(s))

		return
	}

	fmt.Fprintf(w, "%s \"\"\n", keyword)

	for line := range strings.Lines(s) {
		fmt.Fprintln(w, quote(line))
	}
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}
