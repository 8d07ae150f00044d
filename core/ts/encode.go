// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	indent1 = "    "
	indent2 = indent1 + indent1
	indent3 = indent2 + indent1
)

// Encode writes c to w using the layout of lupdate: an XML declaration, the
// TS doctype, four space indentation and absolute locations.
func Encode(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)

	version := c.Version
	if version == "" {
		version = DefaultVersion
	}

	bw.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!DOCTYPE TS>\n")
	fmt.Fprintf(bw, "<TS version=\"%s\"", protect(version))

	if c.Language != "" {
		fmt.Fprintf(bw, " language=\"%s\"", protect(c.Language))
	}

	if c.SourceLanguage != "" {
		fmt.Fprintf(bw, " sourcelanguage=\"%s\"", protect(c.SourceLanguage))
	}

	bw.WriteString(">\n")

	for _, ctx := range c.Contexts {
		bw.WriteString("<context>\n")
		fmt.Fprintf(bw, "%s<name>%s</name>\n", indent1, protect(ctx.Name))

		for _, m := range ctx.Messages {
			writeMessage(bw, m)
		}

		bw.WriteString("</context>\n")
	}

	bw.WriteString("</TS>\n")

	// bufio.Writer keeps the first write error and reports it here.
	return bw.Flush()
}

func writeMessage(bw *bufio.Writer, m *Message) {
	if m.Numerus {
		fmt.Fprintf(bw, "%s<message numerus=\"yes\">\n", indent1)
	} else {
		fmt.Fprintf(bw, "%s<message>\n", indent1)
	}

	for _, loc := range m.Locations {
		fmt.Fprintf(bw, "%s<location filename=\"%s\"", indent2, protect(loc.Filename))

		if loc.Line > 0 {
			fmt.Fprintf(bw, " line=\"%d\"", loc.Line)
		}

		bw.WriteString("/>\n")
	}

	fmt.Fprintf(bw, "%s<source>%s</source>\n", indent2, protect(m.Source))

	writeOptional(bw, "comment", m.Comment)
	writeOptional(bw, "extracomment", m.ExtraComment)
	writeOptional(bw, "translatorcomment", m.TranslatorComment)

	typeAttr := ""
	if m.Type != Finished {
		typeAttr = fmt.Sprintf(" type=\"%s\"", protect(string(m.Type)))
	}

	switch {
	case m.Numerus && len(m.NumerusForms) > 0:
		fmt.Fprintf(bw, "%s<translation%s>\n", indent2, typeAttr)

		for _, form := range m.NumerusForms {
			fmt.Fprintf(bw, "%s<numerusform>%s</numerusform>\n", indent3, protect(form))
		}

		fmt.Fprintf(bw, "%s</translation>\n", indent2)
	case m.Numerus:
		fmt.Fprintf(bw, "%s<translation%s></translation>\n", indent2, typeAttr)
	default:
		fmt.Fprintf(bw, "%s<translation%s>%s</translation>\n", indent2, typeAttr, protect(m.Translation))
	}

	fmt.Fprintf(bw, "%s</message>\n", indent1)
}

func writeOptional(bw *bufio.Writer, element, value string) {
	if value == "" {
		return
	}

	fmt.Fprintf(bw, "%s<%s>%s</%s>\n", indent2, element, protect(value), element)
}

// protect escapes s the way Qt's TS writer does. Control characters other
// than tab, newline and carriage return become <byte/> elements.
func protect(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
				fmt.Fprintf(&b, "<byte value=\"x%x\"/>", r)

				continue
			}

			b.WriteRune(r)
		}
	}

	return b.String()
}
