// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrMalformed is wrapped by every error returned for input that is not a
// well-formed TS document.
var ErrMalformed = errors.New("malformed TS document")

// decoder streams tokens so that element line numbers are available for
// diagnostics, which xml.Unmarshal does not expose.
type decoder struct {
	d *xml.Decoder

	// lupdate may write relative locations: filename omitted when unchanged,
	// line="+N" relative to the previous line in the same file.
	lastFile string
	lastLine map[string]int
}

// Decode parses a TS document from r.
func Decode(r io.Reader) (*Catalog, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	dec := &decoder{d: d, lastLine: make(map[string]int)}

	cat, err := dec.catalog()
	if err != nil {
		return nil, err
	}

	cat.Reindex()

	return cat, nil
}

// ParseFile decodes the .ts file at path.
func ParseFile(path string) (*Catalog, error) {
	f, err := os.Open(path) // #nosec G304 -- reading user supplied catalogs is the point
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cat, nil
}

// ParseFS decodes the .ts file name from fsys.
func ParseFS(fsys fs.FS, name string) (*Catalog, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return cat, nil
}

func (dec *decoder) malformed(err error) error {
	line, _ := dec.d.InputPos()

	return fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
}

func (dec *decoder) line() int {
	line, _ := dec.d.InputPos()

	return line
}

func (dec *decoder) token() (xml.Token, error) {
	tok, err := dec.d.Token()
	if err == io.EOF {
		return nil, dec.malformed(io.ErrUnexpectedEOF)
	}

	if err != nil {
		return nil, dec.malformed(err)
	}

	return tok, nil
}

func (dec *decoder) skip() error {
	if err := dec.d.Skip(); err != nil {
		return dec.malformed(err)
	}

	return nil
}

func (dec *decoder) catalog() (*Catalog, error) {
	var root xml.StartElement

	for {
		tok, err := dec.d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no <TS> element", ErrMalformed)
		}

		if err != nil {
			return nil, dec.malformed(err)
		}

		if se, ok := tok.(xml.StartElement); ok {
			root = se

			break
		}
	}

	if root.Name.Local != "TS" {
		return nil, fmt.Errorf("%w: root element is <%s>, want <TS>", ErrMalformed, root.Name.Local)
	}

	cat := &Catalog{
		Version:        attr(root, "version"),
		Language:       attr(root, "language"),
		SourceLanguage: attr(root, "sourcelanguage"),
	}

	err := dec.children(func(se xml.StartElement) error {
		if se.Name.Local != "context" {
			return dec.skip()
		}

		ctx, err := dec.context()
		if err != nil {
			return err
		}

		cat.Contexts = append(cat.Contexts, ctx)

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Anything after </TS> must still be well-formed.
	for {
		_, err := dec.d.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, dec.malformed(err)
		}
	}

	return cat, nil
}

// children calls fn for every child element of the element whose start tag
// was just read. fn must consume the child up to and including its end tag.
func (dec *decoder) children(fn func(xml.StartElement) error) error {
	for {
		tok, err := dec.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (dec *decoder) context() (*Context, error) {
	ctx := &Context{Line: dec.line()}

	err := dec.children(func(se xml.StartElement) error {
		switch se.Name.Local {
		case "name":
			name, err := dec.text()
			ctx.Name = name

			return err
		case "message":
			m, err := dec.message(se)
			if err != nil {
				return err
			}

			ctx.Messages = append(ctx.Messages, m)

			return nil
		default:
			return dec.skip()
		}
	})

	return ctx, err
}

func (dec *decoder) message(start xml.StartElement) (*Message, error) {
	m := &Message{
		Line:    dec.line(),
		Numerus: attr(start, "numerus") == "yes",
	}

	err := dec.children(func(se xml.StartElement) error {
		var err error

		switch se.Name.Local {
		case "location":
			dec.location(se, m)

			return dec.skip()
		case "source":
			m.Source, err = dec.text()
		case "comment":
			m.Comment, err = dec.text()
		case "extracomment":
			m.ExtraComment, err = dec.text()
		case "translatorcomment":
			m.TranslatorComment, err = dec.text()
		case "translation":
			m.Type = TranslationType(attr(se, "type"))
			err = dec.translation(m)
		default:
			// oldsource, oldcomment, userdata, extra-* elements.
			err = dec.skip()
		}

		return err
	})

	return m, err
}

func (dec *decoder) location(se xml.StartElement, m *Message) {
	file := attr(se, "filename")
	if file == "" {
		file = dec.lastFile
	}

	dec.lastFile = file

	line := 0
	if raw := attr(se, "line"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil {
			if raw[0] == '+' || raw[0] == '-' {
				n += dec.lastLine[file]
			}

			line = n
		}
	}

	dec.lastLine[file] = line

	if file != "" || line != 0 {
		m.Locations = append(m.Locations, Location{Filename: file, Line: line})
	}
}

func (dec *decoder) translation(m *Message) error {
	var (
		text        strings.Builder
		seenVariant bool
	)

	for {
		tok, err := dec.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "numerusform":
				s, err := dec.text()
				if err != nil {
					return err
				}

				m.NumerusForms = append(m.NumerusForms, s)
			case "lengthvariant":
				// Only the first (longest) variant is kept.
				s, err := dec.text()
				if err != nil {
					return err
				}

				if !seenVariant {
					text.WriteString(s)

					seenVariant = true
				}
			case "byte":
				text.WriteString(byteValue(t))

				if err := dec.skip(); err != nil {
					return err
				}
			default:
				if err := dec.skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if !m.Numerus {
				m.Translation = text.String()
			}

			return nil
		}
	}
}

// text reads character data up to the end of the current element.
func (dec *decoder) text() (string, error) {
	var b strings.Builder

	for {
		tok, err := dec.token()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if t.Name.Local == "byte" {
				b.WriteString(byteValue(t))
			}

			if err := dec.skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// byteValue decodes <byte value="x9"/>, which Qt uses for characters that
// XML 1.0 cannot carry.
func byteValue(se xml.StartElement) string {
	raw := attr(se, "value")

	var (
		v   uint64
		err error
	)

	if hex, ok := strings.CutPrefix(raw, "x"); ok {
		v, err = strconv.ParseUint(hex, 16, 32)
	} else {
		v, err = strconv.ParseUint(raw, 10, 32)
	}

	if err != nil {
		return ""
	}

	return string(rune(v))
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}
