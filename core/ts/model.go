// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"iter"
)

// TranslationType is the value of the type attribute of a <translation> element.
type TranslationType string

// Possible translation types. The zero value marks a finished translation.
const (
	Finished   TranslationType = ""
	Unfinished TranslationType = "unfinished"
	Vanished   TranslationType = "vanished"
	Obsolete   TranslationType = "obsolete"
)

// Valid reports whether t is one of the types lupdate and Qt Linguist write.
func (t TranslationType) Valid() bool {
	switch t {
	case Finished, Unfinished, Vanished, Obsolete:
		return true
	}

	return false
}

// Key identifies a message within a catalog.
type Key struct {
	Context string
	Source  string
	Comment string
}

// String formats k for log output.
func (k Key) String() string {
	if k.Comment == "" {
		return k.Context + "|" + k.Source
	}

	return k.Context + "|" + k.Source + " (" + k.Comment + ")"
}

// Location is a reference to the code that uses a message.
type Location struct {
	Filename string
	Line     int
}

// Message is a single translatable unit.
type Message struct {
	Source            string
	Comment           string // disambiguation
	ExtraComment      string // developer note, <extracomment>
	TranslatorComment string // <translatorcomment>
	Locations         []Location

	Numerus      bool
	Translation  string   // used when Numerus is false
	NumerusForms []string // used when Numerus is true

	Type TranslationType

	// Line is the line of the <message> element in the decoded file, or 0.
	Line int
}

// Key returns the lookup key of m inside the named context.
func (m *Message) Key(context string) Key {
	return Key{Context: context, Source: m.Source, Comment: m.Comment}
}

// IsActive reports whether m is still used by the application, that is, it
// is neither vanished nor obsolete.
func (m *Message) IsActive() bool {
	return m.Type != Vanished && m.Type != Obsolete
}

// IsEmpty reports whether m carries no translated text at all.
func (m *Message) IsEmpty() bool {
	if !m.Numerus {
		return m.Translation == ""
	}

	for _, f := range m.NumerusForms {
		if f != "" {
			return false
		}
	}

	return true
}

// Translations returns the translated forms of m: the numerus forms for a
// numerus message and a single element otherwise.
func (m *Message) Translations() []string {
	if m.Numerus {
		return m.NumerusForms
	}

	return []string{m.Translation}
}

// Context groups the messages of one UI class or module.
type Context struct {
	Name     string
	Messages []*Message

	// Line is the line of the <context> element in the decoded file, or 0.
	Line int
}

// Catalog is a decoded .ts file.
type Catalog struct {
	Version        string
	Language       string
	SourceLanguage string
	Contexts       []*Context

	index map[Key]*Message
}

// DefaultVersion is the TS format version written for new catalogs.
const DefaultVersion = "2.1"

// NewCatalog returns an empty catalog for language.
func NewCatalog(language string) *Catalog {
	return &Catalog{
		Version:  DefaultVersion,
		Language: language,
		index:    make(map[Key]*Message),
	}
}

// Context returns the context named name, or nil.
func (c *Catalog) Context(name string) *Context {
	for _, ctx := range c.Contexts {
		if ctx.Name == name {
			return ctx
		}
	}

	return nil
}

// Add appends m to the context named context, creating the context if needed.
// If a message with the same key already exists, the first one keeps
// answering lookups.
func (c *Catalog) Add(context string, m *Message) {
	ctx := c.Context(context)
	if ctx == nil {
		ctx = &Context{Name: context}
		c.Contexts = append(c.Contexts, ctx)
	}

	ctx.Messages = append(ctx.Messages, m)

	if c.index == nil {
		c.index = make(map[Key]*Message)
	}

	if _, ok := c.index[m.Key(context)]; !ok {
		c.index[m.Key(context)] = m
	}
}

// Reindex rebuilds the lookup index. It must be called after Contexts or the
// keys of their messages were modified directly.
func (c *Catalog) Reindex() {
	c.index = make(map[Key]*Message, c.Len())

	for ctx, m := range c.All() {
		k := m.Key(ctx.Name)
		if _, ok := c.index[k]; !ok {
			c.index[k] = m
		}
	}
}

// Lookup returns the message stored under k.
func (c *Catalog) Lookup(k Key) (*Message, bool) {
	if c.index == nil {
		c.Reindex()
	}

	m, ok := c.index[k]

	return m, ok
}

// Len returns the number of messages in c, duplicates included.
func (c *Catalog) Len() int {
	n := 0
	for _, ctx := range c.Contexts {
		n += len(ctx.Messages)
	}

	return n
}

// All iterates over every message in document order together with its context.
func (c *Catalog) All() iter.Seq2[*Context, *Message] {
	return func(yield func(*Context, *Message) bool) {
		for _, ctx := range c.Contexts {
			for _, m := range ctx.Messages {
				if !yield(ctx, m) {
					return
				}
			}
		}
	}
}
