// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

var _ templ.Component = MsgKey{}

// Translatable is a value that can translate itself using a context.
// Types such as [MsgKey] implement Translatable.
type Translatable interface {
	Tr(ctx context.Context) string
}

// MsgKey names a message to be translated later, for tables of labels that
// are declared before any locale is known:
//
//	var weekdays = []i18n.MsgKey{
//		{Context: "CalendarWeekDayBar", Source: "Monday"},
//		{Context: "CalendarWeekDayBar", Source: "Tuesday"},
//	}
//
// Context and Source should be constant strings so that ts_extract can find them.
type MsgKey struct {
	Context string
	Source  string
	Comment string
}

// Tr translates k within the locale in ctx.
// The ctx may be nil, in which case the base locale is used.
func (k MsgKey) Tr(ctx context.Context) string {
	return TrC(ctx, k.Context, k.Source, k.Comment)
}

// Render writes the translation of k, which makes MsgKey a templ.Component.
func (k MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, k.Tr(ctx))

	return err
}
