// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package stats computes translation completion for catalogs.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"codeberg.org/tscat/tscat/core/ts"
)

// Counts tallies messages by state. Vanished and obsolete messages are
// counted in Obsolete and excluded from the completion ratio.
type Counts struct {
	Total      int `json:"total"      yaml:"total"`
	Finished   int `json:"finished"   yaml:"finished"`
	Unfinished int `json:"unfinished" yaml:"unfinished"`
	Empty      int `json:"empty"      yaml:"empty"`
	Obsolete   int `json:"obsolete"   yaml:"obsolete"`
}

// Active returns the number of messages still used by the application.
func (c Counts) Active() int {
	return c.Total - c.Obsolete
}

// Completion returns the share of active messages with a finished,
// non-empty translation. A catalog with nothing to translate is complete.
func (c Counts) Completion() float64 {
	if c.Active() == 0 {
		return 1
	}

	return float64(c.Finished) / float64(c.Active())
}

func (c *Counts) add(m *ts.Message) {
	c.Total++

	switch {
	case !m.IsActive():
		c.Obsolete++
	case m.Type == ts.Unfinished:
		c.Unfinished++
	case m.Type == ts.Finished && m.IsEmpty():
		c.Empty++
	case m.Type == ts.Finished:
		c.Finished++
	}
}

func (c *Counts) merge(o Counts) {
	c.Total += o.Total
	c.Finished += o.Finished
	c.Unfinished += o.Unfinished
	c.Empty += o.Empty
	c.Obsolete += o.Obsolete
}

// ContextStats holds the counts of one context.
type ContextStats struct {
	Name   string `json:"name" yaml:"name"`
	Counts `yaml:",inline"`
}

// FileStats holds the counts of one catalog.
type FileStats struct {
	File     string         `json:"file"     yaml:"file"`
	Language string         `json:"language" yaml:"language"`
	Counts   `yaml:",inline"`
	Contexts []ContextStats `json:"contexts,omitempty" yaml:"contexts,omitempty"`
}

// Compute counts the messages of cat, which was read from file.
func Compute(file string, cat *ts.Catalog) FileStats {
	st := FileStats{File: file, Language: cat.Language}

	for _, ctx := range cat.Contexts {
		cs := ContextStats{Name: ctx.Name}
		for _, m := range ctx.Messages {
			cs.add(m)
		}

		st.merge(cs.Counts)
		st.Contexts = append(st.Contexts, cs)
	}

	return st
}

// Summary aggregates several catalogs.
type Summary struct {
	Files  []FileStats `json:"files" yaml:"files"`
	Counts `yaml:",inline"`
}

// Summarize totals files.
func Summarize(files []FileStats) Summary {
	s := Summary{Files: files}
	for _, f := range files {
		s.merge(f.Counts)
	}

	return s
}

// WriteTable writes one row per file, and per context when perContext is set.
func (s Summary) WriteTable(w io.Writer, perContext bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "FILE\tLANG\tTOTAL\tDONE\tUNFINISHED\tEMPTY\tOBSOLETE\tCOMPLETE")

	row := func(name, lang string, c Counts) {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.1f%%\n",
			name, lang, c.Total, c.Finished, c.Unfinished, c.Empty, c.Obsolete, c.Completion()*100)
	}

	for _, f := range s.Files {
		row(f.File, f.Language, f.Counts)

		if perContext {
			for _, c := range f.Contexts {
				row("  "+c.Name, "", c.Counts)
			}
		}
	}

	if len(s.Files) > 1 {
		row("total", "", s.Counts)
	}

	return tw.Flush()
}

// Write dispatches on format: "text", "json" or "yaml".
func (s Summary) Write(w io.Writer, format string, perContext bool) error {
	switch format {
	case "", "text":
		return s.WriteTable(w, perContext)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(s)
	case "yaml":
		return yaml.NewEncoder(w).Encode(s)
	}

	return fmt.Errorf("unknown stats format %q", format)
}
