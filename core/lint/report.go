// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lint

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// FileReport holds the result for one catalog.
type FileReport struct {
	File       string    `json:"file"               yaml:"file"`
	Language   string    `json:"language,omitempty" yaml:"language,omitempty"`
	Messages   int       `json:"messages"           yaml:"messages"`
	Unfinished int       `json:"unfinished"         yaml:"unfinished"`
	Findings   []Finding `json:"findings"           yaml:"findings"`
}

// Report is the result of a lint run.
type Report struct {
	Files []FileReport `json:"files" yaml:"files"`
}

// Count returns the number of findings with severity s.
func (r *Report) Count(s Severity) int {
	n := 0

	for _, f := range r.Files {
		for _, fd := range f.Findings {
			if fd.Severity == s {
				n++
			}
		}
	}

	return n
}

// Failed reports whether any finding is at or above threshold.
func (r *Report) Failed(threshold Severity) bool {
	for _, f := range r.Files {
		for _, fd := range f.Findings {
			if fd.Severity >= threshold {
				return true
			}
		}
	}

	return false
}

// WriteText writes one line per finding followed by a summary.
func (r *Report) WriteText(w io.Writer) error {
	unfinished := 0

	for _, f := range r.Files {
		unfinished += f.Unfinished

		for _, fd := range f.Findings {
			if _, err := fmt.Fprintln(w, fd.String()); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d file(s): %d error(s), %d warning(s), %d info; %d unfinished translation(s)\n",
		len(r.Files), r.Count(Error), r.Count(Warning), r.Count(Info), unfinished)

	return err
}

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// WriteYAML writes r as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(r)
}

// Write dispatches on format: "text", "json" or "yaml".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return r.WriteText(w)
	case "json":
		return r.WriteJSON(w)
	case "yaml":
		return r.WriteYAML(w)
	}

	return fmt.Errorf("unknown report format %q", format)
}
