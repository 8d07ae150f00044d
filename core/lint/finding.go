// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lint

import (
	"errors"
	"fmt"
	"strings"
)

// Severity orders findings. A report fails when it holds a finding at or
// above the configured threshold.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

var errUnknownSeverity = errors.New("unknown severity")

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}

	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity parses "info", "warning" (or "warn") and "error".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}

	return Info, fmt.Errorf("%w: %q", errUnknownSeverity, s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}

	*s = v

	return nil
}

// MarshalYAML writes the severity name instead of its number.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Rule names a check.
type Rule string

const (
	RuleMalformed        Rule = "xml-malformed"
	RuleVersion          Rule = "ts-version"
	RuleLanguageMissing  Rule = "language-missing"
	RuleLanguageInvalid  Rule = "language-invalid"
	RuleLanguageMismatch Rule = "language-mismatch"
	RuleEmptyContextName Rule = "empty-context-name"
	RuleEmptySource      Rule = "empty-source"
	RuleDuplicateKey     Rule = "duplicate-key"
	RuleInvalidType      Rule = "invalid-type"
	RuleUnfinished       Rule = "unfinished"
	RuleEmptyTranslation Rule = "empty-translation"
	RulePlaceholders     Rule = "placeholder-mismatch"
	RuleMarkup           Rule = "markup-mismatch"
	RuleNumerusForms     Rule = "numerus-forms"
	RuleWhitespace       Rule = "whitespace-mismatch"
)

// Rules lists every rule with its severity.
var Rules = map[Rule]Severity{
	RuleMalformed:        Error,
	RuleVersion:          Warning,
	RuleLanguageMissing:  Error,
	RuleLanguageInvalid:  Error,
	RuleLanguageMismatch: Warning,
	RuleEmptyContextName: Error,
	RuleEmptySource:      Error,
	RuleDuplicateKey:     Error,
	RuleInvalidType:      Error,
	RuleUnfinished:       Info,
	RuleEmptyTranslation: Warning,
	RulePlaceholders:     Warning,
	RuleMarkup:           Warning,
	RuleNumerusForms:     Warning,
	RuleWhitespace:       Info,
}

// Finding is a single problem in a catalog.
type Finding struct {
	File     string   `json:"file"              yaml:"file"`
	Line     int      `json:"line,omitempty"    yaml:"line,omitempty"`
	Context  string   `json:"context,omitempty" yaml:"context,omitempty"`
	Source   string   `json:"source,omitempty"  yaml:"source,omitempty"`
	Comment  string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Rule     Rule     `json:"rule"              yaml:"rule"`
	Severity Severity `json:"severity"          yaml:"severity"`
	Message  string   `json:"message"           yaml:"message"`
}

// String formats f like a compiler diagnostic.
func (f Finding) String() string {
	var b strings.Builder

	b.WriteString(f.File)

	if f.Line > 0 {
		fmt.Fprintf(&b, ":%d", f.Line)
	}

	fmt.Fprintf(&b, ": %s: [%s] %s", f.Severity, f.Rule, f.Message)

	if f.Source != "" {
		fmt.Fprintf(&b, " (context %q, source %q", f.Context, f.Source)

		if f.Comment != "" {
			fmt.Fprintf(&b, ", comment %q", f.Comment)
		}

		b.WriteString(")")
	}

	return b.String()
}
