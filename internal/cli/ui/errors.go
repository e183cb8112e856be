// Package ui formats CLI diagnostics: colored problem reports with
// did-you-mean suggestions for misspelled identifiers.
package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Level is the severity of a diagnostic.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Diagnostic is one formatted problem report.
type Diagnostic struct {
	Level        Level
	Context      string   // short category, e.g. "unknown message type"
	Problem      string   // one-line description
	Suggestions  []string // did-you-mean candidates
	HelpCommands []string // follow-up commands to run
	NoColor      bool
}

// Format renders the diagnostic as a multi-line message.
//
// Example output:
//
//	⚠ UNKNOWN MESSAGE TYPE: ChatEvnt
//	   Did you mean: ChatEvent?
//	   → Get help: asyncdoc compile --help
func (d Diagnostic) Format() string {
	var b strings.Builder

	var headerColor *color.Color
	var symbol string
	switch d.Level {
	case LevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		symbol = "✗"
	case LevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		symbol = "⚠"
	default:
		headerColor = color.New(color.FgCyan, color.Bold)
		symbol = "ℹ"
	}
	if d.NoColor {
		headerColor.DisableColor()
	}

	if d.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(d.Context), d.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, d.Problem)
	}

	if len(d.Suggestions) > 0 {
		b.WriteString("   Did you mean: " + strings.Join(d.Suggestions, ", ") + "?\n")
	}
	for _, cmd := range d.HelpCommands {
		b.WriteString("   → " + cmd + "\n")
	}

	return b.String()
}

// UnknownTypeWarning builds the diagnostic for a message type identifier
// that no type definition provides, with fuzzy suggestions drawn from the
// defined type names.
func UnknownTypeWarning(name string, defined []string) Diagnostic {
	return Diagnostic{
		Level:       LevelWarning,
		Context:     "unknown message type",
		Problem:     name,
		Suggestions: FindSimilar(name, defined, nil),
	}
}
