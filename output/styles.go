// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles provides styled output helpers for the CLI. Colors are only emitted
// when the writer is a terminal that supports them.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

func (s *Styles) color(text, color string) termenv.Style {
	return s.output.String(text).Foreground(s.output.Color(color))
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.color(text, "3").Bold().String()
}

// Account returns a styled account number or name (yellow).
func (s *Styles) Account(text string) string {
	return s.color(text, "3").String()
}

// Tag returns a styled record tag such as #VER (blue).
func (s *Styles) Tag(text string) string {
	return s.color(text, "4").Bold().String()
}

// Amount returns a styled amount. Credits (negative amounts) are red, debits
// are magenta.
func (s *Styles) Amount(text string, negative bool) string {
	if negative {
		return s.color(text, "1").String()
	}
	return s.color(text, "5").String()
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Output returns the underlying termenv Output for advanced usage.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
