package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/sie/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	text *errors.TextFormatter
}

// NewErrorRenderer creates a renderer with decoded source text for context.
// An empty source renders messages only.
func NewErrorRenderer(source string) *ErrorRenderer {
	var opts []errors.TextFormatterOption
	if source != "" {
		opts = append(opts, errors.WithSource(source))
	}
	return &ErrorRenderer{text: errors.NewTextFormatter(opts...)}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	return style(r.text.Format(err))
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	return style(r.text.FormatAll(errs))
}

// style colors the plain text rendering: messages in the error color,
// source lines dimmed and the marker under the error line highlighted.
func style(plain string) string {
	lines := strings.Split(plain, "\n")
	for i, line := range lines {
		switch {
		case line == "":
		case line == "   ^":
			lines[i] = "   " + errCaretStyle.Render("^")
		case strings.HasPrefix(line, "   "):
			lines[i] = "   " + errContextStyle.Render(line[3:])
		default:
			lines[i] = errorStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
