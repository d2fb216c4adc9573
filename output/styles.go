// Package output holds the terminal styles used when rendering diagnostics
// such as parse errors and timing reports.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles renders text for a terminal. A nil *Styles renders plain text, so
// callers can pass nil when writing to files or pipes.
type Styles struct {
	message lipgloss.Style
	context lipgloss.Style
	caret   lipgloss.Style
	dim     lipgloss.Style
	warning lipgloss.Style
	keyword lipgloss.Style
}

// NewStyles returns the default color scheme.
func NewStyles() *Styles {
	return &Styles{
		message: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}),
		context: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"}),
		caret:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}).Bold(true),
		dim:     lipgloss.NewStyle().Faint(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}).Bold(true),
		keyword: lipgloss.NewStyle().Bold(true),
	}
}

// ForWriter returns the default styles when w is a terminal and nil
// otherwise, so output redirected to a file stays free of escape codes.
func ForWriter(w io.Writer) *Styles {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return NewStyles()
}

// Message styles an error message.
func (s *Styles) Message(text string) string {
	if s == nil {
		return text
	}
	return s.message.Render(text)
}

// Context styles a quoted source line.
func (s *Styles) Context(text string) string {
	if s == nil {
		return text
	}
	return s.context.Render(text)
}

// Caret styles the marker pointing at an error column.
func (s *Styles) Caret(text string) string {
	if s == nil {
		return text
	}
	return s.caret.Render(text)
}

// Dim styles secondary information.
func (s *Styles) Dim(text string) string {
	if s == nil {
		return text
	}
	return s.dim.Render(text)
}

// Warning styles text that needs attention, such as slow timings.
func (s *Styles) Warning(text string) string {
	if s == nil {
		return text
	}
	return s.warning.Render(text)
}

// Keyword styles headings and names.
func (s *Styles) Keyword(text string) string {
	if s == nil {
		return text
	}
	return s.keyword.Render(text)
}
