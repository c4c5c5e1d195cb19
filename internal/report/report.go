// Package report renders the end-of-stage summary printed by each command.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorWarn      = lipgloss.Color("214") // Orange
)

// Title style for the stage name.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// Label style for row names.
var Label = lipgloss.NewStyle().
	Foreground(colorSecondary)

// Value style for counts.
var Value = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// Skip style for counts of dropped input.
var Skip = lipgloss.NewStyle().
	Foreground(colorWarn)

// Box around the whole summary.
var Box = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 1)

// Row is one labelled figure.
type Row struct {
	Label string
	Value string
	// Skipped marks counts of input that was dropped.
	Skipped bool
}

// Summary collects the figures of one stage run.
type Summary struct {
	Stage string
	Rows  []Row
}

// New starts a summary for stage.
func New(stage string) *Summary {
	return &Summary{Stage: stage}
}

// Add appends a row and returns s for chaining.
func (s *Summary) Add(label string, value any) *Summary {
	s.Rows = append(s.Rows, Row{Label: label, Value: format(value)})
	return s
}

// AddSkipped appends a row counting dropped input. Zero counts are left out.
func (s *Summary) AddSkipped(label string, n int) *Summary {
	if n == 0 {
		return s
	}
	s.Rows = append(s.Rows, Row{Label: label, Value: format(n), Skipped: true})
	return s
}

func format(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%.3f", x)
	default:
		return fmt.Sprint(x)
	}
}

// Render returns the styled summary.
func (s *Summary) Render() string {
	width := 0
	for _, r := range s.Rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	lines := []string{Title.Render(s.Stage)}
	for _, r := range s.Rows {
		label := Label.Render(r.Label + strings.Repeat(" ", width-lipgloss.Width(r.Label)))
		style := Value
		if r.Skipped {
			style = Skip
		}
		lines = append(lines, label+"  "+style.Render(r.Value))
	}
	return Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Print writes the rendered summary followed by a newline.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, s.Render())
}
