// Package theme holds the PrepBot palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Muted slate backgrounds with indigo and teal accents read well
// through long answers.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title   = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Body    = lipgloss.NewStyle().Foreground(Text)
	Hint    = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Heading = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Warning  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Failure  = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	FocusedCard = Card.BorderForeground(Primary)
)

// ScoreBand is a score range with its color and a one-word verdict.
type ScoreBand struct {
	Min   int
	Color color.Color
	Label string
}

// Bands are ordered from the highest floor down. Scores outside 0-100 fall
// into the first or last band.
var Bands = []ScoreBand{
	{Min: 75, Color: Success, Label: "strong"},
	{Min: 50, Color: Accent, Label: "fair"},
	{Min: 0, Color: Error, Label: "weak"},
}

// Band returns the band a score falls in.
func Band(score int) ScoreBand {
	for _, b := range Bands {
		if score >= b.Min {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// ScoreColor maps a 0-100 score to its band color.
func ScoreColor(score int) color.Color {
	return Band(score).Color
}
