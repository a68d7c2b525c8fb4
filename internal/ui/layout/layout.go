// Package layout draws the application frame around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 22

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether side panels should stack.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight reports whether screens should drop optional rows.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small.\n\nResize to at least %d x %d\n(current %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// Frame is the chrome around a screen: a header bar with the screen title
// and session stats, and a footer with key hints.
type Frame struct {
	Title    string
	Model    string
	Attempts int
	Average  float64
	Hints    []KeyHint
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws the frame at the given size. body is called with the space
// left between header and footer.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	header := f.header(width)
	footer := bar.Width(width).Render("  " + JoinHints(f.Hints))

	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// header puts the app name left, the title centered and stats right.
func (f Frame) header(width int) string {
	inner := max(width-4, 0)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  PrepBot")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	right := f.stats()

	row := lipgloss.PlaceHorizontal(inner, lipgloss.Center, title)
	if lipgloss.Width(left)+lipgloss.Width(title)+lipgloss.Width(right)+2 <= inner {
		gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
		mid := lipgloss.PlaceHorizontal(gap, lipgloss.Center, title)
		row = left + mid + right
	}
	return bar.Width(width).Render(row)
}

func (f Frame) stats() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var parts []string
	if f.Model != "" {
		parts = append(parts, dim.Render(f.Model))
	}
	if f.Attempts == 0 {
		parts = append(parts, dim.Render("no answers yet"))
	} else {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("✎ %d", f.Attempts)),
			lipgloss.NewStyle().Foreground(theme.ScoreColor(int(f.Average))).Render(fmt.Sprintf("avg %.1f", f.Average)))
	}
	return strings.Join(parts, "   ") + "  "
}

// JoinHints renders hints as "Key desc" pairs on one line.
func JoinHints(hints []KeyHint) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return strings.Join(parts, "   ")
}
