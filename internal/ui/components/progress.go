package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/ui/theme"
)

// Meter is a horizontal bar for a 0-1 fraction. When Banded is set the
// fill takes the color of the matching score band.
type Meter struct {
	Label  string
	Value  float64
	Width  int
	Banded bool
}

// NewMeter creates a plain teal meter.
func NewMeter(label string, value float64, width int) Meter {
	return Meter{Label: label, Value: value, Width: width}
}

// NewScoreMeter creates a banded meter for an average score out of 100.
func NewScoreMeter(label string, average float64, width int) Meter {
	return Meter{Label: label, Value: average / 100, Width: width, Banded: true}
}

// View renders label, bar and percentage within Width cells. The value is
// clamped to [0, 1].
func (m Meter) View() string {
	v := min(max(m.Value, 0), 1)
	pct := fmt.Sprintf("%4d%%", int(v*100))

	var label string
	if m.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}

	bar := max(m.Width-lipgloss.Width(label)-len(pct)-1, 4)
	filled := int(float64(bar) * v)

	fill := theme.Secondary
	if m.Banded {
		fill = theme.ScoreColor(int(v * 100))
	}

	return label +
		lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled)) +
		" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}
