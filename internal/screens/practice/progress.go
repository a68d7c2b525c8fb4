package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/session"
	"github.com/abhisek/prepbot/internal/ui/components"
	"github.com/abhisek/prepbot/internal/ui/theme"
)

func scoreText(score int) string {
	return fmt.Sprintf("Score: %d/100", score)
}

// renderProgress draws the progress panel: recent attempts, overall and
// per-type averages, and a bar for the overall average.
func renderProgress(sum session.Summary, width int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(theme.Heading.Render("Recent"))
	b.WriteString("\n")
	if len(sum.Recent) == 0 {
		b.WriteString(theme.Hint.Render("No attempts yet."))
		b.WriteString("\n")
	}
	for _, a := range sum.Recent {
		line := fmt.Sprintf("%s | %s | %s",
			a.Type.Label(),
			lipgloss.NewStyle().Foreground(theme.ScoreColor(a.Score)).Render(fmt.Sprintf("Score: %d", a.Score)),
			a.Timestamp.Format(session.TimestampLayout))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Overall average: %s\n", theme.Selected.Render(session.FormatAverage(sum.Average))))
	for _, ta := range sum.ByType {
		b.WriteString(dim.Render(fmt.Sprintf("  %s: %s", ta.Type.Label(), session.FormatAverage(ta.Average))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.NewMeter("", sum.Progress, width-4).View())

	return components.Panel("Your Progress", b.String(), width, false)
}
