package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/router"
	"github.com/abhisek/prepbot/internal/screen"
	"github.com/abhisek/prepbot/internal/session"
	"github.com/abhisek/prepbot/internal/ui/components"
	"github.com/abhisek/prepbot/internal/ui/layout"
	"github.com/abhisek/prepbot/internal/ui/theme"
)

// SummaryScreen shows the full progress of the current session: averages
// per question type and every attempt, newest first.
type SummaryScreen struct {
	ledger *session.Ledger
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen over ledger.
func New(ledger *session.Ledger) *SummaryScreen {
	return &SummaryScreen{ledger: ledger}
}

func (s *SummaryScreen) Init() tea.Cmd {
	s.offset = 0
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Progress"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < s.ledger.Len()-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := session.Summarize(s.ledger)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(center(theme.Title.Render("Your progress")))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d        Overall average: %s",
		sum.Attempts, session.FormatAverage(sum.Average))
	b.WriteString(center(theme.Body.Render(statsLine)))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	b.WriteString(center(components.NewMeter("Overall", sum.Progress, barWidth).View()))
	b.WriteString("\n")
	for _, ta := range sum.ByType {
		label := fmt.Sprintf("%-20s", ta.Type.Label())
		b.WriteString(center(components.NewScoreMeter(label, ta.Average, barWidth).View()))
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Attempts")))
	b.WriteString("\n")
	b.WriteString(center(divider))
	b.WriteString("\n")

	attempts := s.ledger.Recent(s.ledger.Len())
	if len(attempts) == 0 {
		b.WriteString(center(theme.Hint.Render("No attempts yet. Start practicing!")))
		return b.String()
	}
	for _, a := range attempts[min(s.offset, len(attempts)-1):] {
		line := lipgloss.NewStyle().Foreground(theme.ScoreColor(a.Score)).Render(a.String())
		b.WriteString(center(line))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(b.String())
}
