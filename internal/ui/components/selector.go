package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/ui/theme"
)

// Selector is a one-line option picker cycled with left/right.
type Selector struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
	Disabled bool
}

// NewSelector creates a selector with the first option selected.
func NewSelector(label string, options []string) Selector {
	return Selector{Label: label, Options: options}
}

// Value returns the selected option, or "" when there are none.
func (s Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// Select moves the selection to opt. Unknown options are ignored.
func (s *Selector) Select(opt string) {
	for i, o := range s.Options {
		if o == opt {
			s.Selected = i
			return
		}
	}
}

// Update handles left/right while focused. The selection wraps around.
func (s Selector) Update(msg tea.Msg) (Selector, bool) {
	if !s.Focused || s.Disabled || len(s.Options) == 0 {
		return s, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, false
	}

	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
		return s, true
	case "right", "l":
		s.Selected = (s.Selected + 1) % len(s.Options)
		return s, true
	}
	return s, false
}

// View renders "Label: ◂ Option ▸".
func (s Selector) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Label + ": ")

	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	arrowStyle := lipgloss.NewStyle().Foreground(theme.Border)
	switch {
	case s.Disabled:
		valueStyle = valueStyle.Foreground(theme.TextDim)
	case s.Focused:
		valueStyle = theme.Selected
		arrowStyle = arrowStyle.Foreground(theme.Primary)
	}

	return label + arrowStyle.Render("◂ ") + valueStyle.Render(s.Value()) + arrowStyle.Render(" ▸")
}
