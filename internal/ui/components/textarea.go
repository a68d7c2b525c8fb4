package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/ui/theme"
)

// TextArea wraps bubbles/textarea with PrepBot styling for multi-line
// answers.
type TextArea struct {
	Model textarea.Model
}

// NewTextArea creates an unfocused answer box.
func NewTextArea(placeholder string, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	return TextArea{Model: ta}
}

// Focus focuses the text area.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextArea) Blur() {
	t.Model.Blur()
}

// Focused reports whether the text area has focus.
func (t TextArea) Focused() bool {
	return t.Model.Focused()
}

// SetSize resizes the text area.
func (t *TextArea) SetSize(width, height int) {
	t.Model.SetWidth(width)
	t.Model.SetHeight(height)
}

// Update forwards messages to the underlying model.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text area with a border that follows focus.
func (t TextArea) View() string {
	border := theme.Border
	if t.Model.Focused() {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(t.Model.View())
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// Blank reports whether the text is empty or whitespace only.
func (t TextArea) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// Reset clears the text.
func (t *TextArea) Reset() {
	t.Model.Reset()
}
