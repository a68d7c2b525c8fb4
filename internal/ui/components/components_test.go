package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestSelectorWraps(t *testing.T) {
	s := NewSelector("Role", []string{"Python", "SQL", "Java"})
	s.Focused = true

	s, changed := s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if !changed || s.Value() != "Java" {
		t.Errorf("left from first = %q (changed %v), want Java", s.Value(), changed)
	}
	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.Value() != "Python" {
		t.Errorf("right from last = %q, want Python", s.Value())
	}
}

func TestSelectorIgnoresInputUnlessFocused(t *testing.T) {
	s := NewSelector("Type", []string{"a", "b"})
	if _, changed := s.Update(tea.KeyPressMsg{Code: tea.KeyRight}); changed {
		t.Error("unfocused selector should not change")
	}
	s.Focused = true
	s.Disabled = true
	if _, changed := s.Update(tea.KeyPressMsg{Code: tea.KeyRight}); changed {
		t.Error("disabled selector should not change")
	}
}

func TestSelectorSelect(t *testing.T) {
	s := NewSelector("Role", []string{"Python", "SQL"})
	s.Select("SQL")
	if s.Value() != "SQL" {
		t.Errorf("Value = %q, want SQL", s.Value())
	}
	s.Select("Rust")
	if s.Value() != "SQL" {
		t.Errorf("unknown option changed the selection to %q", s.Value())
	}
	if !strings.Contains(s.View(), "SQL") {
		t.Error("view should show the selected option")
	}
}

func TestTextAreaBlank(t *testing.T) {
	ta := NewTextArea("answer", 40, 4)
	if !ta.Blank() {
		t.Error("new text area should be blank")
	}
	ta.Model.SetValue("  \n ")
	if !ta.Blank() {
		t.Error("whitespace should count as blank")
	}
	ta.Model.SetValue("hash map")
	if ta.Blank() {
		t.Error("text should not be blank")
	}
	ta.Reset()
	if ta.Value() != "" {
		t.Errorf("Value after Reset = %q", ta.Value())
	}
}

func TestMenuSkipsDisabledAndWraps(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Errorf("down from last = %d, want wrap to 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 3 {
		t.Errorf("up from first = %d, want wrap to 3", m.Selected)
	}
}

func TestMenuShortcut(t *testing.T) {
	fired := ""
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Practice", Key: "p", Action: action("practice")},
		{Label: "Quit", Key: "q", Action: action("quit")},
		{Label: "Off", Key: "o", Disabled: true, Action: action("off")},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if fired != "quit" || m.Selected != 1 {
		t.Errorf("fired %q at %d, want quit at 1", fired, m.Selected)
	}
	fired = ""
	m.Update(tea.KeyPressMsg{Code: 'o', Text: "o"})
	if fired != "" {
		t.Errorf("disabled shortcut fired %q", fired)
	}
	if !strings.Contains(m.View(30), "[p]") {
		t.Error("view should show shortcut keys")
	}
}

func TestMeterClamps(t *testing.T) {
	if got := NewMeter("", 1.5, 20).View(); !strings.Contains(got, "100%") {
		t.Errorf("over-full meter = %q, want 100%%", got)
	}
	if got := NewMeter("", -0.2, 20).View(); !strings.Contains(got, " 0%") {
		t.Errorf("negative meter = %q, want 0%%", got)
	}
	if got := NewScoreMeter("SQL", 72.5, 30).View(); !strings.Contains(got, "72%") || !strings.Contains(got, "SQL") {
		t.Errorf("score meter = %q", got)
	}
}
