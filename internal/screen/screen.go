// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepbot/internal/ui/layout"
)

// Screen is one page of the TUI. It draws only the area between the header
// and footer; the title feeds the header trail.
type Screen interface {
	Init() tea.Cmd

	// Update may return a different screen to take this one's place.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	View(width, height int) string

	// Title is empty for screens that should not show in the trail.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints, e.g. to
// hide input keys while an LLM call is in flight.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BusyReporter is implemented by screens waiting on work whose result only
// they can receive. The app keeps such a screen on top until it is idle.
type BusyReporter interface {
	Busy() bool
}
