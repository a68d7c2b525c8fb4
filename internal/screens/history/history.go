package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepbot/internal/llm"
	"github.com/abhisek/prepbot/internal/router"
	"github.com/abhisek/prepbot/internal/screen"
	"github.com/abhisek/prepbot/internal/store"
	"github.com/abhisek/prepbot/internal/ui/layout"
	"github.com/abhisek/prepbot/internal/ui/theme"
)

// pageSize is how many recent LLM calls the screen loads.
const pageSize = 50

// EventLister reads recorded LLM calls, newest first.
type EventLister interface {
	QueryLLMEvents(ctx context.Context, opts store.QueryOpts) ([]store.LLMEvent, error)
}

type historyLoadedMsg struct {
	Events []store.LLMEvent
	Err    error
}

// HistoryScreen lists recent LLM calls from the audit log.
type HistoryScreen struct {
	events   EventLister
	records  []store.LLMEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events EventLister) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		records, err := events.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "AI History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading AI history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No AI calls recorded yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		status := "ok"
		if !e.Success {
			status = "FAILED"
		}
		line := fmt.Sprintf("%s%s  %-12s %-28s %5d tok  %6dms  %s",
			prefix,
			e.Timestamp.Local().Format("Jan 02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens+e.OutputTokens,
			e.LatencyMs,
			status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !e.Success:
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(e) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return lipgloss.NewStyle().MaxHeight(height).Render(b.String())
}

// details returns the expanded lines for one event.
func details(e store.LLMEvent) []string {
	lines := []string{
		"session " + e.SessionID,
		fmt.Sprintf("provider %s  in %d / out %d tokens", e.Provider, e.InputTokens, e.OutputTokens),
	}
	if c := llm.LookupCost(e.Model); c != nil {
		lines = append(lines, fmt.Sprintf("est. cost $%.6f", c.Cost(e.InputTokens, e.OutputTokens)))
	}
	if e.ErrorMessage != "" {
		lines = append(lines, "error: "+truncate(e.ErrorMessage, 80))
	}
	return lines
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
