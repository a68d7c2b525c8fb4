package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/questiongen"
	"github.com/abhisek/prepbot/internal/router"
	"github.com/abhisek/prepbot/internal/screen"
	"github.com/abhisek/prepbot/internal/screens/history"
	"github.com/abhisek/prepbot/internal/screens/placeholder"
	"github.com/abhisek/prepbot/internal/screens/practice"
	"github.com/abhisek/prepbot/internal/screens/summary"
	"github.com/abhisek/prepbot/internal/session"
	"github.com/abhisek/prepbot/internal/ui/components"
	"github.com/abhisek/prepbot/internal/ui/theme"
)

const titleArt = "P R E P B O T"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// Deps are the collaborators the home screen hands to the screens it opens.
// Generator and Evaluator are nil when no LLM provider is configured;
// Events is nil when the audit log is unavailable.
type Deps struct {
	Generator   questiongen.Generator
	Evaluator   grading.Evaluator
	Ledger      *session.Ledger
	Events      history.EventLister
	ModelID     string
	ProviderErr error
	Log         *zap.Logger
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	practice *practice.PracticeScreen
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Ledger == nil {
		deps.Ledger = session.NewLedger()
	}
	h := &HomeScreen{deps: deps}

	noLLM := deps.Generator == nil || deps.Evaluator == nil
	items := []components.MenuItem{
		{Label: "START PRACTICE", Key: "p", Disabled: noLLM, Action: h.openPractice},
		{Label: "PROGRESS", Key: "g", Action: func() tea.Cmd {
			return push(summary.New(deps.Ledger))
		}},
		{Label: "AI HISTORY", Key: "h", Disabled: deps.Events == nil, Action: func() tea.Cmd {
			return push(history.New(deps.Events))
		}},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// openPractice pushes the practice screen, reusing it across visits so the
// current question survives a trip back to the menu.
func (h *HomeScreen) openPractice() tea.Cmd {
	if h.deps.Generator == nil || h.deps.Evaluator == nil {
		return push(placeholder.New("Practice", providerHelp(h.deps.ProviderErr)))
	}
	if h.practice == nil {
		h.practice = practice.New(h.deps.Generator, h.deps.Evaluator, h.deps.Ledger, h.deps.Log)
	}
	return push(h.practice)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func providerHelp(err error) string {
	msg := "No LLM provider is configured.\nSet GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)\nand restart PrepBot."
	if err != nil {
		msg += "\n\n" + err.Error()
	}
	return msg
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Title.Render(titleArt)),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Hint.Render("AI interview practice")),
		renderStatsBar(h.deps.Ledger, h.deps.ModelID, cw),
	}
	if h.menu.Items[0].Disabled {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Width(cw).
			Align(lipgloss.Center).
			Render("⚠ Set an LLM API key to start practicing (see prepbot --help)"))
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(h.menu.View(buttonWidth)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// renderStatsBar renders the session stats in a bordered box.
func renderStatsBar(l *session.Ledger, modelID string, cw int) string {
	attempts := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("✎ %d ANSWERED", l.Len()))
	avg := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render("AVG " + session.FormatAverage(l.Average()))

	stats := attempts + "   " + avg
	if modelID != "" {
		stats += "   " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(modelID)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}
