package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/questiongen"
	"github.com/abhisek/prepbot/internal/router"
	"github.com/abhisek/prepbot/internal/screen"
	"github.com/abhisek/prepbot/internal/screens/history"
	"github.com/abhisek/prepbot/internal/screens/home"
	"github.com/abhisek/prepbot/internal/screens/welcome"
	"github.com/abhisek/prepbot/internal/session"
	"github.com/abhisek/prepbot/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Generator   questiongen.Generator
	Evaluator   grading.Evaluator
	Events      history.EventLister
	ModelID     string
	ProviderErr error
	Logger      *zap.Logger

	// SkipSplash starts directly on the home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	ledger  *session.Ledger
	modelID string
	width  int
	height int
}

// newAppModel creates the root model with the splash (or home) screen.
func newAppModel(opts Options) AppModel {
	ledger := session.NewLedger()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	homeFactory := func() screen.Screen {
		return home.New(home.Deps{
			Generator:   opts.Generator,
			Evaluator:   opts.Evaluator,
			Ledger:      ledger,
			Events:      opts.Events,
			ModelID:     opts.ModelID,
			ProviderErr: opts.ProviderErr,
			Log:         log,
		})
	}

	var first screen.Screen
	if opts.SkipSplash {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}

	return AppModel{
		router:  router.New(first),
		ledger:  ledger,
		modelID: opts.ModelID,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Screens with resizable widgets (the answer box) need it too.
		return m, m.router.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Replies are routed to the top screen only, so leaving a busy
			// screen would drop them.
			if b, ok := m.router.Active().(screen.BusyReporter); ok && b.Busy() {
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	frame := layout.Frame{
		Title:    m.router.Trail(),
		Model:    m.modelID,
		Attempts: m.ledger.Len(),
		Average:  m.ledger.Average(),
		Hints:    m.hints(active),
	}.Render(m.width, m.height, m.router.View)

	v.SetContent(frame)
	return v
}

// hints returns the active screen's key hints, or defaults for the menu
// and for pushed screens.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
