package practice

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/llm"
	"github.com/abhisek/prepbot/internal/questiongen"
	"github.com/abhisek/prepbot/internal/screen"
	"github.com/abhisek/prepbot/internal/session"
	"github.com/abhisek/prepbot/internal/ui/components"
	"github.com/abhisek/prepbot/internal/ui/layout"
	"github.com/abhisek/prepbot/internal/ui/theme"
)

type focusArea int

const (
	focusRole focusArea = iota
	focusType
	focusAnswer
	focusCount
)

type busyKind int

const (
	busyIdle busyKind = iota
	busyFetching
	busyGrading
)

const emptyAnswerWarning = "Please enter an answer before submitting."

// PracticeScreen runs the question/answer loop. The session state lives
// here and only changes inside Update; remote calls run as commands and
// report back through messages. Input is ignored while a call is in flight.
type PracticeScreen struct {
	gen    questiongen.Generator
	eval   grading.Evaluator
	ledger *session.Ledger
	log    *zap.Logger

	sessionID string
	state     session.State
	feedback  *grading.Feedback
	warning   string

	roleSel components.Selector
	typeSel components.Selector
	answer  components.TextArea
	spinner spinner.Model
	focus   focusArea
	busy    busyKind
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.BusyReporter = (*PracticeScreen)(nil)

// New creates a practice screen. The ledger is shared with the rest of the
// app so the header and progress screen see the same attempts.
func New(gen questiongen.Generator, eval grading.Evaluator, ledger *session.Ledger, log *zap.Logger) *PracticeScreen {
	if log == nil {
		log = zap.NewNop()
	}

	typeLabels := make([]string, len(questiongen.Types))
	for i, t := range questiongen.Types {
		typeLabels[i] = t.Label()
	}

	s := &PracticeScreen{
		gen:       gen,
		eval:      eval,
		ledger:    ledger,
		log:       log,
		sessionID: uuid.NewString(),
		roleSel:   components.NewSelector("Role", questiongen.Roles),
		typeSel:   components.NewSelector("Type", typeLabels),
		answer:    components.NewTextArea("Type your answer here...", 60, 6),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.setFocus(focusRole)
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.render()
}

// Busy reports whether a fetch or grading call is in flight.
func (s *PracticeScreen) Busy() bool {
	return s.busy != busyIdle
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.busy != busyIdle {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Focus"},
		{Key: "←→", Description: "Change"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Reset"},
		{Key: "Esc", Description: "Home"},
	}
}

// selection reads the role and type currently shown by the selectors.
func (s *PracticeScreen) selection() session.Selection {
	t := questiongen.Types[0]
	if i := s.typeSel.Selected; i >= 0 && i < len(questiongen.Types) {
		t = questiongen.Types[i]
	}
	return session.Selection{Role: s.roleSel.Value(), Type: t}
}

// render evaluates the transition rules against the live selection and
// starts a fetch when one is due.
func (s *PracticeScreen) render() tea.Cmd {
	s.state = session.Select(s.state, s.selection())

	req, ok := session.NextFetch(s.state)
	if !ok {
		return nil
	}
	s.busy = busyFetching
	return tea.Batch(s.spinner.Tick, s.fetchCmd(req))
}

func (s *PracticeScreen) fetchCmd(req session.FetchRequest) tea.Cmd {
	gen, id := s.gen, s.sessionID
	return func() tea.Msg {
		ctx := llm.WithSessionID(context.Background(), id)
		return questionReadyMsg{
			SessionID: id,
			Request:   req,
			Question:  session.Fetch(ctx, gen, req),
		}
	}
}

func (s *PracticeScreen) gradeCmd(question, answer string) tea.Cmd {
	eval, id := s.eval, s.sessionID
	return func() tea.Msg {
		ctx := llm.WithSessionID(context.Background(), id)
		return feedbackReadyMsg{
			SessionID: id,
			Feedback:  eval.Evaluate(ctx, question, answer),
		}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s, s.handleQuestion(msg)

	case feedbackReadyMsg:
		return s, s.handleFeedback(msg)

	case spinner.TickMsg:
		if s.busy == busyIdle {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.WindowSizeMsg:
		w, _ := columnWidths(msg.Width)
		s.answer.SetSize(w-4, answerHeight(msg.Height))
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.focus == focusAnswer && s.busy == busyIdle {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleQuestion(msg questionReadyMsg) tea.Cmd {
	if msg.SessionID != s.sessionID {
		return nil
	}
	s.busy = busyIdle
	s.state = session.ApplyFetch(s.state, msg.Request, msg.Question)

	fields := []zap.Field{
		zap.String("session_id", s.sessionID),
		zap.Stringer("reason", msg.Request.Reason),
		zap.String("role", msg.Request.Role),
		zap.String("type", string(msg.Request.Type)),
	}
	if msg.Question.Failed {
		s.log.Warn("question fetch failed", append(fields, zap.Error(msg.Question.Err))...)
	} else {
		s.log.Info("question fetched", fields...)
	}

	// The selection is frozen while fetching, so this normally finds
	// nothing to do.
	return s.render()
}

func (s *PracticeScreen) handleFeedback(msg feedbackReadyMsg) tea.Cmd {
	if msg.SessionID != s.sessionID {
		return nil
	}
	s.busy = busyIdle
	fb := msg.Feedback
	s.feedback = &fb
	s.state = session.ApplyFeedback(s.state, s.ledger, fb)
	s.answer.Reset()

	s.log.Info("answer graded",
		zap.String("session_id", s.sessionID),
		zap.String("type", string(s.state.CurrentType)),
		zap.Int("score", fb.Score))

	// Re-render at once so the next question is fetched.
	return s.render()
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.busy != busyIdle {
		return nil
	}

	switch msg.String() {
	case "tab":
		return s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		return s.submit()
	case "ctrl+r":
		return s.reset()
	}

	switch s.focus {
	case focusRole, focusType:
		var changed bool
		if s.focus == focusRole {
			s.roleSel, changed = s.roleSel.Update(msg)
		} else {
			s.typeSel, changed = s.typeSel.Update(msg)
		}
		if changed {
			s.warning = ""
			return s.render()
		}
		if msg.String() == "enter" {
			return s.setFocus(focusAnswer)
		}
		return nil
	}

	s.warning = ""
	var cmd tea.Cmd
	s.answer, cmd = s.answer.Update(msg)
	return cmd
}

func (s *PracticeScreen) setFocus(f focusArea) tea.Cmd {
	s.focus = f
	s.roleSel.Focused = f == focusRole
	s.typeSel.Focused = f == focusType
	if f == focusAnswer {
		return s.answer.Focus()
	}
	s.answer.Blur()
	return nil
}

func (s *PracticeScreen) submit() tea.Cmd {
	answer := s.answer.Value()
	if err := session.CheckAnswer(answer); err != nil {
		s.warning = emptyAnswerWarning
		return nil
	}
	q := s.state.CurrentQuestion
	if q == nil {
		s.warning = "No question to answer yet."
		return nil
	}

	s.warning = ""
	s.busy = busyGrading
	return tea.Batch(s.spinner.Tick, s.gradeCmd(q.Text, answer))
}

func (s *PracticeScreen) reset() tea.Cmd {
	s.state = session.Reset(s.ledger)
	s.sessionID = uuid.NewString()
	s.feedback = nil
	s.warning = ""
	s.answer.Reset()
	s.log.Info("session reset", zap.String("session_id", s.sessionID))
	return s.render()
}

func (s *PracticeScreen) View(width, height int) string {
	role, typ := s.roleSel, s.typeSel
	role.Disabled = s.busy != busyIdle
	typ.Disabled = s.busy != busyIdle
	selectors := "  " + role.View() + "    " + typ.View()

	mainW, sideW := columnWidths(width)
	main := lipgloss.JoinVertical(lipgloss.Left,
		s.questionView(mainW),
		s.answer.View(),
		s.statusView(),
		s.feedbackView(mainW),
	)
	summary := session.Summarize(s.ledger)

	var body string
	if sideW == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, main, renderProgress(summary, mainW))
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, " ", renderProgress(summary, sideW))
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(selectors + "\n\n" + body)
}

func (s *PracticeScreen) questionView(width int) string {
	q := s.state.CurrentQuestion
	title := "Question (" + s.state.CurrentType.Label() + "):"

	switch {
	case s.busy == busyFetching:
		return components.Panel("Question", s.spinner.View()+" Generating question...", width, false)
	case q.Empty():
		return components.Panel("Question", theme.Hint.Render("No question available."), width, false)
	case q.Failed:
		return components.Panel(title, theme.Failure.Render(q.Text), width, false)
	}
	return components.Panel(title, theme.Body.Width(width-4).Render(q.Text), width, false)
}

func (s *PracticeScreen) statusView() string {
	switch {
	case s.busy == busyGrading:
		return "  " + s.spinner.View() + " Evaluating your answer..."
	case s.warning != "":
		return "  " + theme.Warning.Render("⚠ "+s.warning)
	}
	return ""
}

func (s *PracticeScreen) feedbackView(width int) string {
	if s.feedback == nil {
		return ""
	}
	fb := s.feedback
	band := theme.Band(fb.Score)
	score := lipgloss.NewStyle().Foreground(band.Color).Bold(true).
		Render(scoreText(fb.Score) + " (" + band.Label + ")")
	body := theme.Body.Width(width - 4).Render(
		"Feedback: " + fb.Feedback + "\n\nImprovement: " + fb.Improvement)
	return components.Panel("Last answer  "+score, body, width, false)
}

// columnWidths splits the content width into the main column and the
// progress sidebar. Compact terminals stack the sidebar below (width 0).
func columnWidths(width int) (main, side int) {
	if layout.IsCompactWidth(width) {
		return width, 0
	}
	side = width / 3
	if side > 40 {
		side = 40
	}
	return width - side - 1, side
}

func answerHeight(termHeight int) int {
	if layout.IsCompactHeight(termHeight) {
		return 3
	}
	return 6
}
