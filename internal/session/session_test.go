package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/llm"
	"github.com/abhisek/prepbot/internal/questiongen"
)

type generateCall struct {
	role      string
	t         questiongen.QuestionType
	sessionID string
}

// fakeGenerator numbers its questions so tests can tell fetches apart.
type fakeGenerator struct {
	calls []generateCall
	err   error
}

func (g *fakeGenerator) Generate(ctx context.Context, role string, t questiongen.QuestionType) (*questiongen.Question, error) {
	g.calls = append(g.calls, generateCall{role: role, t: t, sessionID: llm.SessionIDFrom(ctx)})
	if g.err != nil {
		return nil, g.err
	}
	return &questiongen.Question{
		Text: fmt.Sprintf("Q%d %s %s", len(g.calls), role, t),
		Role: role,
		Type: t,
	}, nil
}

type fakeEvaluator struct {
	score     int
	questions []string
	answers   []string
}

func (e *fakeEvaluator) Evaluate(_ context.Context, question, answer string) grading.Feedback {
	e.questions = append(e.questions, question)
	e.answers = append(e.answers, answer)
	return grading.Feedback{Score: e.score, Feedback: "ok", Improvement: "more"}
}

func TestNextFetch(t *testing.T) {
	q := &Question{Text: "q"}
	tests := []struct {
		name   string
		state  State
		want   FetchReason
		wantOK bool
		role   string
		typ    questiongen.QuestionType
	}{
		{
			name:   "fresh session",
			state:  State{SelectedRole: "Python", SelectedType: questiongen.Coding},
			want:   FetchSelectionChanged,
			wantOK: true,
			role:   "Python",
			typ:    questiongen.Coding,
		},
		{
			name: "question showing",
			state: State{
				SelectedRole: "Python", SelectedType: questiongen.Coding,
				CurrentType: questiongen.Coding, CurrentQuestion: q,
				LastRole: "Python", LastType: questiongen.Coding,
			},
		},
		{
			name: "role changed",
			state: State{
				SelectedRole: "SQL", SelectedType: questiongen.Coding,
				CurrentType: questiongen.Coding, CurrentQuestion: q,
				LastRole: "Python", LastType: questiongen.Coding,
			},
			want:   FetchSelectionChanged,
			wantOK: true,
			role:   "SQL",
			typ:    questiongen.Coding,
		},
		{
			name: "awaiting next question",
			state: State{
				SelectedRole: "Python", SelectedType: questiongen.Coding,
				CurrentType: questiongen.Coding, CurrentQuestion: q,
				AwaitingNewQuestion: true,
				LastRole:            "Python", LastType: questiongen.Coding,
			},
			want:   FetchNext,
			wantOK: true,
			role:   "Python",
			typ:    questiongen.Coding,
		},
		{
			name: "type change beats pending next question",
			state: State{
				SelectedRole: "Python", SelectedType: questiongen.Technical,
				CurrentType: questiongen.Coding, CurrentQuestion: q,
				AwaitingNewQuestion: true,
				LastRole:            "Python", LastType: questiongen.Coding,
			},
			want:   FetchSelectionChanged,
			wantOK: true,
			role:   "Python",
			typ:    questiongen.Technical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := NextFetch(tt.state)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if req.Reason != tt.want {
				t.Errorf("Reason = %v, want %v", req.Reason, tt.want)
			}
			if req.Role != tt.role || req.Type != tt.typ {
				t.Errorf("req = %s/%s, want %s/%s", req.Role, req.Type, tt.role, tt.typ)
			}
		})
	}
}

func TestApplyFetch_NextKeepsLastSelection(t *testing.T) {
	s := State{
		SelectedRole: "Python", SelectedType: questiongen.Coding,
		CurrentType: questiongen.Coding, CurrentQuestion: &Question{Text: "old"},
		AwaitingNewQuestion: true,
		LastRole:            "Python", LastType: questiongen.Coding,
	}
	req := FetchRequest{Reason: FetchNext, Role: "Python", Type: questiongen.Coding}
	s = ApplyFetch(s, req, &Question{Text: "new"})

	if s.AwaitingNewQuestion {
		t.Error("AwaitingNewQuestion still set after fetch")
	}
	if s.CurrentQuestion.Text != "new" {
		t.Errorf("CurrentQuestion = %q, want new", s.CurrentQuestion.Text)
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Errorf("Phase = %v, want %v", s.Phase(), PhaseAwaitingAnswer)
	}
}

func TestCheckAnswer(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		if err := CheckAnswer(in); !errors.Is(err, ErrEmptyAnswer) {
			t.Errorf("CheckAnswer(%q) = %v, want ErrEmptyAnswer", in, err)
		}
	}
	if err := CheckAnswer(" x "); err != nil {
		t.Errorf("CheckAnswer(\" x \") = %v, want nil", err)
	}
}

func TestFetch_FailureBecomesSentinel(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	req := FetchRequest{Reason: FetchSelectionChanged, Role: "Python", Type: questiongen.Coding}

	q := Fetch(context.Background(), gen, req)
	if !q.Failed {
		t.Fatal("Failed = false, want true")
	}
	if q.Text != "[AI error: quota exceeded]" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Err == nil {
		t.Error("Err = nil, want the generation error")
	}
}

func TestController_Scenario(t *testing.T) {
	gen := &fakeGenerator{}
	eval := &fakeEvaluator{score: 80}
	c := New(gen, eval)
	ctx := context.Background()
	sel := Selection{Role: "Python", Type: questiongen.Coding}

	if c.State().Phase() != PhaseUninitialized {
		t.Fatalf("Phase = %v, want uninitialized", c.State().Phase())
	}

	// Rule 1: first render fetches for the selection.
	q1 := c.Render(ctx, sel)
	if len(gen.calls) != 1 {
		t.Fatalf("generate calls = %d, want 1", len(gen.calls))
	}
	st := c.State()
	if st.LastRole != "Python" || st.LastType != questiongen.Coding {
		t.Errorf("last = %s/%s, want Python/coding", st.LastRole, st.LastType)
	}
	if st.CurrentType != questiongen.Coding {
		t.Errorf("CurrentType = %s, want coding", st.CurrentType)
	}
	if gen.calls[0].sessionID != c.ID() {
		t.Errorf("generate sessionID = %q, want %q", gen.calls[0].sessionID, c.ID())
	}

	// A render with nothing changed reuses the question.
	if got := c.Render(ctx, sel); got != q1 {
		t.Error("unchanged render replaced the question")
	}
	if len(gen.calls) != 1 {
		t.Errorf("generate calls = %d, want 1", len(gen.calls))
	}

	// Rule 2: submit grades against the displayed question.
	fb, err := c.Submit(ctx, "use a dict")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Score != 80 {
		t.Errorf("Score = %d, want 80", fb.Score)
	}
	if eval.questions[0] != q1.Text {
		t.Errorf("evaluated question = %q, want %q", eval.questions[0], q1.Text)
	}
	if c.Ledger().Len() != 1 {
		t.Errorf("ledger len = %d, want 1", c.Ledger().Len())
	}
	if !c.State().AwaitingNewQuestion {
		t.Error("AwaitingNewQuestion = false after submit")
	}
	if c.State().Phase() != PhaseAwaitingNextQuestion {
		t.Errorf("Phase = %v, want awaiting-next-question", c.State().Phase())
	}

	// Rule 3: next render fetches for the current type and clears the flag.
	q2 := c.Render(ctx, sel)
	if len(gen.calls) != 2 {
		t.Fatalf("generate calls = %d, want 2", len(gen.calls))
	}
	if gen.calls[1].t != questiongen.Coding {
		t.Errorf("second fetch type = %s, want coding", gen.calls[1].t)
	}
	if q2 == q1 {
		t.Error("next render kept the answered question")
	}
	if c.State().AwaitingNewQuestion {
		t.Error("AwaitingNewQuestion still set")
	}
}

func TestController_CurrentTypeFollowsDisplayedQuestion(t *testing.T) {
	gen := &fakeGenerator{}
	c := New(gen, &fakeEvaluator{score: 70})
	ctx := context.Background()

	c.Render(ctx, Selection{Role: "Python", Type: questiongen.Coding})
	c.Submit(ctx, "answer")

	// Selection switches to technical: rule 1 fetches with technical.
	c.Render(ctx, Selection{Role: "Python", Type: questiongen.Technical})
	if got := c.State().CurrentType; got != questiongen.Technical {
		t.Errorf("CurrentType = %s, want technical", got)
	}
	if got := gen.calls[len(gen.calls)-1].t; got != questiongen.Technical {
		t.Errorf("fetch type = %s, want technical", got)
	}

	c.Submit(ctx, "answer")
	attempts := c.Ledger().Attempts()
	if attempts[0].Type != questiongen.Coding || attempts[1].Type != questiongen.Technical {
		t.Errorf("attempt types = %s, %s; want coding, technical", attempts[0].Type, attempts[1].Type)
	}
}

func TestController_EmptyAnswerChangesNothing(t *testing.T) {
	gen := &fakeGenerator{}
	eval := &fakeEvaluator{score: 90}
	c := New(gen, eval)
	ctx := context.Background()

	q := c.Render(ctx, Selection{Role: "SQL", Type: questiongen.Coding})
	before := c.State()

	_, err := c.Submit(ctx, "   \n")
	if !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("err = %v, want ErrEmptyAnswer", err)
	}
	if c.Ledger().Len() != 0 {
		t.Errorf("ledger len = %d, want 0", c.Ledger().Len())
	}
	if len(eval.answers) != 0 {
		t.Errorf("evaluator called %d times, want 0", len(eval.answers))
	}
	if c.State() != before {
		t.Error("state changed after empty answer")
	}
	if c.State().CurrentQuestion != q {
		t.Error("current question replaced after empty answer")
	}
}

func TestController_SubmitBeforeQuestion(t *testing.T) {
	c := New(&fakeGenerator{}, &fakeEvaluator{})
	if _, err := c.Submit(context.Background(), "answer"); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("err = %v, want ErrNoQuestion", err)
	}
}

func TestController_FailedQuestionStillDisplayed(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	c := New(gen, &fakeEvaluator{score: 50})
	ctx := context.Background()

	q := c.Render(ctx, Selection{Role: "Java", Type: questiongen.Coding})
	if !q.Failed {
		t.Error("Failed = false, want true")
	}
	if c.State().Phase() != PhaseAwaitingAnswer {
		t.Errorf("Phase = %v, want awaiting-answer", c.State().Phase())
	}
	// The sentinel is shown like a question, so the answer box stays usable.
	if _, err := c.Submit(ctx, "answer"); err != nil {
		t.Errorf("Submit: %v", err)
	}
}

func TestController_Reset(t *testing.T) {
	gen := &fakeGenerator{}
	c := New(gen, &fakeEvaluator{score: 60})
	ctx := context.Background()
	sel := Selection{Role: "Python", Type: questiongen.Coding}

	for i := 0; i < 3; i++ {
		c.Render(ctx, sel)
		if _, err := c.Submit(ctx, "answer"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	oldID := c.ID()

	c.Reset()
	if c.Ledger().Len() != 0 {
		t.Errorf("ledger len = %d, want 0", c.Ledger().Len())
	}
	if c.State() != (State{}) {
		t.Errorf("state = %+v, want zero", c.State())
	}
	if c.LastFeedback() != nil {
		t.Error("LastFeedback not cleared")
	}
	if c.ID() == oldID {
		t.Error("session id not replaced")
	}

	// The next render behaves like a fresh session.
	calls := len(gen.calls)
	c.Render(ctx, sel)
	if len(gen.calls) != calls+1 {
		t.Errorf("generate calls = %d, want %d", len(gen.calls), calls+1)
	}
	last := gen.calls[len(gen.calls)-1]
	if last.role != "Python" || last.t != questiongen.Coding {
		t.Errorf("fetch = %s/%s, want Python/coding", last.role, last.t)
	}
	if c.State().LastRole != "Python" {
		t.Errorf("LastRole = %q, want Python", c.State().LastRole)
	}
}

func TestController_WithLLMComponents(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.Reply("  Write a function that reverses a list.  "),
		llm.Reply(`Sure: {"score": 75, "feedback": "Good.", "improvement": "Mention complexity."}`),
		llm.Reply("Explain list comprehensions."),
	)
	c := New(
		questiongen.New(provider, questiongen.DefaultConfig()),
		grading.New(provider, grading.Config{}, nil),
	)
	ctx := context.Background()
	sel := Selection{Role: "Python", Type: questiongen.Coding}

	q := c.Render(ctx, sel)
	if q.Text != "Write a function that reverses a list." {
		t.Errorf("question = %q", q.Text)
	}
	fb, err := c.Submit(ctx, "return xs[::-1]")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Score != 75 || fb.Improvement != "Mention complexity." {
		t.Errorf("feedback = %+v", fb)
	}
	if q := c.Render(ctx, sel); q.Text != "Explain list comprehensions." {
		t.Errorf("next question = %q", q.Text)
	}
	if got := c.Summary().Average; got != 75 {
		t.Errorf("Average = %v, want 75", got)
	}
}

func TestController_LogsCarrySessionID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := New(&fakeGenerator{}, &fakeEvaluator{score: 70}, WithLogger(zap.New(core)))
	ctx := context.Background()

	c.Render(ctx, Selection{Role: "Go", Type: questiongen.Coding})
	if _, err := c.Submit(ctx, "answer"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	graded := logs.FilterMessage("answer graded").All()
	if len(graded) != 1 {
		t.Fatalf("expected one graded entry, got %d", len(graded))
	}
	fields := graded[0].ContextMap()
	if fields["session_id"] != c.ID() {
		t.Fatalf("session_id = %v, want %s", fields["session_id"], c.ID())
	}
	if fields["score"] != int64(70) {
		t.Fatalf("score = %v, want 70", fields["score"])
	}
	if logs.FilterMessage("question fetched").Len() != 1 {
		t.Fatalf("expected one fetch entry")
	}
}
