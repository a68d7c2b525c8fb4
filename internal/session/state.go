package session

import (
	"github.com/abhisek/prepbot/internal/questiongen"
)

// Phase is derived from State; it is never stored.
type Phase int

const (
	PhaseUninitialized        Phase = iota // no question yet
	PhaseAwaitingAnswer                    // a question is showing
	PhaseAwaitingNextQuestion              // an answer was scored; next render fetches
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAwaitingNextQuestion:
		return "awaiting-next-question"
	}
	return "unknown"
}

// Question is what the session shows. A failed generation still produces
// a Question: its Text is the sentinel and Failed is set.
type Question struct {
	Text   string
	Role   string
	Type   questiongen.QuestionType
	Failed bool
	Err    error
}

// Empty reports whether there is nothing to show.
func (q *Question) Empty() bool {
	return q == nil || q.Text == ""
}

// Selection is the role and type currently picked in the UI.
type Selection struct {
	Role string
	Type questiongen.QuestionType
}

// State is the session's mutable record. The zero value is a fresh
// session. Empty strings mean "not set" for the optional fields.
type State struct {
	SelectedRole string
	SelectedType questiongen.QuestionType

	// CurrentType is the type CurrentQuestion was generated with.
	CurrentType     questiongen.QuestionType
	CurrentQuestion *Question

	// AwaitingNewQuestion is set after an answer is scored.
	AwaitingNewQuestion bool

	LastRole string
	LastType questiongen.QuestionType
}

// Phase derives the state machine phase.
func (s State) Phase() Phase {
	switch {
	case s.CurrentQuestion == nil:
		return PhaseUninitialized
	case s.AwaitingNewQuestion:
		return PhaseAwaitingNextQuestion
	default:
		return PhaseAwaitingAnswer
	}
}

// Selection returns the currently selected role and type.
func (s State) Selection() Selection {
	return Selection{Role: s.SelectedRole, Type: s.SelectedType}
}

// selectionChanged reports whether the selection differs from the one the
// current question was generated for.
func (s State) selectionChanged() bool {
	return s.SelectedRole != s.LastRole || s.SelectedType != s.LastType
}
