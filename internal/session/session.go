package session

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/questiongen"
)

// ErrEmptyAnswer is returned when a blank or whitespace-only answer is
// submitted. Nothing changes in that case.
var ErrEmptyAnswer = errors.New("please enter an answer before submitting")

// ErrNoQuestion is returned when an answer is submitted before any
// question has been shown.
var ErrNoQuestion = errors.New("no question to answer")

// FetchReason tells why a render needs a new question.
type FetchReason int

const (
	// FetchSelectionChanged: no question yet, or role/type changed.
	FetchSelectionChanged FetchReason = iota + 1
	// FetchNext: the last answer was scored and the selection is unchanged.
	FetchNext
)

func (r FetchReason) String() string {
	switch r {
	case FetchSelectionChanged:
		return "selection-changed"
	case FetchNext:
		return "next"
	}
	return "none"
}

// FetchRequest describes the question a render must generate.
type FetchRequest struct {
	Reason FetchReason
	Role   string
	Type   questiongen.QuestionType
}

// Select records the live UI selection.
func Select(s State, sel Selection) State {
	s.SelectedRole = sel.Role
	s.SelectedType = sel.Type
	return s
}

// NextFetch evaluates the render-time rules. A missing question or a
// changed selection wins over a pending next-question flag.
func NextFetch(s State) (FetchRequest, bool) {
	if s.CurrentQuestion == nil || s.selectionChanged() {
		return FetchRequest{
			Reason: FetchSelectionChanged,
			Role:   s.SelectedRole,
			Type:   s.SelectedType,
		}, true
	}
	if s.AwaitingNewQuestion {
		return FetchRequest{
			Reason: FetchNext,
			Role:   s.SelectedRole,
			Type:   s.CurrentType,
		}, true
	}
	return FetchRequest{}, false
}

// ApplyFetch installs the question generated for req.
func ApplyFetch(s State, req FetchRequest, q *Question) State {
	s.CurrentQuestion = q
	s.CurrentType = req.Type
	s.AwaitingNewQuestion = false
	if req.Reason == FetchSelectionChanged {
		s.LastRole = req.Role
		s.LastType = req.Type
	}
	return s
}

// ApplyFeedback appends fb's score to l under the current type and flags
// that the next render must fetch a new question.
func ApplyFeedback(s State, l *Ledger, fb grading.Feedback) State {
	l.Append(s.CurrentType, fb.Score)
	s.AwaitingNewQuestion = true
	return s
}

// Reset clears l and returns a fresh State.
func Reset(l *Ledger) State {
	l.Clear()
	return State{}
}

// CheckAnswer returns ErrEmptyAnswer for a blank answer.
func CheckAnswer(answer string) error {
	if strings.TrimSpace(answer) == "" {
		return ErrEmptyAnswer
	}
	return nil
}

// Fetch runs req against gen. Generation errors never escape: they become
// a Failed question whose text is the sentinel.
func Fetch(ctx context.Context, gen questiongen.Generator, req FetchRequest) *Question {
	q, err := gen.Generate(ctx, req.Role, req.Type)
	if err != nil {
		return &Question{
			Text:   questiongen.SentinelText(err),
			Role:   req.Role,
			Type:   req.Type,
			Failed: true,
			Err:    err,
		}
	}
	return &Question{Text: q.Text, Role: req.Role, Type: req.Type}
}
