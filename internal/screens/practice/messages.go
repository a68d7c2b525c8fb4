package practice

import (
	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/session"
)

// questionReadyMsg carries a generated (or failed) question back to Update.
type questionReadyMsg struct {
	SessionID string
	Request   session.FetchRequest
	Question  *session.Question
}

// feedbackReadyMsg carries the evaluation of a submitted answer.
type feedbackReadyMsg struct {
	SessionID string
	Feedback  grading.Feedback
}
