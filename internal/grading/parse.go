package grading

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/prepbot/internal/llm"
)

// ErrNoJSONObject means the reply has no "{" followed later by a "}".
var ErrNoJSONObject = errors.New("no JSON object in response")

// ErrScoreRange means the score cannot be held in an int.
var ErrScoreRange = errors.New("score out of integer range")

// feedbackOutput is the raw object before rounding.
type feedbackOutput struct {
	Score       float64 `json:"score"`
	Feedback    string  `json:"feedback"`
	Improvement string  `json:"improvement"`
}

// extractObject returns the text from the first "{" through the last "}".
func extractObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// Parse extracts Feedback from a model reply. No repair is attempted: the
// extracted span must be a single valid JSON object matching FeedbackSchema.
func Parse(text string) (Feedback, error) {
	obj, err := extractObject(text)
	if err != nil {
		return Feedback{}, err
	}

	if err := llm.ValidateJSON(FeedbackSchema, []byte(obj)); err != nil {
		return Feedback{}, err
	}

	var out feedbackOutput
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return Feedback{}, fmt.Errorf("decode feedback: %w", err)
	}

	score := math.Round(out.Score)
	if math.IsNaN(score) || score < math.MinInt || score >= math.MaxInt {
		return Feedback{}, fmt.Errorf("%w: %g", ErrScoreRange, out.Score)
	}

	return Feedback{
		Score:       int(score),
		Feedback:    out.Feedback,
		Improvement: out.Improvement,
	}, nil
}
