package grading

import "github.com/abhisek/prepbot/internal/llm"

// FeedbackSchema is the shape the scoring reply must have once the JSON
// object has been cut out of the surrounding text. Extra keys are allowed
// and the score range is not enforced.
var FeedbackSchema = &llm.Schema{
	Name:        "answer-feedback",
	Description: "Interview coach assessment of a candidate answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"description": "Score from 0 to 100",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Short feedback, at most three sentences",
			},
			"improvement": map[string]any{
				"type":        "string",
				"description": "What could be improved",
			},
		},
		"required": []any{"score", "feedback", "improvement"},
	},
}
