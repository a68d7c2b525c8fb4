package grading

import (
	"bytes"
	"text/template"
)

var feedbackTemplate = template.Must(template.New("feedback").Parse(`You are an interview coach. Evaluate the user's answer to the question below.
- Question: {{.Question}}
- Answer: {{.Answer}}
Give:
1. Score (0-100)
2. Short feedback (max 3 sentences)
3. What could be improved
Respond in JSON like:
{"score": 85, "feedback": "Good answer...", "improvement": "Mention optimization."}`))

// buildPrompt embeds question and answer verbatim.
func buildPrompt(question, answer string) (string, error) {
	var buf bytes.Buffer
	err := feedbackTemplate.Execute(&buf, struct{ Question, Answer string }{question, answer})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
