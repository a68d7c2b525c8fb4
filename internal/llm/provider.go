package llm

import (
	"context"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
// PrepBot only relies on a prompt-in, text-out contract: structure is
// extracted from the returned text by the caller.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the completion text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the optional system prompt.
	System string

	// Messages is the conversation history. Question generation and answer
	// scoring are both single-turn, so this usually holds one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero lets the provider pick its own limit.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Nil leaves the
	// provider default; a pointer to 0 asks for greedy sampling.
	Temperature *float64
}

// Temp returns t for Request.Temperature.
func Temp(t float64) *float64 {
	return &t
}

// Prompt builds a single-turn request from one user prompt.
func Prompt(text string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: text}},
	}
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the raw completion text, exactly as the model returned it.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns the completion with surrounding whitespace removed.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
