package grading

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/llm"
)

// Fallback values used when scoring cannot complete.
const (
	FallbackScore      = 50
	ParseErrorFeedback = "AI response parsing error."
	ServiceErrorRetry  = "Try again."
	serviceErrorPrefix = "AI error: "
)

// Feedback is the assessment of one answer.
type Feedback struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Improvement string `json:"improvement"`
}

// Evaluator scores answers. It never fails: problems degrade into a
// Feedback carrying the fallback score.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string) Feedback
}

// Config holds sampling settings for the scoring call.
type Config struct {
	MaxTokens   int
	Temperature *float64
}

// LLMEvaluator implements Evaluator with a single LLM call.
type LLMEvaluator struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// New creates an LLMEvaluator. log may be nil.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *LLMEvaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMEvaluator{provider: provider, cfg: cfg, log: log}
}

func (e *LLMEvaluator) Evaluate(ctx context.Context, question, answer string) Feedback {
	prompt, err := buildPrompt(question, answer)
	if err != nil {
		return serviceFailure(fmt.Errorf("build prompt: %w", err))
	}

	req := llm.Prompt(prompt)
	req.MaxTokens = e.cfg.MaxTokens
	req.Temperature = e.cfg.Temperature

	resp, err := e.provider.Generate(llm.WithPurpose(ctx, llm.PurposeAnswerEval), req)
	if err != nil {
		e.log.Warn("answer evaluation failed", zap.Error(err))
		return serviceFailure(err)
	}

	fb, err := Parse(resp.Content)
	if err != nil {
		e.log.Info("unparseable evaluation reply", zap.Error(err), zap.Int("reply_len", len(resp.Content)))
		return Feedback{
			Score:       FallbackScore,
			Feedback:    ParseErrorFeedback,
			Improvement: strings.TrimSpace(resp.Content),
		}
	}
	return fb
}

func serviceFailure(err error) Feedback {
	return Feedback{
		Score:       FallbackScore,
		Feedback:    serviceErrorPrefix + err.Error(),
		Improvement: ServiceErrorRetry,
	}
}
