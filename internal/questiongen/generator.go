package questiongen

import (
	"context"
	"fmt"

	"github.com/abhisek/prepbot/internal/llm"
)

// Generator produces interview questions.
type Generator interface {
	// Generate makes one remote call and returns the trimmed question text.
	// There are no retries at this layer.
	Generate(ctx context.Context, role string, t QuestionType) (*Question, error)
}

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Catalog supplies the prompt templates. Nil selects DefaultCatalog.
	Catalog *Catalog

	// MaxTokens is the token budget for the LLM response. Zero lets the
	// provider decide.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Nil keeps the
	// provider default.
	Temperature *float64
}

// DefaultConfig returns the built-in catalog and provider-default sampling.
func DefaultConfig() Config {
	return Config{Catalog: DefaultCatalog()}
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, role string, t QuestionType) (*Question, error) {
	prompt, err := g.config.Catalog.Prompt(role, t)
	if err != nil {
		return nil, err
	}

	req := llm.Prompt(prompt)
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuestionGen), req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	return &Question{Text: resp.Text(), Role: role, Type: t}, nil
}

// SentinelText is what gets shown in place of a question when generation
// failed.
func SentinelText(err error) string {
	return fmt.Sprintf("[AI error: %v]", err)
}
