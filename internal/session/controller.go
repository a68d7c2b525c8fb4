package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/llm"
	"github.com/abhisek/prepbot/internal/questiongen"
)

// Controller drives one practice session synchronously. It owns the
// session's State and Ledger and is not safe for concurrent use.
type Controller struct {
	id     string
	gen    questiongen.Generator
	eval   grading.Evaluator
	state  State
	ledger *Ledger
	log    *zap.Logger

	lastFeedback *grading.Feedback
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New creates a controller with a fresh session id.
func New(gen questiongen.Generator, eval grading.Evaluator, opts ...Option) *Controller {
	c := &Controller{
		id:     uuid.NewString(),
		gen:    gen,
		eval:   eval,
		ledger: NewLedger(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("session_id", c.id))
	return c
}

// ID returns the session id attached to every LLM call of this session.
func (c *Controller) ID() string { return c.id }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Ledger returns the session's ledger.
func (c *Controller) Ledger() *Ledger { return c.ledger }

// LastFeedback returns the feedback of the most recent submission, or nil.
func (c *Controller) LastFeedback() *grading.Feedback { return c.lastFeedback }

// Summary returns the progress panel data.
func (c *Controller) Summary() Summary { return Summarize(c.ledger) }

// Render applies sel and fetches a question if the transition rules say
// so. It returns the question to display.
func (c *Controller) Render(ctx context.Context, sel Selection) *Question {
	c.state = Select(c.state, sel)

	req, ok := NextFetch(c.state)
	if !ok {
		return c.state.CurrentQuestion
	}

	start := time.Now()
	q := Fetch(c.ctx(ctx), c.gen, req)
	c.state = ApplyFetch(c.state, req, q)

	fields := []zap.Field{
		zap.Stringer("reason", req.Reason),
		zap.String("role", req.Role),
		zap.String("type", string(req.Type)),
		zap.Duration("latency", time.Since(start)),
	}
	if q.Failed {
		c.log.Warn("question fetch failed", append(fields, zap.Error(q.Err))...)
	} else {
		c.log.Info("question fetched", fields...)
	}
	return q
}

// Submit grades answer against the current question and records the
// score. A blank answer returns ErrEmptyAnswer and changes nothing.
// Callers render again afterwards to pick up the next question.
func (c *Controller) Submit(ctx context.Context, answer string) (grading.Feedback, error) {
	if err := CheckAnswer(answer); err != nil {
		return grading.Feedback{}, err
	}
	q := c.state.CurrentQuestion
	if q == nil {
		return grading.Feedback{}, ErrNoQuestion
	}

	fb := c.eval.Evaluate(c.ctx(ctx), q.Text, answer)
	c.state = ApplyFeedback(c.state, c.ledger, fb)
	c.lastFeedback = &fb

	c.log.Info("answer graded",
		zap.String("type", string(c.state.CurrentType)),
		zap.Int("score", fb.Score),
		zap.Int("attempts", c.ledger.Len()))
	return fb, nil
}

// Reset clears the state and the ledger. The session id is replaced so
// audit events of the new session are kept apart.
func (c *Controller) Reset() {
	c.state = Reset(c.ledger)
	c.lastFeedback = nil
	c.id = uuid.NewString()
	c.log.Info("session reset", zap.String("new_session_id", c.id))
}

func (c *Controller) ctx(ctx context.Context) context.Context {
	return llm.WithSessionID(ctx, c.id)
}
