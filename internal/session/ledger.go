package session

import (
	"math"
	"time"

	"github.com/abhisek/prepbot/internal/questiongen"
)

// Attempt is one scored answer. Attempts are never modified once recorded.
type Attempt struct {
	Type      questiongen.QuestionType
	Score     int
	Timestamp time.Time
}

// Ledger is the in-memory, append-only record of a session's attempts.
// Insertion order is chronological order.
type Ledger struct {
	attempts []Attempt
	now      func() time.Time
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// Append records a score under t, stamped with the current time.
func (l *Ledger) Append(t questiongen.QuestionType, score int) Attempt {
	a := Attempt{Type: t, Score: score, Timestamp: l.now()}
	l.attempts = append(l.attempts, a)
	return a
}

// Len returns the number of recorded attempts.
func (l *Ledger) Len() int {
	return len(l.attempts)
}

// Attempts returns a copy of every attempt in chronological order.
func (l *Ledger) Attempts() []Attempt {
	out := make([]Attempt, len(l.attempts))
	copy(out, l.attempts)
	return out
}

// Average is the mean score of all attempts, rounded to 2 decimals.
// An empty ledger averages 0.
func (l *Ledger) Average() float64 {
	return average(l.attempts, func(Attempt) bool { return true })
}

// AverageFor is Average restricted to attempts of type t.
func (l *Ledger) AverageFor(t questiongen.QuestionType) float64 {
	return average(l.attempts, func(a Attempt) bool { return a.Type == t })
}

// Recent returns up to n attempts, most recent first.
func (l *Ledger) Recent(n int) []Attempt {
	if n <= 0 {
		return []Attempt{}
	}
	if n > len(l.attempts) {
		n = len(l.attempts)
	}
	out := make([]Attempt, 0, n)
	for i := len(l.attempts) - 1; i >= len(l.attempts)-n; i-- {
		out = append(out, l.attempts[i])
	}
	return out
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.attempts = nil
}

func average(attempts []Attempt, keep func(Attempt) bool) float64 {
	sum, n := 0, 0
	for _, a := range attempts {
		if keep(a) {
			sum += a.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*100) / 100
}
