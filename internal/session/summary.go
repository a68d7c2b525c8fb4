package session

import (
	"fmt"
	"math"

	"github.com/abhisek/prepbot/internal/questiongen"
)

// RecentLimit is how many attempts the progress panel lists.
const RecentLimit = 5

// TypeAverage is the average score for one question type.
type TypeAverage struct {
	Type    questiongen.QuestionType
	Average float64
}

// Summary holds the data displayed in the progress panel.
type Summary struct {
	Attempts int
	Recent   []Attempt
	Average  float64
	ByType   []TypeAverage

	// Progress is Average/100 clamped to [0, 1].
	Progress float64
}

// Summarize builds the progress panel data from l.
func Summarize(l *Ledger) Summary {
	avg := l.Average()
	s := Summary{
		Attempts: l.Len(),
		Recent:   l.Recent(RecentLimit),
		Average:  avg,
		Progress: math.Min(math.Max(avg/100, 0), 1),
	}
	for _, t := range questiongen.Types {
		s.ByType = append(s.ByType, TypeAverage{Type: t, Average: l.AverageFor(t)})
	}
	return s
}

// TimestampLayout is how attempt times are shown.
const TimestampLayout = "2006-01-02 15:04:05"

// String renders an attempt as "Coding | Score: 80 | 2006-01-02 15:04:05".
func (a Attempt) String() string {
	return fmt.Sprintf("%s | Score: %d | %s", a.Type.Label(), a.Score, a.Timestamp.Format(TimestampLayout))
}

// FormatAverage prints an average the way the panel shows it: whole numbers
// keep one decimal, others keep up to two.
func FormatAverage(avg float64) string {
	if avg == math.Trunc(avg) {
		return fmt.Sprintf("%.1f", avg)
	}
	return fmt.Sprintf("%g", avg)
}
