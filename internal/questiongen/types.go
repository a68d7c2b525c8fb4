package questiongen

import (
	"errors"
	"fmt"
	"strings"
)

// QuestionType is the category of interview question.
type QuestionType string

const (
	Coding     QuestionType = "coding"
	Technical  QuestionType = "technical"
	Behavioral QuestionType = "behavioral/aptitude"
)

// Types lists every question type in display order.
var Types = []QuestionType{Coding, Technical, Behavioral}

// Roles is the fixed set of roles with a dedicated coding template.
var Roles = []string{
	"Python",
	"JavaScript",
	"Java",
	"C++",
	"Data Science",
	"React",
	"SQL",
	"DevOps",
}

// ErrUnknownType is returned for a question type outside Types.
var ErrUnknownType = errors.New("unknown question type")

// Valid reports whether t is one of Types.
func (t QuestionType) Valid() bool {
	switch t {
	case Coding, Technical, Behavioral:
		return true
	}
	return false
}

// Label returns the title-case display name, e.g. "Behavioral/Aptitude".
func (t QuestionType) Label() string {
	switch t {
	case Coding:
		return "Coding"
	case Technical:
		return "Technical"
	case Behavioral:
		return "Behavioral/Aptitude"
	}
	return string(t)
}

// ParseType accepts a type name case-insensitively. "behavioral" and
// "aptitude" are accepted as shorthands.
func ParseType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coding":
		return Coding, nil
	case "technical":
		return Technical, nil
	case "behavioral/aptitude", "behavioral", "aptitude":
		return Behavioral, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Question is a generated interview question.
type Question struct {
	Text string
	Role string
	Type QuestionType
}
