package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind tags the payload carried by an Answer.
type AnswerKind int

const (
	// AnswerString is a free-form text answer
	AnswerString AnswerKind = iota
	// AnswerInteger is a whole-number answer
	AnswerInteger
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerString:
		return "string"
	case AnswerInteger:
		return "integer"
	default:
		return fmt.Sprintf("AnswerKind(%d)", int(k))
	}
}

// Answer is the computed answer for one quiz page.
// Exactly one payload is meaningful, selected by Kind.
type Answer struct {
	Kind AnswerKind
	Str  string
	Int  int64
}

// StringAnswer builds a text answer.
func StringAnswer(s string) Answer {
	return Answer{Kind: AnswerString, Str: s}
}

// IntegerAnswer builds a numeric answer.
func IntegerAnswer(n int64) Answer {
	return Answer{Kind: AnswerInteger, Int: n}
}

// String renders the answer for logs.
func (a Answer) String() string {
	switch a.Kind {
	case AnswerInteger:
		return strconv.FormatInt(a.Int, 10)
	default:
		return a.Str
	}
}

// MarshalJSON encodes a string answer as a JSON string and an integer answer as a JSON number.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerString:
		return json.Marshal(a.Str)
	case AnswerInteger:
		return json.Marshal(a.Int)
	default:
		return nil, fmt.Errorf("cannot encode answer of kind %s", a.Kind)
	}
}
