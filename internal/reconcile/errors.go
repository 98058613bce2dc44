package reconcile

import (
	"errors"
	"fmt"
)

// ErrNotResumeData is returned when a payload parses but names no known
// document field or section.
var ErrNotResumeData = errors.New("payload contains no resume data")

// ErrNoCandidate is the cause of a ParseError when the reply holds no
// fenced block or brace-delimited span at all.
var ErrNoCandidate = errors.New("no structured data in reply")

// ParseError is returned when no structured payload could be extracted
// from a model reply.
type ParseError struct {
	Message   string
	Candidate string
	Cause     error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
