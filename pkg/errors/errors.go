// Package errors defines the sentinel error values the engine returns, and
// a wrapping type that attaches operation context to one of them.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTerm is returned when a term contains a control byte, or
	// appears as a bare "-" or a double-dash where a plain term belongs.
	ErrInvalidTerm = errors.New("invalid term")
	// ErrMalformedQuery is returned for minus-syntax errors in a query
	// ("-", "--foo") that parser.Parse refuses to interpret.
	ErrMalformedQuery = errors.New("malformed query")
	// ErrDuplicateID is returned by AddDocument when the id is already live.
	ErrDuplicateID = errors.New("document id already exists")
	// ErrNegativeID is returned by AddDocument when id is negative.
	ErrNegativeID = errors.New("document id must be non-negative")
	// ErrUnknownDoc is returned by MatchDocument and RemoveDocument when
	// the id is not currently live.
	ErrUnknownDoc = errors.New("unknown document id")
)

// EngineError wraps a sentinel with operation-specific context.
type EngineError struct {
	Err     error
	Message string
}

func (e *EngineError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// New wraps sentinel with a static message.
func New(sentinel error, message string) *EngineError {
	return &EngineError{Err: sentinel, Message: message}
}

// Newf wraps sentinel with a formatted message.
func Newf(sentinel error, format string, args ...any) *EngineError {
	return &EngineError{Err: sentinel, Message: fmt.Sprintf(format, args...)}
}
