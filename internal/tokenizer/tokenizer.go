// Package tokenizer splits raw text into the space-delimited terms the rest
// of the engine indexes, parses, and matches against.
package tokenizer

import "strings"

// ControlByteError reports a term containing a control byte in
// [0x00, 0x1F], which no component of the engine accepts.
type ControlByteError struct {
	Term string
}

func (e *ControlByteError) Error() string {
	return "term contains a control byte: " + e.Term
}

// Tokenize splits text on the single ASCII space 0x20, returning the
// ordered, duplicate-preserving sequence of non-empty runs. Any other
// whitespace byte is treated as ordinary term content.
func Tokenize(text string) []string {
	fields := strings.Split(text, " ")
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// HasControlByte reports whether term contains a byte in [0x00, 0x1F].
func HasControlByte(term string) bool {
	for i := 0; i < len(term); i++ {
		if term[i] <= 0x1F {
			return true
		}
	}
	return false
}

// Validate returns a *ControlByteError if term contains a control byte.
func Validate(term string) error {
	if HasControlByte(term) {
		return &ControlByteError{Term: term}
	}
	return nil
}
