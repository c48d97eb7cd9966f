package engine

import "errors"

// Errors returned when creating a command. Both are recoverable: the
// caller re-prompts or abandons the edit, and nothing is appended to
// the journal.
var (
	// ErrNoMatches indicates the pattern matched nothing in the current text.
	ErrNoMatches = errors.New("pattern has no matches")

	// ErrOccurrenceRange indicates an occurrence index outside the match list.
	ErrOccurrenceRange = errors.New("occurrence out of range")
)
