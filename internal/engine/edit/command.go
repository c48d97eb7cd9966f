// Package edit defines the command record for a single pattern-based
// edit and the pure function that applies one command to a text buffer.
package edit

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrUnknownOperation indicates an operation name that is not one of
// the recognized kinds. It is returned only at command-creation time;
// applying a command with an unknown operation is a silent no-op so
// that journals written by newer tools still replay.
var ErrUnknownOperation = errors.New("unknown operation")

// Operation identifies the kind of edit a command performs.
type Operation string

// Recognized operation kinds.
const (
	OpReplace      Operation = "replace"
	OpInsertBefore Operation = "insert_before"
	OpInsertAfter  Operation = "insert_after"
	OpDelete       Operation = "delete"
)

// Known reports whether op is one of the recognized kinds.
func (op Operation) Known() bool {
	switch op {
	case OpReplace, OpInsertBefore, OpInsertAfter, OpDelete:
		return true
	}
	return false
}

// TakesReplacement reports whether the operation consumes replacement
// text. Delete ignores it.
func (op Operation) TakesReplacement() bool {
	switch op {
	case OpReplace, OpInsertBefore, OpInsertAfter:
		return true
	}
	return false
}

// ParseOperation validates a user-supplied operation name.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !op.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
	return op, nil
}

// Command is an immutable record of one edit. Timestamp is assigned by
// the journal on append, never by the caller; a zero Timestamp marks a
// draft. RecordedAt is wall-clock metadata and plays no part in replay.
type Command struct {
	Pattern     string
	Occurrence  int
	Op          Operation
	Replacement string
	Timestamp   int64
	RecordedAt  time.Time
}

// Describe returns a short human-readable summary of the command.
func (c Command) Describe() string {
	switch c.Op {
	case OpReplace:
		return fmt.Sprintf("replace occurrence %d of %q with %s", c.Occurrence, c.Pattern, summarize(c.Replacement))
	case OpInsertBefore:
		return fmt.Sprintf("insert %s before occurrence %d of %q", summarize(c.Replacement), c.Occurrence, c.Pattern)
	case OpInsertAfter:
		return fmt.Sprintf("insert %s after occurrence %d of %q", summarize(c.Replacement), c.Occurrence, c.Pattern)
	case OpDelete:
		return fmt.Sprintf("delete occurrence %d of %q", c.Occurrence, c.Pattern)
	default:
		return fmt.Sprintf("%s occurrence %d of %q", c.Op, c.Occurrence, c.Pattern)
	}
}

func summarize(s string) string {
	if utf8.RuneCountInString(s) <= 20 {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%d characters", utf8.RuneCountInString(s))
}
