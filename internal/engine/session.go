package engine

import (
	"fmt"

	"github.com/Krish962/regex-text-versioning/internal/engine/edit"
	"github.com/Krish962/regex-text-versioning/internal/engine/journal"
	"github.com/Krish962/regex-text-versioning/internal/engine/match"
)

// Re-export commonly used types for convenience.
type (
	// Match is a single pattern match with byte offsets.
	Match = match.Match

	// Command is an immutable, timestamped edit record.
	Command = edit.Command

	// Operation identifies an edit kind.
	Operation = edit.Operation
)

// Re-export the operation kinds.
const (
	OpReplace      = edit.OpReplace
	OpInsertBefore = edit.OpInsertBefore
	OpInsertAfter  = edit.OpInsertAfter
	OpDelete       = edit.OpDelete
)

// Session is one editing session over a document. It is not safe for
// concurrent use; a session belongs to a single caller.
type Session struct {
	original string
	current  string
	log      *journal.Log
}

// NewSession starts a session over the given original text. With a
// resumed journal (WithJournal) the current document is rebuilt by
// replay; a replay failure means the journal does not belong to this
// original and aborts the session.
func NewSession(original string, opts ...Option) (*Session, error) {
	s := &Session{
		original: original,
		current:  original,
		log:      journal.NewLog(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.log.Len() > 0 {
		current, err := journal.Replay(s.original, s.log.Entries(), s.log.LatestTimestamp())
		if err != nil {
			return nil, fmt.Errorf("replaying journal: %w", err)
		}
		s.current = current
	}
	return s, nil
}

// Original returns the immutable original text.
func (s *Session) Original() string {
	return s.original
}

// Current returns the current document.
func (s *Session) Current() string {
	return s.current
}

// Journal returns the session's command log.
func (s *Session) Journal() *journal.Log {
	return s.log
}

// Matches returns all matches of pattern in the current document, in
// the same order occurrence indices refer to.
func (s *Session) Matches(pattern string) ([]Match, error) {
	return match.Find(s.current, pattern)
}

// Edit validates a draft command against the current document, appends
// it to the journal, and applies it. Validation failures (bad pattern,
// no matches, occurrence out of range, unknown operation) leave both
// the journal and the document untouched.
func (s *Session) Edit(pattern string, occurrence int, op Operation, replacement string) (Command, error) {
	if _, err := edit.ParseOperation(string(op)); err != nil {
		return Command{}, err
	}

	matches, err := match.Find(s.current, pattern)
	if err != nil {
		return Command{}, err
	}
	if len(matches) == 0 {
		return Command{}, ErrNoMatches
	}
	if occurrence < 1 || occurrence > len(matches) {
		return Command{}, fmt.Errorf("%w: %d of %d matches", ErrOccurrenceRange, occurrence, len(matches))
	}

	if !op.TakesReplacement() {
		replacement = ""
	}

	cmd := s.log.Append(Command{
		Pattern:     pattern,
		Occurrence:  occurrence,
		Op:          op,
		Replacement: replacement,
	})

	next, err := edit.Apply(s.current, cmd)
	if err != nil {
		// Unreachable: the pattern compiled during validation above.
		return Command{}, err
	}
	s.current = next
	return cmd, nil
}

// ReconstructAt returns the document as it was at the given timestamp,
// replaying the journal from the original text. The session itself is
// not modified.
func (s *Session) ReconstructAt(targetTime int64) (string, error) {
	return journal.Replay(s.original, s.log.Entries(), targetTime)
}

// RevertTo rewinds the session to the given timestamp: the current
// document becomes the reconstructed state and every later command is
// discarded from the journal. The next edit receives targetTime+1.
func (s *Session) RevertTo(targetTime int64) (string, error) {
	text, err := s.ReconstructAt(targetTime)
	if err != nil {
		return "", err
	}
	s.current = text
	s.log.Truncate(targetTime)
	return text, nil
}
