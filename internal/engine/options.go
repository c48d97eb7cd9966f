package engine

import (
	"github.com/Krish962/regex-text-versioning/internal/engine/journal"
)

// Option configures a Session during creation.
type Option func(*Session)

// WithJournal resumes a session from an existing log. NewSession
// replays it against the original text to rebuild the current document.
func WithJournal(log *journal.Log) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}
