package journal

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Krish962/regex-text-versioning/internal/engine/edit"
)

// Log is an append-only, time-ordered sequence of commands. It owns
// timestamp assignment: callers hand it drafts and get back finalized
// commands. The only permitted mutations are Append and Truncate.
type Log struct {
	mu      sync.Mutex
	id      uuid.UUID
	entries []edit.Command
}

// NewLog creates an empty log with a fresh identity.
func NewLog() *Log {
	return &Log{id: uuid.New()}
}

// ID returns the journal's identity, preserved across save/load.
func (l *Log) ID() uuid.UUID {
	return l.id
}

// Append finalizes a draft command with the next timestamp and stores
// it. The draft's Timestamp and RecordedAt fields are overwritten.
func (l *Log) Append(draft edit.Command) edit.Command {
	l.mu.Lock()
	defer l.mu.Unlock()

	draft.Timestamp = l.latestLocked() + 1
	draft.RecordedAt = time.Now()
	l.entries = append(l.entries, draft)
	return draft
}

// Entries returns a copy of the log in append order.
func (l *Log) Entries() []edit.Command {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]edit.Command, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of stored commands.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// LatestTimestamp returns the timestamp of the newest command, or 0 for
// an empty log.
func (l *Log) LatestTimestamp() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latestLocked()
}

func (l *Log) latestLocked() int64 {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[len(l.entries)-1].Timestamp
}

// Truncate irreversibly removes every command with a timestamp greater
// than maxTimestamp. Entries are ordered by construction, so this keeps
// a prefix.
func (l *Log) Truncate(maxTimestamp int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	keep := len(l.entries)
	for keep > 0 && l.entries[keep-1].Timestamp > maxTimestamp {
		keep--
	}
	l.entries = l.entries[:keep]
}
