// Package journal provides the append-only command log and the replay
// function that reconstructs document state at any timestamp.
//
// # Timestamps
//
// Timestamps are sequence numbers, not wall clock: the journal assigns
// 1 to the first command and latest+1 thereafter. Truncating the log to
// timestamp T rewinds the counter, so the next append after a revert to
// T receives T+1. Append order and timestamp order always coincide.
//
// # Replay
//
// Replay is a pure forward scan: starting from the original text, every
// command with timestamp <= target is applied in order and the scan
// stops at the first command past the target. The current document is
// always re-derivable as Replay(original, entries, latest).
//
// # Persistence
//
// A journal serializes to a JSONL stream: one header record naming the
// format and the journal's identity, then one record per command. The
// document itself is never stored in the journal; only the original
// snapshot plus the log reproduce any state.
package journal
