package journal

import (
	"fmt"

	"github.com/Krish962/regex-text-versioning/internal/engine/edit"
)

// Replay reconstructs the document at targetTime by applying the prefix
// of entries whose timestamp does not exceed it, starting from
// original. Entries must be in timestamp order, which Log guarantees;
// the scan exits at the first entry past the target.
//
// A targetTime at or below zero yields original unchanged; one at or
// past the latest timestamp yields the fully replayed document. Any
// integer is accepted, whether or not it exists in the log.
func Replay(original string, entries []edit.Command, targetTime int64) (string, error) {
	current := original
	for _, cmd := range entries {
		if cmd.Timestamp > targetTime {
			break
		}
		next, err := edit.Apply(current, cmd)
		if err != nil {
			return original, fmt.Errorf("replaying command %d: %w", cmd.Timestamp, err)
		}
		current = next
	}
	return current, nil
}
