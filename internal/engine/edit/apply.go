package edit

import (
	"github.com/Krish962/regex-text-versioning/internal/engine/match"
)

// Apply runs one command against text and returns the resulting text.
//
// Matches are always recomputed against the text passed in, so a prior
// edit that shifts match positions changes which match is "occurrence
// N" for later commands. Replay depends on this recomputation.
//
// An occurrence outside [1, match count] and an unrecognized operation
// both return text unchanged with a nil error: replay must never fail
// on a command that was valid when it was recorded. The only error is
// an invalid pattern.
func Apply(text string, cmd Command) (string, error) {
	matches, err := match.Find(text, cmd.Pattern)
	if err != nil {
		return text, err
	}
	if cmd.Occurrence < 1 || cmd.Occurrence > len(matches) {
		return text, nil
	}

	m := matches[cmd.Occurrence-1]

	var spliced string
	switch cmd.Op {
	case OpReplace:
		spliced = cmd.Replacement
	case OpInsertAfter:
		spliced = m.Text + cmd.Replacement
	case OpInsertBefore:
		spliced = cmd.Replacement + m.Text
	case OpDelete:
		spliced = ""
	default:
		return text, nil
	}

	return text[:m.Start] + spliced + text[m.End:], nil
}
