// Package match finds regular-expression matches in a text buffer.
//
// Matches are reported in left-to-right, non-overlapping order with
// half-open byte ranges, which is the ordering every occurrence index
// in the rest of the engine refers to.
package match

import (
	"fmt"
	"regexp"
	"strings"
)

// Match is a single pattern match over a text buffer.
// Start and End are byte offsets with End exclusive.
type Match struct {
	Start int
	End   int
	Text  string
}

// SyntaxError reports an invalid regular expression pattern.
type SyntaxError struct {
	Pattern string
	Err     error
}

// Error returns the error message.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying regexp error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Find returns all non-overlapping matches of pattern in text, left to
// right. A pattern with no matches yields an empty slice and nil error.
// An invalid pattern yields a *SyntaxError.
func Find(text, pattern string) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Err: err}
	}

	pairs := re.FindAllStringIndex(text, -1)
	matches := make([]Match, 0, len(pairs))
	for _, p := range pairs {
		matches = append(matches, Match{
			Start: p[0],
			End:   p[1],
			Text:  text[p[0]:p[1]],
		})
	}
	return matches, nil
}

// Compile checks that pattern is a valid regular expression without
// running it. Returns a *SyntaxError on failure.
func Compile(pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return &SyntaxError{Pattern: pattern, Err: err}
	}
	return nil
}

// LineNumber returns the 1-based line number of the byte offset in text.
// Offsets outside the buffer are clamped.
func LineNumber(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n") + 1
}
