package match

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultContextWidth is the preview window on each side of a match.
const DefaultContextWidth = 30

// Context returns a one-line preview of the text surrounding m: up to
// width grapheme clusters before the match, the match itself, and up to
// width clusters after. Newlines are flattened to spaces so the preview
// stays on a single line. Window boundaries never split a grapheme
// cluster.
func Context(text string, m Match, width int) string {
	if width <= 0 {
		width = DefaultContextWidth
	}
	if m.Start < 0 || m.End > len(text) || m.Start > m.End {
		return flatten(m.Text)
	}

	before := lastClusters(text[:m.Start], width)
	after := firstClusters(text[m.End:], width)
	return flatten(before + m.Text + after)
}

// lastClusters returns the trailing n grapheme clusters of s.
func lastClusters(s string, n int) string {
	if s == "" || n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	starts := make([]int, 0, len(s))
	for g.Next() {
		start, _ := g.Positions()
		starts = append(starts, start)
	}
	if len(starts) <= n {
		return s
	}
	return s[starts[len(starts)-n]:]
}

// firstClusters returns the leading n grapheme clusters of s.
func firstClusters(s string, n int) string {
	if s == "" || n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	count := 0
	for g.Next() {
		count++
		if count == n {
			_, end := g.Positions()
			return s[:end]
		}
	}
	return s
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
