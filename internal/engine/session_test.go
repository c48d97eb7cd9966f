package engine

import (
	"errors"
	"testing"

	"github.com/Krish962/regex-text-versioning/internal/engine/edit"
	"github.com/Krish962/regex-text-versioning/internal/engine/journal"
	"github.com/Krish962/regex-text-versioning/internal/engine/match"
)

func newSession(t *testing.T, original string) *Session {
	t.Helper()
	s, err := NewSession(original)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestEditAppendsAndApplies(t *testing.T) {
	s := newSession(t, "cat sat")

	cmd, err := s.Edit("at", 1, OpReplace, "og")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if cmd.Timestamp != 1 {
		t.Errorf("timestamp = %d, want 1", cmd.Timestamp)
	}
	if s.Current() != "cog sat" {
		t.Errorf("Current() = %q, want %q", s.Current(), "cog sat")
	}
	if s.Original() != "cat sat" {
		t.Errorf("Original() = %q, original must not change", s.Original())
	}

	cmd, err = s.Edit("at", 1, OpDelete, "")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if cmd.Timestamp != 2 {
		t.Errorf("timestamp = %d, want 2", cmd.Timestamp)
	}
	if s.Current() != "cog s" {
		t.Errorf("Current() = %q, want %q", s.Current(), "cog s")
	}
}

func TestEditValidationLeavesSessionUntouched(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		occurrence  int
		op          Operation
		wantErr     error
		wantPattern bool // expect a *match.SyntaxError instead of a sentinel
	}{
		{name: "no matches", pattern: "zzz", occurrence: 1, op: OpReplace, wantErr: ErrNoMatches},
		{name: "occurrence too high", pattern: "at", occurrence: 5, op: OpReplace, wantErr: ErrOccurrenceRange},
		{name: "occurrence zero", pattern: "at", occurrence: 0, op: OpDelete, wantErr: ErrOccurrenceRange},
		{name: "unknown operation", pattern: "at", occurrence: 1, op: "shuffle", wantErr: edit.ErrUnknownOperation},
		{name: "invalid pattern", pattern: "(oops", occurrence: 1, op: OpReplace, wantPattern: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, "cat sat")

			_, err := s.Edit(tt.pattern, tt.occurrence, tt.op, "x")
			if tt.wantPattern {
				var syntaxErr *match.SyntaxError
				if !errors.As(err, &syntaxErr) {
					t.Fatalf("error = %v, want *match.SyntaxError", err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			if s.Current() != "cat sat" {
				t.Errorf("Current() = %q, rejected edit mutated the document", s.Current())
			}
			if s.Journal().Len() != 0 {
				t.Errorf("journal has %d entries, rejected edit was appended", s.Journal().Len())
			}
		})
	}
}

func TestEditDropsReplacementForDelete(t *testing.T) {
	s := newSession(t, "abc")
	cmd, err := s.Edit("b", 1, OpDelete, "ignored")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if cmd.Replacement != "" {
		t.Errorf("Replacement = %q, want empty for delete", cmd.Replacement)
	}
}

func TestReconstructAtDoesNotMutate(t *testing.T) {
	s := newSession(t, "cat sat")
	s.Edit("at", 1, OpReplace, "og")
	s.Edit("at", 1, OpDelete, "")

	got, err := s.ReconstructAt(1)
	if err != nil {
		t.Fatalf("ReconstructAt() error = %v", err)
	}
	if got != "cog sat" {
		t.Errorf("ReconstructAt(1) = %q, want %q", got, "cog sat")
	}

	got, err = s.ReconstructAt(0)
	if err != nil {
		t.Fatalf("ReconstructAt() error = %v", err)
	}
	if got != "cat sat" {
		t.Errorf("ReconstructAt(0) = %q, want %q", got, "cat sat")
	}

	if s.Current() != "cog s" {
		t.Errorf("Current() = %q, reconstruct mutated the session", s.Current())
	}
	if s.Journal().Len() != 2 {
		t.Errorf("journal has %d entries, reconstruct truncated it", s.Journal().Len())
	}
}

func TestRevertToTruncatesAndReassignsTimestamps(t *testing.T) {
	s := newSession(t, "cat sat")
	s.Edit("at", 1, OpReplace, "og")
	s.Edit("at", 1, OpDelete, "")

	got, err := s.RevertTo(1)
	if err != nil {
		t.Fatalf("RevertTo() error = %v", err)
	}
	if got != "cog sat" {
		t.Errorf("RevertTo(1) = %q, want %q", got, "cog sat")
	}
	if s.Current() != "cog sat" {
		t.Errorf("Current() = %q, want reverted state", s.Current())
	}
	if s.Journal().Len() != 1 {
		t.Errorf("journal has %d entries, want 1", s.Journal().Len())
	}

	cmd, err := s.Edit("sat", 1, OpReplace, "ran")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if cmd.Timestamp != 2 {
		t.Errorf("timestamp after revert = %d, want 2", cmd.Timestamp)
	}
}

func TestRevertToZeroRestoresOriginal(t *testing.T) {
	s := newSession(t, "cat sat")
	s.Edit("at", 1, OpReplace, "og")

	got, err := s.RevertTo(0)
	if err != nil {
		t.Fatalf("RevertTo() error = %v", err)
	}
	if got != "cat sat" {
		t.Errorf("RevertTo(0) = %q, want original", got)
	}
	if s.Journal().Len() != 0 {
		t.Errorf("journal has %d entries, want 0", s.Journal().Len())
	}
}

func TestCurrentAlwaysRederivable(t *testing.T) {
	s := newSession(t, "one two three two one")
	steps := []struct {
		pattern     string
		occurrence  int
		op          Operation
		replacement string
	}{
		{"two", 2, OpReplace, "2"},
		{"one", 1, OpDelete, ""},
		{"three", 1, OpInsertBefore, ">> "},
		{"2", 1, OpInsertAfter, " <<"},
	}

	for _, step := range steps {
		if _, err := s.Edit(step.pattern, step.occurrence, step.op, step.replacement); err != nil {
			t.Fatalf("Edit(%q) error = %v", step.pattern, err)
		}

		replayed, err := s.ReconstructAt(s.Journal().LatestTimestamp())
		if err != nil {
			t.Fatalf("ReconstructAt() error = %v", err)
		}
		if replayed != s.Current() {
			t.Fatalf("incremental state %q != replayed state %q", s.Current(), replayed)
		}
	}
}

func TestNewSessionWithJournalResumes(t *testing.T) {
	first := newSession(t, "cat sat")
	first.Edit("at", 1, OpReplace, "og")
	first.Edit("at", 1, OpDelete, "")

	resumed, err := NewSession("cat sat", WithJournal(first.Journal()))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if resumed.Current() != "cog s" {
		t.Errorf("Current() = %q, want %q", resumed.Current(), "cog s")
	}

	cmd, err := resumed.Edit("cog", 1, OpReplace, "dog")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if cmd.Timestamp != 3 {
		t.Errorf("timestamp = %d, want 3", cmd.Timestamp)
	}
}

func TestNewSessionWithCorruptJournal(t *testing.T) {
	log := journal.NewLog()
	log.Append(edit.Command{Pattern: "(broken", Occurrence: 1, Op: edit.OpReplace})

	_, err := NewSession("text", WithJournal(log))
	if err == nil {
		t.Fatal("expected error replaying a journal with an invalid pattern")
	}
}

func TestMatchesUsesCurrentText(t *testing.T) {
	s := newSession(t, "cat sat")

	matches, err := s.Matches("at")
	if err != nil {
		t.Fatalf("Matches() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	s.Edit("at", 1, OpReplace, "og")
	matches, err = s.Matches("at")
	if err != nil {
		t.Fatalf("Matches() error = %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("got %d matches against current text, want 1", len(matches))
	}
}
