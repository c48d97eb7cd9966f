package app

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Krish962/regex-text-versioning/internal/engine"
	"github.com/Krish962/regex-text-versioning/internal/engine/edit"
	"github.com/Krish962/regex-text-versioning/internal/engine/match"
)

// errAborted marks a prompt flow the user backed out of; the loop
// continues without touching the session.
var errAborted = errors.New("aborted")

// editLoop collects one command from the user and applies it. Any
// validation failure surfaces a message and abandons the attempt; the
// journal only ever sees commands that applied cleanly.
func (a *App) editLoop() error {
	op, err := a.promptOperation()
	if err != nil {
		return ignoreAbort(err)
	}

	pattern, err := a.promptLine("regex pattern: ")
	if err != nil {
		return ignoreAbort(err)
	}
	pattern = strings.TrimSpace(pattern)
	if err := match.Compile(pattern); err != nil {
		fmt.Fprintln(a.out, a.styles.warn.Render(err.Error()))
		return nil
	}

	occurrence, err := a.chooseOccurrence(pattern)
	if err != nil {
		return ignoreAbort(err)
	}

	replacement := ""
	if op.TakesReplacement() {
		replacement, err = a.promptReplacement()
		if err != nil {
			return ignoreAbort(err)
		}
	}

	if _, err := a.session.Edit(pattern, occurrence, op, replacement); err != nil {
		fmt.Fprintln(a.out, a.styles.warn.Render(err.Error()))
		return nil
	}

	fmt.Fprintf(a.out, "\nUpdated document:\n\n%s\n", a.session.Current())
	return nil
}

// revertLoop reconstructs a past state and optionally continues the
// session from it, discarding the later commands.
func (a *App) revertLoop() error {
	latest := a.session.Journal().LatestTimestamp()
	if latest == 0 {
		fmt.Fprintln(a.out, "no edits yet")
		return nil
	}

	fmt.Fprintf(a.out, "available timestamps: 0 to %d\n", latest)
	target, err := a.promptInt("revert to: ")
	if err != nil {
		return ignoreAbort(err)
	}

	reverted, err := a.session.ReconstructAt(target)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nDocument at %d:\n\n%s\n", target, reverted)

	answer, err := a.promptLine("continue editing from this state? (y/n): ")
	if err != nil {
		return ignoreAbort(err)
	}
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		if _, err := a.session.RevertTo(target); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "reverted; later commands discarded\n")
	}
	return nil
}

// promptOperation reads one of the four operation names.
func (a *App) promptOperation() (engine.Operation, error) {
	line, err := a.promptLine("operation (replace | insert_before | insert_after | delete): ")
	if err != nil {
		return "", err
	}
	op, err := edit.ParseOperation(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(a.out, a.styles.warn.Render(err.Error()))
		return "", errAborted
	}
	return op, nil
}

// chooseOccurrence lists every match of pattern in the current document
// with line numbers and surrounding context, then reads a 1-based pick.
// The listing order is the same order occurrence indices mean
// everywhere else.
func (a *App) chooseOccurrence(pattern string) (int, error) {
	matches, err := a.session.Matches(pattern)
	if err != nil {
		fmt.Fprintln(a.out, a.styles.warn.Render(err.Error()))
		return 0, errAborted
	}
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "no matches found")
		return 0, errAborted
	}

	fmt.Fprintf(a.out, "\nfound %d match(es):\n", len(matches))
	fmt.Fprint(a.out, a.renderMatches(matches))

	pick, err := a.promptInt("choose occurrence: ")
	if err != nil {
		return 0, err
	}
	if pick < 1 || pick > int64(len(matches)) {
		fmt.Fprintln(a.out, a.styles.warn.Render(
			fmt.Sprintf("occurrence out of range: %d of %d matches", pick, len(matches))))
		return 0, errAborted
	}
	return int(pick), nil
}

// promptReplacement reads lines until the sentinel, joining with
// newlines. EOF before the sentinel keeps what was read.
func (a *App) promptReplacement() (string, error) {
	sentinel := a.config().EndSentinel
	fmt.Fprintf(a.out, "enter text (finish with %q on its own line):\n", sentinel)

	var lines []string
	for {
		line, err := a.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if line == sentinel {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (a *App) promptInt(label string) (int64, error) {
	line, err := a.promptLine(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, a.styles.warn.Render("not a number"))
		return 0, errAborted
	}
	return n, nil
}

func (a *App) promptLine(label string) (string, error) {
	fmt.Fprint(a.out, label)
	return a.readLine()
}

// readLine returns the next input line without its terminator. A final
// unterminated line is returned with nil error; EOF is reported on the
// following call.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func ignoreAbort(err error) error {
	if errors.Is(err, errAborted) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
