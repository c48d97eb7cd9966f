package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Krish962/regex-text-versioning/internal/engine/edit"
)

// Journal file format constants.
const (
	formatName    = "retext-journal"
	formatVersion = 1
)

// Errors returned when loading a journal file.
var (
	// ErrJournalHeader indicates a missing or unrecognized header record.
	ErrJournalHeader = errors.New("journal: bad header")

	// ErrJournalRecord indicates a malformed command record.
	ErrJournalRecord = errors.New("journal: bad record")

	// ErrJournalOrder indicates timestamps that are not strictly increasing.
	ErrJournalOrder = errors.New("journal: timestamps out of order")
)

// WriteTo serializes the log as JSONL: a header record followed by one
// record per command. Unknown operation kinds round-trip untouched.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	header, err := encodeHeader(l.ID())
	if err != nil {
		return 0, err
	}

	var written int64
	n, err := io.WriteString(w, header+"\n")
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, cmd := range l.Entries() {
		line, err := encodeCommand(cmd)
		if err != nil {
			return written, err
		}
		n, err := io.WriteString(w, line+"\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Load parses a journal previously written by WriteTo. Malformed
// records fail the load; an out-of-order timestamp does too, since the
// log's ordering invariant would not survive the import.
func Load(r io.Reader) (*Log, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, ErrJournalHeader
	}

	id, err := decodeHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	log := &Log{id: id}
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := decodeCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if cmd.Timestamp <= log.latestLocked() {
			return nil, fmt.Errorf("line %d: %w: %d", lineNo, ErrJournalOrder, cmd.Timestamp)
		}
		log.entries = append(log.entries, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return log, nil
}

func encodeHeader(id uuid.UUID) (string, error) {
	line, err := sjson.Set("", "journal", formatName)
	if err != nil {
		return "", err
	}
	line, err = sjson.Set(line, "version", formatVersion)
	if err != nil {
		return "", err
	}
	return sjson.Set(line, "id", id.String())
}

func decodeHeader(line string) (uuid.UUID, error) {
	if !gjson.Valid(line) {
		return uuid.Nil, ErrJournalHeader
	}
	if gjson.Get(line, "journal").String() != formatName {
		return uuid.Nil, fmt.Errorf("%w: not a %s file", ErrJournalHeader, formatName)
	}
	if v := gjson.Get(line, "version").Int(); v != formatVersion {
		return uuid.Nil, fmt.Errorf("%w: unsupported version %d", ErrJournalHeader, v)
	}

	id, err := uuid.Parse(gjson.Get(line, "id").String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrJournalHeader, err)
	}
	return id, nil
}

func encodeCommand(cmd edit.Command) (string, error) {
	line, err := sjson.Set("", "timestamp", cmd.Timestamp)
	if err != nil {
		return "", err
	}
	line, err = sjson.Set(line, "operation", string(cmd.Op))
	if err != nil {
		return "", err
	}
	line, err = sjson.Set(line, "pattern", cmd.Pattern)
	if err != nil {
		return "", err
	}
	line, err = sjson.Set(line, "occurrence", cmd.Occurrence)
	if err != nil {
		return "", err
	}
	line, err = sjson.Set(line, "replacement", cmd.Replacement)
	if err != nil {
		return "", err
	}
	return sjson.Set(line, "recorded_at", cmd.RecordedAt.UTC().Format(time.RFC3339Nano))
}

func decodeCommand(line string) (edit.Command, error) {
	if !gjson.Valid(line) {
		return edit.Command{}, ErrJournalRecord
	}

	for _, field := range []string{"timestamp", "operation", "pattern", "occurrence"} {
		if !gjson.Get(line, field).Exists() {
			return edit.Command{}, fmt.Errorf("%w: missing %s", ErrJournalRecord, field)
		}
	}

	ts := gjson.Get(line, "timestamp").Int()
	if ts < 1 {
		return edit.Command{}, fmt.Errorf("%w: timestamp %d", ErrJournalRecord, ts)
	}

	cmd := edit.Command{
		Pattern:     gjson.Get(line, "pattern").String(),
		Occurrence:  int(gjson.Get(line, "occurrence").Int()),
		Op:          edit.Operation(gjson.Get(line, "operation").String()),
		Replacement: gjson.Get(line, "replacement").String(),
		Timestamp:   ts,
	}
	if at := gjson.Get(line, "recorded_at"); at.Exists() {
		if parsed, err := time.Parse(time.RFC3339Nano, at.String()); err == nil {
			cmd.RecordedAt = parsed
		}
	}
	return cmd, nil
}
