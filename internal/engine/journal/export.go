package journal

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// historyRecord is the YAML shape of one command in an export.
type historyRecord struct {
	Timestamp   int64     `yaml:"timestamp"`
	Operation   string    `yaml:"operation"`
	Pattern     string    `yaml:"pattern"`
	Occurrence  int       `yaml:"occurrence"`
	Replacement string    `yaml:"replacement,omitempty"`
	RecordedAt  time.Time `yaml:"recorded_at,omitempty"`
}

// ExportYAML writes a human-readable dump of the log. The YAML form is
// for reading, not for loading back; WriteTo/Load own the durable
// format.
func (l *Log) ExportYAML(w io.Writer) error {
	records := make([]historyRecord, 0, l.Len())
	for _, cmd := range l.Entries() {
		records = append(records, historyRecord{
			Timestamp:   cmd.Timestamp,
			Operation:   string(cmd.Op),
			Pattern:     cmd.Pattern,
			Occurrence:  cmd.Occurrence,
			Replacement: cmd.Replacement,
			RecordedAt:  cmd.RecordedAt,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(records)
}
