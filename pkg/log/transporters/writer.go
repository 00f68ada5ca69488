package transporters

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"twittertext/pkg/log"
)

// Format selects how a Writer renders entries.
type Format int

const (
	// JSON writes one object per line.
	JSON Format = iota
	// Text writes "time LEVEL component msg key=value ..." lines.
	Text
)

// ParseFormat accepts "json" or "text".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "text", "console":
		return Text, nil
	}
	return JSON, fmt.Errorf("unknown log format %q", s)
}

// Writer renders entries to an io.Writer.
type Writer struct {
	name   string
	format Format
	mu     sync.Mutex
	w      io.Writer
}

// NewStdout returns a JSON writer on os.Stdout.
func NewStdout() *Writer { return &Writer{name: "stdout", format: JSON, w: os.Stdout} }

// NewStderr returns a writer on os.Stderr. Command-line tools log here so
// stdout stays free for results.
func NewStderr(format Format) *Writer { return &Writer{name: "stderr", format: format, w: os.Stderr} }

// NewWriter returns a writer on w.
func NewWriter(name string, format Format, w io.Writer) *Writer {
	return &Writer{name: name, format: format, w: w}
}

func (t *Writer) Name() string { return t.name }

func (t *Writer) Write(entry log.Entry) error {
	var line []byte
	if t.format == Text {
		line = []byte(formatText(entry))
	} else {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		line = append(data, '\n')
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.w.Write(line)
	return err
}

func (t *Writer) Close() error { return nil }

func formatText(e log.Entry) string {
	var b strings.Builder
	b.WriteString(e.Timestamp.Format(time.TimeOnly))
	b.WriteByte(' ')
	fmt.Fprintf(&b, "%-5s", e.Level)
	if e.Component != "" {
		b.WriteString(" [")
		b.WriteString(e.Component)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)
	if e.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", e.RequestID)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := fmt.Sprint(e.Fields[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	b.WriteByte('\n')
	return b.String()
}
