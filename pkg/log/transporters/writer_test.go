package transporters

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"twittertext/pkg/log"
)

var _ log.Transporter = (*Writer)(nil)

func sampleEntry() log.Entry {
	return log.Entry{
		Timestamp: time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC),
		Level:     log.Info,
		Component: "extract",
		RequestID: "req-1",
		Message:   "entities extracted",
		Fields:    map[string]any{"count": 3, "kind": "hashtag list"},
	}
}

func TestWriter_JSON_FlattensFields(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	w := NewWriter("test", JSON, &buf)

	// Act
	err := w.Write(sampleEntry())

	// Assert
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	want := map[string]any{
		"level":      "INFO",
		"msg":        "entities extracted",
		"component":  "extract",
		"request_id": "req-1",
		"count":      float64(3),
		"kind":       "hashtag list",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
	if buf.Bytes()[buf.Len()-1] != '\n' {
		t.Error("output should end with a newline")
	}
}

func TestWriter_Text_SortsFieldsAndQuotes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter("test", Text, &buf)

	if err := w.Write(sampleEntry()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "12:00:00 INFO  [extract] entities extracted request_id=req-1 count=3 kind=\"hashtag list\"\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_PropagatesWriteError(t *testing.T) {
	w := NewWriter("broken", JSON, failingWriter{})

	if err := w.Write(sampleEntry()); err == nil {
		t.Error("expected error")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{"TEXT", Text, false},
		{"console", Text, false},
		{"xml", JSON, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}
