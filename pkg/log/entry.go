package log

import (
	"encoding/json"
	"maps"
	"time"
)

// Entry is one structured log record.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Component string
	Caller    string
	RequestID string
	Message   string
	Fields    map[string]any
}

// NewEntry returns an entry stamped with the current time.
func NewEntry(level Level, msg string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any),
	}
}

// With adds alternating key/value pairs. Non-string keys and a trailing
// key without value are ignored.
func (e *Entry) With(keysAndValues ...any) *Entry {
	addPairs(e.Fields, keysAndValues)
	return e
}

func addPairs(dst map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			dst[key] = fieldValue(keysAndValues[i+1])
		}
	}
}

// fieldValue renders errors as their message; encoding/json would
// otherwise emit {} for most error types.
func fieldValue(v any) any {
	if err, ok := v.(error); ok && err != nil {
		return err.Error()
	}
	return v
}

// MarshalJSON flattens Fields into the top-level object. Reserved keys win
// over fields of the same name.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+6)
	maps.Copy(m, e.Fields)
	m["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339Nano)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if e.Component != "" {
		m["component"] = e.Component
	}
	if e.Caller != "" {
		m["caller"] = e.Caller
	}
	if e.RequestID != "" {
		m["request_id"] = e.RequestID
	}
	return json.Marshal(m)
}
