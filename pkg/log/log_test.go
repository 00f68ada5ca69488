package log

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

type captureTransporter struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	delay   time.Duration
	closed  bool
}

func (c *captureTransporter) Name() string { return "capture" }

func (c *captureTransporter) Write(e Entry) error {
	time.Sleep(c.delay)
	if c.err != nil {
		return c.err
	}
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()
	return nil
}

func (c *captureTransporter) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *captureTransporter) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", Trace, false},
		{"DEBUG", Debug, false},
		{" info ", Info, false},
		{"warning", Warn, false},
		{"error", Error, false},
		{"off", Off, false},
		{"loud", Info, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.in, err)
		}
	}
}

func TestLevel_FlagValue(t *testing.T) {
	var l Level
	if err := l.Set("warn"); err != nil || l != Warn {
		t.Fatalf("Set(warn) = %v, level %v", err, l)
	}
	if err := l.Set("nope"); err == nil || l != Warn {
		t.Errorf("Set(nope) should fail and keep level, got %v, %v", err, l)
	}
	if l.Type() != "level" {
		t.Errorf("Type() = %q", l.Type())
	}
}

func TestLevel_Enables(t *testing.T) {
	if !Info.Enables(Error) || Info.Enables(Debug) {
		t.Error("Info should enable Error and not Debug")
	}
	if Off.Enables(Fatal) {
		t.Error("Off should enable nothing")
	}
}

func TestLogger_FiltersAndEnriches(t *testing.T) {
	// Arrange
	capture := &captureTransporter{}
	logger := New(Info, capture)
	ctx := WithFields(WithRequestID(context.Background(), "req-9"), "preset", "v3")

	// Act
	logger.Debug("hidden")
	logger.Named("web").Named("extract").With("route", "/extract").InfoCtx(ctx, "done", "entities", 2, "err", errors.New("boom"))
	logger.Close()

	// Assert
	entries := capture.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Component != "web.extract" || e.RequestID != "req-9" || e.Message != "done" {
		t.Errorf("entry = %+v", e)
	}
	for k, want := range map[string]any{"route": "/extract", "preset": "v3", "entities": 2, "err": "boom"} {
		if e.Fields[k] != want {
			t.Errorf("field %s = %v, want %v", k, e.Fields[k], want)
		}
	}
	if e.Caller == "" {
		t.Error("caller should be set")
	}
	if !capture.closed {
		t.Error("Close should close transporters")
	}
}

func TestLogger_SetLevel_AffectsChildren(t *testing.T) {
	capture := &captureTransporter{}
	logger := New(Error, capture)
	child := logger.With("k", "v")

	logger.SetLevel(Debug)
	child.Debug("visible")
	logger.Close()

	if len(capture.Entries()) != 1 {
		t.Errorf("entries = %d, want 1", len(capture.Entries()))
	}
}

func TestLogger_WithDoesNotLeakIntoParent(t *testing.T) {
	capture := &captureTransporter{}
	logger := New(Info, capture)

	logger.With("child", true).Info("a")
	logger.Info("b")
	logger.Close()

	entries := capture.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if _, ok := entries[1].Fields["child"]; ok {
		t.Error("parent entry carries child field")
	}
}

func TestBuffer_OverflowDropsOldest(t *testing.T) {
	capture := &captureTransporter{delay: 20 * time.Millisecond}
	buf := NewBuffer(2, capture)

	for i := range 20 {
		buf.Send(*NewEntry(Info, "flood").With("seq", i))
	}
	buf.Close()

	delivered := int64(len(capture.Entries()))
	if delivered+buf.Dropped() != 20 {
		t.Errorf("delivered %d + dropped %d != 20", delivered, buf.Dropped())
	}
	if buf.Dropped() == 0 {
		t.Error("expected drops with a full queue")
	}
}

func TestBuffer_CountsFailures(t *testing.T) {
	capture := &captureTransporter{err: errors.New("unavailable")}
	buf := NewBuffer(10, capture)
	buf.fallback = io.Discard

	buf.Send(*NewEntry(Error, "x"))
	buf.Close()
	buf.Close()
	buf.Send(*NewEntry(Error, "after close"))

	if buf.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", buf.Failed())
	}
}

func TestEntry_MarshalJSON_ReservedKeysWin(t *testing.T) {
	e := NewEntry(Warn, "real").With("msg", "shadow", "n", 1)

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["msg"] != "real" || got["level"] != "WARN" || got["n"] != float64(1) {
		t.Errorf("got %v", got)
	}
	if _, ok := got["component"]; ok {
		t.Error("empty component should be omitted")
	}
}

func TestDefault_DiscardsUntilSet(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })
	if Default().Enabled(Fatal) {
		t.Error("default logger should discard")
	}

	l := New(Info, &captureTransporter{})
	defer l.Close()
	SetDefault(l)

	if Default() != l {
		t.Error("Default() should return installed logger")
	}
}
