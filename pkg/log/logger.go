package log

import (
	"context"
	"maps"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

const defaultCapacity = 1024

// Logger emits structured entries through an asynchronous Buffer. Loggers
// derived with With or Named share the buffer and the level.
type Logger struct {
	level     *atomic.Int32
	buffer    *Buffer
	component string
	fields    map[string]any
}

// New returns a logger at level writing to transporters.
func New(level Level, transporters ...Transporter) *Logger {
	lv := new(atomic.Int32)
	lv.Store(int32(level))
	return &Logger{
		level:  lv,
		buffer: NewBuffer(defaultCapacity, transporters...),
		fields: map[string]any{},
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(Off, discard{}) }

// SetLevel changes the level of l and every logger derived from it.
func (l *Logger) SetLevel(level Level) { l.level.Store(int32(level)) }

// Level returns the current level.
func (l *Logger) Level() Level { return Level(l.level.Load()) }

// Enabled reports whether entries at level would be emitted.
func (l *Logger) Enabled(level Level) bool { return l.Level().Enables(level) }

// With returns a child logger adding fields to every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	child := l.clone()
	addPairs(child.fields, keysAndValues)
	return child
}

// Named returns a child logger tagging entries with a component name.
// Nested names are joined with a dot.
func (l *Logger) Named(component string) *Logger {
	child := l.clone()
	if l.component != "" {
		component = l.component + "." + component
	}
	child.component = component
	return child
}

func (l *Logger) clone() *Logger {
	return &Logger{
		level:     l.level,
		buffer:    l.buffer,
		component: l.component,
		fields:    maps.Clone(l.fields),
	}
}

// Dropped returns how many entries were lost to buffer overflow.
func (l *Logger) Dropped() int64 { return l.buffer.Dropped() }

// Close flushes pending entries. Derived loggers must not be used after.
func (l *Logger) Close() { l.buffer.Close() }

func (l *Logger) log(ctx context.Context, level Level, msg string, keysAndValues []any) {
	if !l.Enabled(level) {
		return
	}
	entry := NewEntry(level, msg)
	entry.Component = l.component
	entry.Caller = caller(3)
	maps.Copy(entry.Fields, l.fields)
	if ctx != nil {
		s := scopeFrom(ctx)
		entry.RequestID = s.requestID
		maps.Copy(entry.Fields, s.fields)
	}
	addPairs(entry.Fields, keysAndValues)
	l.buffer.Send(*entry)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

func (l *Logger) Trace(msg string, kv ...any) { l.log(nil, Trace, msg, kv) }
func (l *Logger) Debug(msg string, kv ...any) { l.log(nil, Debug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(nil, Info, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(nil, Warn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(nil, Error, msg, kv) }

// Fatal logs at Fatal level. It does not exit.
func (l *Logger) Fatal(msg string, kv ...any) { l.log(nil, Fatal, msg, kv) }

func (l *Logger) DebugCtx(ctx context.Context, msg string, kv ...any) { l.log(ctx, Debug, msg, kv) }
func (l *Logger) InfoCtx(ctx context.Context, msg string, kv ...any)  { l.log(ctx, Info, msg, kv) }
func (l *Logger) WarnCtx(ctx context.Context, msg string, kv ...any)  { l.log(ctx, Warn, msg, kv) }
func (l *Logger) ErrorCtx(ctx context.Context, msg string, kv ...any) { l.log(ctx, Error, msg, kv) }

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
	discardOnce   = sync.OnceValue(Discard)
)

// SetDefault installs the process-wide logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Default returns the process-wide logger, or a discarding one if none was
// installed.
func Default() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l == nil {
		return discardOnce()
	}
	return l
}
