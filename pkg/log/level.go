package log

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the severity of an entry.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Fatal
	// Off disables logging entirely.
	Off
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", "OFF"}

func (l Level) String() string {
	if l < Trace || l > Off {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ErrInvalidLevel is returned when parsing an unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a level name, case-insensitively. "WARNING" is accepted
// for Warn.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return Warn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return Info, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// Enables reports whether a logger at level l emits entries at target.
func (l Level) Enables(target Level) bool {
	return l != Off && target >= l
}

// Set implements pflag.Value so a Level can be bound to a command flag.
func (l *Level) Set(s string) error {
	v, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string { return "level" }

func (l Level) MarshalText() ([]byte, error) { return []byte(strings.ToLower(l.String())), nil }

func (l *Level) UnmarshalText(b []byte) error { return l.Set(string(b)) }
