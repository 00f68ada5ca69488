package cli

import "errors"

// errInvalid makes the process exit non-zero without printing a message;
// the verdict is already on stdout.
var errInvalid = errors.New("invalid")

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalid):
		return 1
	}
	return 2
}

// Silent reports whether err needs no message on stderr.
func Silent(err error) bool { return errors.Is(err, errInvalid) }
