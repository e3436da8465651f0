// Package exitcode maps dispatcher failures to process exit statuses.
package exitcode

import (
	"errors"
	"fmt"
)

const (
	OK      = 0
	Missing = 1
	Usage   = 2
)

// Error is an error that carries the status the process should exit with.
// An empty Message means the failure was already reported, typically by a
// child process writing to the shared stderr.
type Error struct {
	Code    int
	Message string
	// ShowUsage asks the caller to print usage text after the message.
	ShowUsage bool
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// UsageError reports invalid arguments; usage text follows the message.
func UsageError(format string, args ...any) error {
	return &Error{Code: Usage, Message: fmt.Sprintf(format, args...), ShowUsage: true}
}

// MissingArg reports a required argument or setting that was not supplied.
func MissingArg(format string, args ...any) error {
	return &Error{Code: Missing, Message: fmt.Sprintf(format, args...)}
}

// Unresolved reports an engine/action combination with no handler.
func Unresolved(format string, args ...any) error {
	return &Error{Code: Usage, Message: fmt.Sprintf(format, args...)}
}

// Delegated passes a child's exit status through untouched.
func Delegated(code int) error {
	if code == OK {
		return nil
	}
	return &Error{Code: code}
}

// Of returns the exit status for err: 0 for nil, the carried code for an
// *Error anywhere in the chain, 1 otherwise.
func Of(err error) int {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 1
}
