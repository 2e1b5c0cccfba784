package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantmind-br/pkgreq/internal/core"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

// ExitError carries a process exit code out of a command. A nil Err means
// the user was already told what happened.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitErr(code int, format string, args ...interface{}) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return core.ExitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	if errors.Is(err, ui.ErrCancelled) || errors.Is(err, context.Canceled) {
		return core.ExitInterrupted
	}
	return core.ExitGeneral
}

// Silent reports whether err needs no further message
func Silent(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee) && ee.Err == nil
}
