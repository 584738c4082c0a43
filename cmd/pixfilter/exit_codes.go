package main

import "errors"

const (
	ExitCodeUnknownError     = 1
	ExitCodeInvalidArguments = 2
	ExitCodeInvalidInput     = 3
	ExitCodeInvalidOutput    = 4
	ExitCodeInvalidChain     = 5
	ExitCodeFilterError      = 6
)

// ExitCodeError carries the process exit code for an error.
type ExitCodeError struct {
	originalError error
	exitCode      int
}

func (e *ExitCodeError) Error() string {
	return e.originalError.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.originalError
}

func (e *ExitCodeError) ExitCode() int {
	return e.exitCode
}

func newExitCodeError(err error, code int) *ExitCodeError {
	return &ExitCodeError{
		originalError: err,
		exitCode:      code,
	}
}

// exitCode returns the exit code for err. Errors without one are treated
// as argument errors, which is what cobra reports for bad flags.
func exitCode(err error) int {
	exitCodeError := &ExitCodeError{}
	if errors.As(err, &exitCodeError) {
		return exitCodeError.ExitCode()
	}
	return ExitCodeInvalidArguments
}
