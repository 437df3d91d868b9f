package cli

import (
	stdErrors "errors"
	"fmt"
)

// Exit codes returned by Execute.
const (
	ExitOK       = 0
	ExitProblems = 1 // the input has problems, or the compared files differ
	ExitUsage    = 2
)

// CommandError ends a command that has already printed its own report.
// Execute turns it into the exit code without printing anything more.
type CommandError struct {
	code int
}

// NewCommandError returns a CommandError exiting with code.
func NewCommandError(code int) *CommandError {
	return &CommandError{code: code}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode returns the exit code of the command.
func (e *CommandError) ExitCode() int {
	return e.code
}

// CommandResult is the outcome of Execute.
type CommandResult struct {
	ExitCode int
	Err      error

	// Reported is set when the command printed the error itself.
	Reported bool
}

// resultOf maps the error returned by a command to its result.
func resultOf(err error) CommandResult {
	if err == nil {
		return CommandResult{ExitCode: ExitOK}
	}
	var cerr *CommandError
	if stdErrors.As(err, &cerr) {
		return CommandResult{ExitCode: cerr.ExitCode(), Err: err, Reported: true}
	}
	return CommandResult{ExitCode: ExitProblems, Err: err}
}
