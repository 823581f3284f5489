package cli

import "fmt"

// Exit codes returned by the aoc binary.
const (
	ExitCodeFailure     = 1
	ExitCodeUsage       = 2
	ExitCodeInterrupted = 130
)

// ExitError carries a process exit code to main.
type ExitError struct {
	Code int
	Err  error
	// Printed is set when the message was already shown to the user.
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exitf returns an ExitError with a formatted message.
func Exitf(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}
