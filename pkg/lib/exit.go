package lib

import (
	"errors"
	"fmt"
	"os"
)

// UsageError marks an error caused by invoking a command incorrectly, as
// opposed to a failure of the work itself.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ExitCode returns 0 for nil, 2 for usage errors and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// Exit prints the error and exits the program with ExitCode(err)
func Exit(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitCode(err))
}
