package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/daybook/internal/lock"
	"github.com/julianstephens/daybook/internal/logger"
)

const (
	ExitFailure = 1
	ExitLocked  = 2
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, lock.ErrLocked):
		return ExitLocked
	default:
		return ExitFailure
	}
}

// Fatal logs an error and exits the program
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}
