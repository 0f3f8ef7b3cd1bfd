package cmd

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"
)

// Execute runs the root command while intercepting cobra's error stream, so
// failures surface exactly once without the duplicated "Error:" prefix. On
// failure it returns a *CommandError wrapping the original error.
func Execute(cmd *cobra.Command) error {
	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{message: normalizeErrOutput(errBuf.String()), cause: err}
}

// CommandError is a command execution failure augmented with the normalized
// stderr output cobra produced while running.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	return e.cause
}

// normalizeErrOutput trims whitespace and strips cobra's leading "Error: "
// prefix while preserving multi-line usage hints.
func normalizeErrOutput(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
