package analysis

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrAlreadyRunning  = errors.New("analysis already running")
	ErrBackendNotFound = errors.New("backend not found")
	ErrNoArtifact      = errors.New("no output artifact produced")
)

// ProcessFailure reports a backend run that exited non-zero. Stderr holds
// the backend's diagnostic verbatim; it is surfaced to the user untouched.
type ProcessFailure struct {
	ExitCode int
	Stderr   string
}

// Error implements the error interface.
func (e *ProcessFailure) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("analysis exited with code %d: %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("analysis exited with code %d", e.ExitCode)
}

// SpawnError wraps a failure to start the backend process.
type SpawnError struct {
	Backend string
	Cause   error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("start backend %s: %v", e.Backend, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SpawnError) Unwrap() error {
	return e.Cause
}
