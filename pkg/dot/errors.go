package dot

import "fmt"

// ArtifactIOError reports an artifact file that could not be opened or read.
type ArtifactIOError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ArtifactIOError) Error() string {
	return fmt.Sprintf("read artifact %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ArtifactIOError) Unwrap() error {
	return e.Cause
}
