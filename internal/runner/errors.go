package runner

import "fmt"

// ResolutionError reports that the server executable name could not be
// determined at startup. Fatal.
type ResolutionError struct {
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving server executable: %s", e.Reason)
}

// SpawnError reports that the server child process failed to start.
// Fatal.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
