package frame

import "fmt"

// FramingError reports a malformed header or truncated payload. Per the
// error taxonomy it is fatal for the current session: it always
// propagates to the orchestrator, which tears the session down.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing error: %s", e.Reason)
}
