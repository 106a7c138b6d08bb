//go:build !windows

package watchdog

import (
	"errors"
	"os"
	"syscall"
)

// isAlive checks process liveness with a non-blocking signal-0: the
// kernel validates the pid exists and is addressable without actually
// delivering a signal. A process that has exited but has not yet been
// reaped by its own parent still exists, so it reads as alive.
func isAlive(pid int) bool {
	if pid <= 0 {
		return true
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return !errors.Is(err, os.ErrProcessDone) && !errors.Is(err, syscall.ESRCH)
}
