//go:build windows

package watchdog

import "syscall"

const stillActive = 259

// isAlive opens a query-only handle to pid and reads its exit code. A
// still-running process reports STILL_ACTIVE (259).
func isAlive(pid int) bool {
	if pid <= 0 {
		return true
	}

	const processQueryLimitedInformation = 0x1000
	handle, err := syscall.OpenProcess(processQueryLimitedInformation, false, uint32(pid))
	if err != nil {
		return false
	}
	defer syscall.CloseHandle(handle)

	var exitCode uint32
	if err := syscall.GetExitCodeProcess(handle, &exitCode); err != nil {
		return false
	}
	return exitCode == stillActive
}
