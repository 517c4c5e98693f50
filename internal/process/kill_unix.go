//go:build !windows

package process

import "syscall"

// KillTree kills a browser process and all its children by sending SIGKILL
// to the process group (negative PID). Non-positive PIDs are ignored, since
// kill(0) and kill(-1) would target the caller.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort cleanup; error ignored as launcher.Kill() provides fallback
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
