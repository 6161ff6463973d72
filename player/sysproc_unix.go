//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// detached puts the player in its own process group so a terminal Ctrl+C does not reach it.
func detached() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// kill stops the player and anything it spawned.
func kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err == nil {
		return nil
	}
	return cmd.Process.Kill()
}
