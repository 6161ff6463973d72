//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// detached starts the player in a new process group so Ctrl+C in the console stays with wemanga.
func detached() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// kill ends the player. Windows has no group signal, the process itself is enough for mpv.
func kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
