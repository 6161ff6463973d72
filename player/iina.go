package player

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/wemanga/wemanga/constant"
)

// IINA plays through macOS LaunchServices. It exposes no IPC socket, so positions are never reported.
type IINA struct {
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewIINA() *IINA {
	exited := make(chan struct{})
	close(exited)
	return &IINA{exited: exited}
}

func (p *IINA) Play(rawURL, title string) error {
	if runtime.GOOS != constant.Darwin {
		return fmt.Errorf("IINA is only supported on macOS")
	}

	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	// IINA forwards mpv options given after --args
	p.cmd = exec.Command("open", "-W", "-a", "IINA", target, "--args",
		fmt.Sprintf("--mpv-force-media-title=%s", sanitizeTitle(title)))

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	p.exited = make(chan struct{})
	go func(cmd *exec.Cmd, exited chan struct{}) {
		_ = cmd.Wait()
		close(exited)
	}(p.cmd, p.exited)

	return nil
}

func (p *IINA) Wait() <-chan struct{} {
	return p.exited
}

func (p *IINA) Seek(float64) error {
	return fmt.Errorf("seek is not supported on IINA")
}

func (p *IINA) IsRunning() bool {
	select {
	case <-p.exited:
		return false
	default:
		return true
	}
}

func (p *IINA) Close() error {
	if p.cmd != nil && p.cmd.Process != nil && p.IsRunning() {
		_ = p.cmd.Process.Kill()
	}
	return nil
}

func (p *IINA) Socket() string {
	return ""
}
