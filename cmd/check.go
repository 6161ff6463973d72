package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/player"
	"github.com/wemanga/wemanga/style"
)

// errMissingDependency is returned when the configured player cannot be started on this system.
type errMissingDependency string

func (e errMissingDependency) Error() string {
	return fmt.Sprintf("%s was not found", string(e))
}

// checkPlayer verifies that the binary behind a player backend is available.
// The browser backend needs nothing.
func checkPlayer(backend string) error {
	switch backend {
	case player.BackendBrowser:
		return nil
	case player.BackendIINA:
		if runtime.GOOS != "darwin" {
			return fmt.Errorf("the %s player is only available on macOS", backend)
		}
		return nil
	}

	if _, err := exec.LookPath("mpv"); err != nil {
		printMissingDependencyError("mpv")
		return errMissingDependency("mpv")
	}
	return nil
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install " + dep
	case "linux":
		installCmd = "sudo apt install " + dep
	case "windows":
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Missing player", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("'%s' plays direct video files and was not found in your PATH.", dep))

	suggestion := fmt.Sprintf("\n\nUse the browser instead with %s", style.New().Foreground(style.AccentColor).Bold(true).Render("--player browser"))
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s%s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd), suggestion)
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
