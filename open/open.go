// Package open hands URLs to the system's default handler, the browser for web pages.
package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/log"
)

// ErrUnsupported is returned on systems without a known default handler.
var ErrUnsupported = errors.New("no default URL handler on this system")

// Start opens url with the default handler without waiting for it.
func Start(url string) error {
	cmd, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}

	log.Infof("open %s with %s", url, cmd.Path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}

	// reap the launcher
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", url), nil
	case constant.Darwin:
		return exec.Command("open", url), nil
	case constant.Linux:
		return exec.Command("xdg-open", url), nil
	case constant.Android:
		return exec.Command("termux-open", url), nil
	default:
		return nil, fmt.Errorf("%s: %w", goos, ErrUnsupported)
	}
}
