// Package player launches external media players and relays what they report back to the tracker.
// The primary backend is mpv, driven through its JSON-IPC socket.
package player

import (
	"fmt"
	"strings"
)

// Backend names accepted by the player.default setting.
const (
	BackendMPV     = "mpv"
	BackendIINA    = "iina"
	BackendBrowser = "browser"
)

// Player is an external process rendering one media file at a time.
type Player interface {
	// Play starts playback of the given URL with the specified window title.
	Play(url, title string) error

	// Seek moves playback to an absolute position in seconds.
	Seek(seconds float64) error

	// IsRunning reports whether the process is still alive.
	IsRunning() bool

	// Close terminates the process and releases its resources.
	Close() error

	// Socket is the IPC endpoint, empty when the backend has none.
	Socket() string

	// Wait returns a channel closed when the process exits.
	Wait() <-chan struct{}
}

// New returns the player for a backend name.
func New(backend string) (Player, error) {
	switch strings.ToLower(backend) {
	case BackendMPV, "":
		return NewMPV(), nil
	case BackendIINA:
		return NewIINA(), nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", backend)
	}
}
