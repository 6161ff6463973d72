package player

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wemanga/wemanga/classify"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/open"
	"github.com/wemanga/wemanga/progress"
)

// ErrNotPausable is returned when nothing runs in a player that accepts pause commands.
var ErrNotPausable = errors.New("playback cannot be paused from here")

// Surface presents classified sources: native files in a player process, frames in the system browser.
type Surface struct {
	backend   string
	newPlayer func(backend string) (Player, error)
	browse    func(url string) error

	mu       sync.Mutex
	player   Player
	listener *EventListener
}

// NewSurface returns a surface using the given player backend. BackendBrowser sends everything to the browser.
func NewSurface(backend string) *Surface {
	return &Surface{
		backend:   backend,
		newPlayer: New,
		browse:    open.Start,
	}
}

// Present shows src. For native sources played by mpv, time reports are relayed to sink.
func (s *Surface) Present(src classify.Source, title string, sink progress.Sink) error {
	if !src.Playable() {
		return fmt.Errorf("present: %w", src.Err)
	}

	s.Dismiss()

	if !src.Native() || s.backend == BackendBrowser {
		log.Infof("opening %s source in the browser: %s", src.Kind, src.Ref)
		return s.browse(src.Ref)
	}

	p, err := s.newPlayer(s.backend)
	if err != nil {
		return err
	}
	if err := p.Play(src.Ref, title); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = p

	if sink == nil || p.Socket() == "" {
		return nil
	}

	relay := NewRelay(sink, p)
	listener := NewEventListener(p.Socket(), relay.Handle)
	if err := listener.Start(); err != nil {
		// playback goes on untracked; detach will still record the low water mark
		log.Warnf("progress tracking unavailable: %v", err)
		return nil
	}
	s.listener = listener
	return nil
}

// Dismiss stops relaying and closes the player, if any.
func (s *Surface) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		s.listener.Stop()
		s.listener = nil
	}
	if s.player != nil {
		if err := s.player.Close(); err != nil {
			log.Warnf("close player: %v", err)
		}
		s.player = nil
	}
}

// Done is closed when the current player exits. It is nil when nothing runs in a player process.
func (s *Surface) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}
	return s.player.Wait()
}

// TogglePause pauses or resumes the current player. Only mpv accepts it.
func (s *Surface) TogglePause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.player.(interface{ TogglePause() error })
	if !ok {
		return ErrNotPausable
	}
	return p.TogglePause()
}
