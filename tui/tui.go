// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wemanga/wemanga/anilist"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/progress"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/session"
)

// Surface is a session surface that can report when its player process exits.
type Surface interface {
	session.Surface
	// Done is closed when the current player exits. Nil when nothing runs in a player.
	Done() <-chan struct{}
}

// Feed provides the upcoming episodes shown on the home view.
type Feed interface {
	Get(ctx context.Context) anilist.Feed
}

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Continue starts on the most recent entry of the resume log.
	Continue bool

	Catalog *catalog.Catalog
	Store   *resume.Log
	Surface Surface
	Tracker *progress.Tracker
	// Upcoming is optional.
	Upcoming Feed
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.controller.Close()

	if options.Continue {
		if err := bubble.continueWatching(); err != nil {
			return err
		}
	}

	program := tea.NewProgram(bubble, tea.WithAltScreen())
	bubble.controller.OnProgress(func(fraction float64) {
		program.Send(progressMsg(fraction))
	})

	_, err := program.Run()
	if err != nil {
		log.Error(err)
	}
	return err
}
