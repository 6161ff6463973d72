package tui

import (
	"context"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/anilist"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/internal/ui"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/session"
)

type (
	// progressMsg carries a fraction reported by the tracker.
	progressMsg float64
	// feedMsg carries the upcoming episodes feed.
	feedMsg anilist.Feed
	// playerExitedMsg is sent when the player process of episode exits.
	playerExitedMsg struct{ episode *catalog.Episode }
)

// Init starts the spinner and the upcoming feed fetch.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.fetchFeed(), b.waitForPlayerExit())
}

func (b *statefulBubble) fetchFeed() tea.Cmd {
	if b.upcoming == nil || !viper.GetBool(key.UpcomingEnable) {
		return nil
	}

	b.fetching = true
	feed := b.upcoming
	return func() tea.Msg {
		return feedMsg(feed.Get(context.Background()))
	}
}

// waitForPlayerExit reports the exit of the current player process, if any.
func (b *statefulBubble) waitForPlayerExit() tea.Cmd {
	if b.surface == nil || b.state != playerState {
		return nil
	}

	done := b.surface.Done()
	if done == nil {
		return nil
	}

	episode := b.controller.State().Episode
	return func() tea.Msg {
		<-done
		return playerExitedMsg{episode: episode}
	}
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := b.notifier.Update(msg); cmd != nil {
		return b, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.controller.Close()
			return b, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case progressMsg:
		b.progress = float64(msg)
		return b, nil
	case feedMsg:
		b.fetching = false
		b.feed = msg.Episodes
		if b.state == homeState {
			b.refreshHome()
		}
		if msg.Notice != "" {
			return b, ui.Notify(msg.Notice)
		}
		return b, nil
	case playerExitedMsg:
		current := b.controller.State()
		if current.View == session.Player && current.Episode == msg.episode {
			b.controller.Back()
			b.sync()
		}
		return b, nil
	}

	switch b.state {
	case homeState:
		return b.updateHome(msg)
	case listingState:
		return b.updateListing(msg)
	case detailState:
		return b.updateDetail(msg)
	case playerState:
		return b.updatePlayer(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

// pauser is implemented by surfaces that can pause a running player.
type pauser interface {
	TogglePause() error
}

// selected returns the wrapped value of the selected list item.
func selected(l *list.Model) (any, bool) {
	item, ok := l.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	return item.internal, true
}

// navigate runs a controller transition and mirrors its outcome.
func (b *statefulBubble) navigate(err error) tea.Cmd {
	if err != nil {
		b.raiseError(err)
		return nil
	}

	b.sync()
	return b.waitForPlayerExit()
}

func (b *statefulBubble) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		value, _ := selected(&b.homeC)

		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			switch e := value.(type) {
			case resume.Entry:
				return b, b.navigate(b.controller.PlayEpisode(e.Title, e.Season, e.Episode))
			case session.View:
				b.query = ""
				return b, b.navigate(b.controller.Browse(e))
			case catalog.Novelty:
				return b, b.navigate(b.controller.OpenDetail(e.Title))
			case *catalog.Title:
				return b, b.navigate(b.controller.OpenDetail(e))
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.playFromStart):
			switch e := value.(type) {
			case catalog.Novelty:
				return b, b.navigate(b.controller.PlayFromStart(e.Title))
			case *catalog.Title:
				return b, b.navigate(b.controller.PlayFromStart(e))
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.remove):
			if e, ok := value.(resume.Entry); ok {
				if err := b.store.Remove(e.Record.Key()); err != nil {
					log.Error(err)
					return b, ui.Notify("cannot forget " + e.Record.String())
				}
				b.refreshHome()
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.homeC, cmd = b.homeC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateListing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if b.searching {
		return b.updateSearch(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		value, _ := selected(&b.titlesC)
		title, _ := value.(*catalog.Title)

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.query = ""
			b.controller.Back()
			b.sync()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.search):
			b.searching = true
			b.inputC.SetValue(b.query)
			return b, tea.Batch(b.inputC.Focus(), textinput.Blink)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if title == nil {
				return b, nil
			}
			return b, b.navigate(b.controller.OpenDetail(title))
		case bubblesKey.Matches(msg, b.keymap.playFromStart):
			if title == nil {
				return b, nil
			}
			return b, b.navigate(b.controller.PlayFromStart(title))
		}
	}

	var cmd tea.Cmd
	b.titlesC, cmd = b.titlesC.Update(msg)
	return b, cmd
}

// updateSearch edits the listing query. Results are refreshed on each keystroke.
func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			b.query = ""
			fallthrough
		case tea.KeyEnter:
			b.searching = false
			b.inputC.Blur()
			b.refreshTitles(b.controller.View())
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	if b.inputC.Value() != b.query {
		b.query = b.inputC.Value()
		b.refreshTitles(b.controller.View())
		b.titlesC.ResetSelected()
	}
	return b, cmd
}

func (b *statefulBubble) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.controller.Back()
			b.sync()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			value, _ := selected(&b.episodesC)
			if e, ok := value.(*episodeItem); ok {
				return b, b.navigate(b.controller.PlayEpisode(e.title, e.season, e.episode))
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.playFromStart):
			return b, b.navigate(b.controller.PlayFromStart(b.controller.State().Title))
		}
	}

	var cmd tea.Cmd
	b.episodesC, cmd = b.episodesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.controller.Back()
			b.sync()
		case bubblesKey.Matches(msg, b.keymap.nextEp):
			if b.controller.Next() {
				return b, b.navigate(nil)
			}
		case bubblesKey.Matches(msg, b.keymap.prevEp):
			if b.controller.Previous() {
				return b, b.navigate(nil)
			}
		case bubblesKey.Matches(msg, b.keymap.pause):
			p, ok := b.surface.(pauser)
			if !ok {
				return b, nil
			}
			if err := p.TogglePause(); err != nil {
				return b, ui.Notify(err.Error())
			}
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.controller.Close()
			return b, tea.Quit
		}
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.lastError = nil
			b.sync()
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.controller.Close()
			return b, tea.Quit
		}
	}

	return b, nil
}
