// Package session drives navigation between pages and owns the playback lifecycle.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/classify"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/progress"
)

var (
	// ErrContractViolation is returned when a caller asks for an episode outside the given title or season.
	ErrContractViolation = errors.New("contract violation")

	// ErrNoEpisodes is returned when a title has nothing to play.
	ErrNoEpisodes = errors.New("no episodes to play")

	// ErrNoSelection is returned when an operation needs a title and none was given.
	ErrNoSelection = errors.New("no title selected")
)

// Surface renders a classified source. Native sources report time through sink,
// which is nil when playback is not tracked.
type Surface interface {
	Present(src classify.Source, title string, sink progress.Sink) error
	Dismiss()
}

// Viewport is the scrollable page container.
type Viewport interface {
	ScrollToTop()
}

// State is a snapshot of the controller.
type State struct {
	View        View
	Title       *catalog.Title
	Season      *catalog.Season
	Episode     *catalog.Episode
	Source      classify.Source
	Progress    float64
	Failure     string
	HasNext     bool
	HasPrevious bool
}

// Controller is the single owner of the current selection and of the live attachment.
type Controller struct {
	tracker  *progress.Tracker
	surface  Surface
	viewport Viewport

	mu         sync.Mutex
	view       View
	title      *catalog.Title
	season     *catalog.Season
	episode    *catalog.Episode
	source     classify.Source
	attachment *progress.Attachment
	presenting bool
	progress   float64
	failure    string
	listener   func(fraction float64)
}

// New returns a controller on the home view. The tracker's progress handler is taken over.
func New(tracker *progress.Tracker, surface Surface, viewport Viewport) *Controller {
	c := &Controller{
		tracker:  tracker,
		surface:  surface,
		viewport: viewport,
		view:     Home,
	}
	tracker.SetProgressHandler(c.report)
	return c
}

// OnProgress registers a listener called after every reported sample.
func (c *Controller) OnProgress(listener func(fraction float64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = listener
}

// report ignores samples from attachments other than the live one. A reader
// goroutine of the previous episode may still be delivering after a switch.
func (c *Controller) report(from *progress.Attachment, fraction float64) {
	c.mu.Lock()
	if from != c.attachment {
		c.mu.Unlock()
		return
	}
	c.progress = fraction
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(fraction)
	}
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		View:        c.view,
		Title:       c.title,
		Season:      c.season,
		Episode:     c.episode,
		Source:      c.source,
		Progress:    c.progress,
		Failure:     c.failure,
		HasNext:     c.hasNext(),
		HasPrevious: c.hasPrevious(),
	}
}

// View returns the current page.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Progress is the last reported fraction of the current episode.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Failure is the message shown in place of the player, if any.
func (c *Controller) Failure() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// Home clears the selection and goes back to the landing page.
func (c *Controller) Home() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopPlayback()
	c.clear()
	c.show(Home)
}

// Browse switches to one of the listing pages.
func (c *Controller) Browse(view View) error {
	if !view.Browsable() {
		return c.violation("browse to %s", view)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopPlayback()
	c.clear()
	c.show(view)
	return nil
}

// OpenDetail shows the detail page of a title.
func (c *Controller) OpenDetail(title *catalog.Title) error {
	if title == nil {
		return ErrNoSelection
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopPlayback()
	c.clear()
	c.title = title
	c.show(Detail)
	return nil
}

// PlayFromStart plays the first episode of the first season.
func (c *Controller) PlayFromStart(title *catalog.Title) error {
	if title == nil {
		return ErrNoSelection
	}
	if len(title.Seasons) == 0 || len(title.Seasons[0].Episodes) == 0 {
		return fmt.Errorf("%s: %w", title, ErrNoEpisodes)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	season := title.Seasons[0]
	c.play(title, season, season.Episodes[0])
	return nil
}

// PlayEpisode plays a specific episode. The episode must belong to the season and the season to the title.
func (c *Controller) PlayEpisode(title *catalog.Title, season *catalog.Season, episode *catalog.Episode) error {
	switch {
	case title == nil || season == nil || episode == nil:
		return c.violation("play episode with an incomplete selection")
	case !title.Contains(season):
		return c.violation("season %d does not belong to title %d", season.ID, title.ID)
	case !season.Contains(episode):
		return c.violation("episode %d does not belong to season %d", episode.ID, season.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.play(title, season, episode)
	return nil
}

// Next moves to the following episode of the current season. It reports whether it moved.
func (c *Controller) Next() bool {
	return c.step(1)
}

// Previous moves to the preceding episode of the current season. It reports whether it moved.
func (c *Controller) Previous() bool {
	return c.step(-1)
}

// HasNext reports whether Next would move.
func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasNext()
}

// HasPrevious reports whether Previous would move.
func (c *Controller) HasPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasPrevious()
}

// Back leaves the player for the title detail, and any other page for home.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.view {
	case Home:
		return
	case Player:
		c.stopPlayback()
		title := c.title
		c.clear()
		c.title = title
		c.show(Detail)
	default:
		c.stopPlayback()
		c.clear()
		c.show(Home)
	}
}

// Close releases the live attachment. The controller stays usable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPlayback()
}

func (c *Controller) step(delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != Player || c.season == nil {
		return false
	}

	i := c.season.Index(c.episode) + delta
	if i < 0 || i >= len(c.season.Episodes) || c.season.Index(c.episode) < 0 {
		return false
	}

	c.play(c.title, c.season, c.season.Episodes[i])
	return true
}

func (c *Controller) hasNext() bool {
	if c.view != Player || c.season == nil {
		return false
	}
	i := c.season.Index(c.episode)
	return i >= 0 && i+1 < len(c.season.Episodes)
}

func (c *Controller) hasPrevious() bool {
	if c.view != Player || c.season == nil {
		return false
	}
	return c.season.Index(c.episode) > 0
}

// play must be called with c.mu held.
func (c *Controller) play(title *catalog.Title, season *catalog.Season, episode *catalog.Episode) {
	c.stopPlayback()

	c.title, c.season, c.episode = title, season, episode
	c.progress = 0
	c.failure = ""
	c.source = classify.Classify(episode.VideoURL)
	c.show(Player)

	if !c.source.Playable() {
		c.failure = failureMessage(c.source.Err)
		log.Warnf("%s / %s: %v", title, episode, c.source.Err)
		return
	}

	attachment, err := c.tracker.Attach(progress.Session{
		Title:   title,
		Season:  season,
		Episode: episode,
		Source:  c.source,
	})
	if err != nil {
		log.Errorf("tracking %s / %s: %v", title, episode, err)
	} else {
		c.attachment = attachment
	}

	var sink progress.Sink
	if c.attachment != nil {
		sink = c.attachment
	}

	if err := c.surface.Present(c.source, fmt.Sprintf("%s - %s", title, episode), sink); err != nil {
		c.failure = failureMessage(err)
		log.Errorf("present %s: %v", c.source, err)
		c.stopPlayback()
		return
	}
	c.presenting = true
}

// stopPlayback must be called with c.mu held.
func (c *Controller) stopPlayback() {
	if c.attachment != nil {
		if err := c.attachment.Detach(); err != nil {
			log.Errorf("detach: %v", err)
		}
		c.attachment = nil
	}
	if c.presenting {
		c.surface.Dismiss()
		c.presenting = false
	}
}

// clear must be called with c.mu held.
func (c *Controller) clear() {
	c.title, c.season, c.episode = nil, nil, nil
	c.source = classify.Source{}
	c.progress = 0
	c.failure = ""
}

// show must be called with c.mu held.
func (c *Controller) show(view View) {
	c.view = view
	if c.viewport != nil {
		c.viewport.ScrollToTop()
	}
}

func (c *Controller) violation(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
	log.Error(err)
	return err
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, classify.ErrEmpty):
		return "no video for this episode"
	case errors.Is(err, classify.ErrUnresolvable):
		return "cannot load video"
	}
	return fmt.Sprintf("cannot load video: %v", err)
}
