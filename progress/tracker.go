// Package progress samples playback position and turns it into throttled resume log writes.
package progress

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/classify"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/util"
)

var (
	// ErrBusy is returned by Attach while another attachment is live.
	ErrBusy = errors.New("tracker already attached")

	// ErrDetached is returned when an attachment is used after Detach.
	ErrDetached = errors.New("attachment detached")

	// ErrInvalidSample marks a time update that cannot be turned into a fraction.
	ErrInvalidSample = errors.New("invalid progress sample")
)

// Store is what the tracker needs from the resume log.
type Store interface {
	Save(record *resume.Record) error
	Find(k resume.Key) (mo.Option[*resume.Record], error)
}

// Session is the episode being played and how it is rendered.
type Session struct {
	Title   *catalog.Title
	Season  *catalog.Season
	Episode *catalog.Episode
	Source  classify.Source
}

// Key identifies the resume record of the session.
func (s Session) Key() resume.Key {
	return resume.KeyOf(s.Title, s.Season, s.Episode)
}

// Seeker moves the playback element to a position in seconds.
type Seeker interface {
	Seek(seconds float64) error
}

// Tracker hands out attachments, at most one at a time.
type Tracker struct {
	store       Store
	clock       Clock
	interval    time.Duration
	minProgress float64
	lowWater    float64
	resume      bool
	onProgress  Handler

	mu   sync.Mutex
	live *Attachment
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// WithInterval sets the minimum delay between two periodic writes.
func WithInterval(interval time.Duration) Option {
	return func(t *Tracker) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

// WithMinProgress sets the fraction at or below which periodic writes are skipped.
func WithMinProgress(fraction float64) Option {
	return func(t *Tracker) {
		t.minProgress = fraction
	}
}

// WithLowWater sets the fraction written on detach when no sample was ever observed.
func WithLowWater(fraction float64) Option {
	return func(t *Tracker) {
		t.lowWater = fraction
	}
}

// WithResume toggles seeking to the saved position when metadata arrives.
func WithResume(enabled bool) Option {
	return func(t *Tracker) {
		t.resume = enabled
	}
}

// Handler receives every valid sample along with the attachment that observed it.
type Handler func(a *Attachment, fraction float64)

// WithProgressHandler registers a callback receiving every valid sample.
func WithProgressHandler(handler Handler) Option {
	return func(t *Tracker) {
		t.onProgress = handler
	}
}

// ConfigOptions reads the player.* settings.
func ConfigOptions() []Option {
	return []Option{
		WithInterval(time.Duration(viper.GetInt(key.PlayerPersistSeconds)) * time.Second),
		WithMinProgress(util.Clamp(viper.GetFloat64(key.PlayerMinProgress)/100, 0, 1)),
		WithLowWater(util.Clamp(viper.GetFloat64(key.PlayerLowWater)/100, 0, 1)),
		WithResume(viper.GetBool(key.PlayerResumeOnOpen)),
	}
}

// NewTracker returns a tracker persisting to store.
func NewTracker(store Store, options ...Option) *Tracker {
	t := &Tracker{
		store:       store,
		clock:       SystemClock,
		interval:    5 * time.Second,
		minProgress: constant.DefaultMinProgress,
		lowWater:    constant.DefaultLowWater,
		resume:      true,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// SetProgressHandler replaces the progress callback for future samples.
func (t *Tracker) SetProgressHandler(handler Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onProgress = handler
}

// Live returns the current attachment, if any.
func (t *Tracker) Live() mo.Option[*Attachment] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return mo.TupleToOption(t.live, t.live != nil)
}

// Attach starts observing a session. The returned attachment must be detached on every exit path.
func (t *Tracker) Attach(session Session) (*Attachment, error) {
	if session.Title == nil || session.Season == nil || session.Episode == nil {
		return nil, errors.New("attach: incomplete session")
	}
	if !session.Source.Playable() {
		cause := session.Source.Err
		if cause == nil {
			cause = classify.ErrEmpty
		}
		return nil, fmt.Errorf("attach: %w", cause)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.live != nil {
		return nil, ErrBusy
	}

	a := &Attachment{
		ID:      uuid.NewString(),
		tracker: t,
		session: session,
		saved:   mo.None[*resume.Record](),
		handler: t.onProgress,
	}
	a.log = log.WithFields(logrus.Fields{
		"attachment": a.ID,
		"episode":    session.Key().String(),
		"source":     string(session.Source.Kind),
	})

	if t.resume {
		saved, err := t.store.Find(session.Key())
		if err != nil {
			a.log.Warnf("resume lookup failed: %v", err)
		} else {
			a.saved = saved
		}
	}

	t.live = a
	a.log.Info("attached")
	return a, nil
}

func (t *Tracker) release(a *Attachment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.live == a {
		t.live = nil
	}
}

// Attachment observes one playback of one episode.
type Attachment struct {
	ID string

	tracker *Tracker
	session Session
	saved   mo.Option[*resume.Record]
	handler Handler
	log     *logrus.Entry

	mu          sync.Mutex
	detached    bool
	seeked      bool
	sampled     bool
	last        float64
	written     bool
	writtenAt   time.Time
	lastWritten float64
	pending     Timer
}

// Session returns the observed session.
func (a *Attachment) Session() Session {
	return a.session
}

// Saved is the record found when the attachment was created.
func (a *Attachment) Saved() mo.Option[*resume.Record] {
	return a.saved
}

// Last returns the newest valid sample.
func (a *Attachment) Last() mo.Option[float64] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return mo.TupleToOption(a.last, a.sampled)
}

// Metadata is called once the element knows the media duration. It seeks to the saved position, once.
func (a *Attachment) Metadata(duration float64, seeker Seeker) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.detached {
		return ErrDetached
	}
	if a.seeked || !finitePositive(duration) {
		return nil
	}

	saved, ok := a.saved.Get()
	if !ok || saved.Progress <= 0 || saved.Progress >= 1 {
		return nil
	}

	a.seeked = true
	target := saved.Progress * duration
	a.log.Infof("resuming at %.1fs (%d%%)", target, saved.Percent())
	return seeker.Seek(target)
}

// TimeUpdate feeds a position sample. Invalid samples are discarded without touching any state.
func (a *Attachment) TimeUpdate(position, duration float64) error {
	fraction, ok := sampleOf(position, duration)
	if !ok {
		return ErrInvalidSample
	}

	a.mu.Lock()
	if a.detached {
		a.mu.Unlock()
		return ErrDetached
	}

	a.last = fraction
	a.sampled = true
	a.maybePersist()
	handler := a.handler
	a.mu.Unlock()

	if handler != nil {
		handler(a, fraction)
	}
	return nil
}

// maybePersist writes the newest sample now, or schedules a single trailing write at the window edge.
// Must be called with a.mu held.
func (a *Attachment) maybePersist() {
	t := a.tracker
	now := t.clock.Now()

	if !a.written || now.Sub(a.writtenAt) >= t.interval {
		a.persistPeriodic(now)
		return
	}

	if a.pending != nil {
		return
	}

	wait := a.writtenAt.Add(t.interval).Sub(now)
	a.pending = t.clock.AfterFunc(wait, a.trailing)
}

func (a *Attachment) trailing() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = nil
	if a.detached {
		return
	}
	a.persistPeriodic(a.tracker.clock.Now())
}

// persistPeriodic must be called with a.mu held.
func (a *Attachment) persistPeriodic(now time.Time) {
	t := a.tracker
	fraction := a.last

	if fraction <= t.minProgress {
		return
	}
	if a.written && fraction < a.lastWritten {
		a.log.Debugf("skipping write of %.3f below %.3f", fraction, a.lastWritten)
		return
	}

	if err := a.save(fraction, now); err != nil {
		a.log.Warnf("periodic write failed: %v", err)
		return
	}

	a.written = true
	a.writtenAt = now
	a.lastWritten = fraction
	a.log.Debugf("periodic write %.3f", fraction)
}

func (a *Attachment) save(fraction float64, now time.Time) error {
	s := a.session
	return a.tracker.store.Save(resume.NewRecord(s.Title, s.Season, s.Episode, fraction, now))
}

// Detach stops observing and writes the final position: the newest sample, or the low water mark
// when the source never reported time. Only the first call has an effect.
func (a *Attachment) Detach() error {
	a.mu.Lock()
	if a.detached {
		a.mu.Unlock()
		return nil
	}
	a.detached = true

	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}

	final := a.tracker.lowWater
	if a.sampled {
		final = a.last
	}
	err := a.save(final, a.tracker.clock.Now())
	a.mu.Unlock()

	a.tracker.release(a)

	if err != nil {
		a.log.Errorf("final write failed: %v", err)
		return fmt.Errorf("detach: %w", err)
	}

	a.log.Infof("detached at %.3f", final)
	return nil
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

func sampleOf(position, duration float64) (float64, bool) {
	if !finitePositive(duration) || math.IsNaN(position) || math.IsInf(position, 0) {
		return 0, false
	}
	fraction := position / duration
	if fraction < 0 || fraction > 1 {
		return 0, false
	}
	return fraction, true
}

// Sink receives what a native playback element reports. *Attachment implements it.
type Sink interface {
	Metadata(duration float64, seeker Seeker) error
	TimeUpdate(position, duration float64) error
}

var _ Sink = (*Attachment)(nil)
