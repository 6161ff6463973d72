package progress

import (
	"errors"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/classify"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/resume"
)

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1700000000000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := lo.Filter(c.timers, func(t *fakeTimer, _ int) bool {
		return !t.stopped && !t.at.After(c.now)
	})
	c.timers = lo.Reject(c.timers, func(t *fakeTimer, _ int) bool {
		return t.stopped || !t.at.After(c.now)
	})
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.stopped = true
		t.f()
	}
}

func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.CountBy(c.timers, func(t *fakeTimer) bool { return !t.stopped })
}

type memoryStore struct {
	saves []*resume.Record
	found mo.Option[*resume.Record]
}

func (m *memoryStore) Save(r *resume.Record) error {
	m.saves = append(m.saves, r)
	return nil
}

func (m *memoryStore) Find(resume.Key) (mo.Option[*resume.Record], error) {
	return m.found, nil
}

func (m *memoryStore) progresses() []float64 {
	return lo.Map(m.saves, func(r *resume.Record, _ int) float64 { return r.Progress })
}

type seekRecorder struct {
	targets []float64
}

func (s *seekRecorder) Seek(seconds float64) error {
	s.targets = append(s.targets, seconds)
	return nil
}

func session(url string) Session {
	episode := &catalog.Episode{ID: 3, Title: "Episode 3", VideoURL: url}
	season := &catalog.Season{ID: 2, Episodes: []*catalog.Episode{episode}}
	return Session{
		Title:   &catalog.Title{ID: 1, Title: "Frieren", Seasons: []*catalog.Season{season}},
		Season:  season,
		Episode: episode,
		Source:  classify.Classify(url),
	}
}

func TestTracker(t *testing.T) {
	Convey("Given a tracker on a fake clock", t, func() {
		clock := newFakeClock()
		store := &memoryStore{found: mo.None[*resume.Record]()}
		var reported []float64
		tracker := NewTracker(store,
			WithClock(clock),
			WithProgressHandler(func(_ *Attachment, f float64) { reported = append(reported, f) }),
		)

		Convey("When a native source goes 0.0, 0.05, 0.4 and is detached", func() {
			a, err := tracker.Attach(session("https://cdn.example/e3.mp4"))
			So(err, ShouldBeNil)

			So(a.TimeUpdate(0, 100), ShouldBeNil)
			clock.Advance(time.Second)
			So(a.TimeUpdate(5, 100), ShouldBeNil)
			clock.Advance(time.Second)
			So(a.TimeUpdate(40, 100), ShouldBeNil)
			clock.Advance(time.Second)
			So(a.Detach(), ShouldBeNil)

			Convey("Then 0.4 is the last persisted value", func() {
				So(store.progresses(), ShouldResemble, []float64{0.05, 0.4})
				So(store.saves[1].UpdatedAt, ShouldEqual, clock.Now().UnixMilli())
			})

			Convey("Then every sample was reported upward", func() {
				So(reported, ShouldResemble, []float64{0, 0.05, 0.4})
			})

			Convey("Then the trailing write never fires", func() {
				clock.Advance(time.Minute)
				So(store.saves, ShouldHaveLength, 2)
				So(clock.Pending(), ShouldEqual, 0)
			})
		})

		Convey("When a frame source never reports time", func() {
			a, err := tracker.Attach(session("https://youtu.be/abc"))
			So(err, ShouldBeNil)
			So(a.Detach(), ShouldBeNil)

			Convey("Then the low water mark is persisted", func() {
				So(store.progresses(), ShouldResemble, []float64{0.2})
			})
		})

		Convey("Invalid samples are never persisted nor reported", func() {
			a, _ := tracker.Attach(session("https://cdn.example/e3.mp4"))
			for _, sample := range [][2]float64{
				{10, 0}, {10, math.NaN()}, {10, math.Inf(1)}, {math.NaN(), 100},
				{-1, 100}, {150, 100}, {math.Inf(1), 100},
			} {
				So(errors.Is(a.TimeUpdate(sample[0], sample[1]), ErrInvalidSample), ShouldBeTrue)
			}
			So(store.saves, ShouldBeEmpty)
			So(reported, ShouldBeEmpty)
			So(a.Last().IsAbsent(), ShouldBeTrue)

			So(a.Detach(), ShouldBeNil)
			So(store.progresses(), ShouldResemble, []float64{0.2})
		})

		Convey("Writes inside the window collapse into one trailing write", func() {
			a, _ := tracker.Attach(session("https://cdn.example/e3.mp4"))
			So(a.TimeUpdate(10, 100), ShouldBeNil)
			for i := 2; i <= 4; i++ {
				clock.Advance(time.Second)
				So(a.TimeUpdate(float64(i*10), 100), ShouldBeNil)
			}
			So(store.progresses(), ShouldResemble, []float64{0.1})
			So(clock.Pending(), ShouldEqual, 1)

			clock.Advance(2 * time.Second)
			So(store.progresses(), ShouldResemble, []float64{0.1, 0.4})

			Convey("And the next window starts from the trailing write", func() {
				clock.Advance(time.Second)
				So(a.TimeUpdate(45, 100), ShouldBeNil)
				So(store.saves, ShouldHaveLength, 2)
				clock.Advance(4 * time.Second)
				So(store.progresses(), ShouldResemble, []float64{0.1, 0.4, 0.45})
			})
		})

		Convey("Samples at or below the minimum are not written periodically", func() {
			a, _ := tracker.Attach(session("https://cdn.example/e3.mp4"))
			So(a.TimeUpdate(1, 100), ShouldBeNil)
			clock.Advance(10 * time.Second)
			So(store.saves, ShouldBeEmpty)
		})

		Convey("Periodic writes never go backwards but the final write wins", func() {
			a, _ := tracker.Attach(session("https://cdn.example/e3.mp4"))
			So(a.TimeUpdate(50, 100), ShouldBeNil)
			clock.Advance(6 * time.Second)
			So(a.TimeUpdate(30, 100), ShouldBeNil)
			clock.Advance(6 * time.Second)
			So(store.progresses(), ShouldResemble, []float64{0.5})

			So(a.Detach(), ShouldBeNil)
			So(store.progresses(), ShouldResemble, []float64{0.5, 0.3})
		})

		Convey("Only one attachment may be live", func() {
			a, err := tracker.Attach(session("https://cdn.example/e3.mp4"))
			So(err, ShouldBeNil)
			So(tracker.Live().MustGet(), ShouldEqual, a)

			_, err = tracker.Attach(session("https://cdn.example/e4.mp4"))
			So(errors.Is(err, ErrBusy), ShouldBeTrue)

			So(a.Detach(), ShouldBeNil)
			So(tracker.Live().IsAbsent(), ShouldBeTrue)

			b, err := tracker.Attach(session("https://cdn.example/e4.mp4"))
			So(err, ShouldBeNil)
			So(b.ID, ShouldNotEqual, a.ID)
		})

		Convey("Detach is idempotent and closes the attachment", func() {
			a, _ := tracker.Attach(session("https://cdn.example/e3.mp4"))
			So(a.Detach(), ShouldBeNil)
			So(a.Detach(), ShouldBeNil)
			So(store.saves, ShouldHaveLength, 1)

			So(errors.Is(a.TimeUpdate(10, 100), ErrDetached), ShouldBeTrue)
			So(errors.Is(a.Metadata(100, &seekRecorder{}), ErrDetached), ShouldBeTrue)
			So(store.saves, ShouldHaveLength, 1)
		})

		Convey("Unplayable sources are refused", func() {
			_, err := tracker.Attach(session(""))
			So(errors.Is(err, classify.ErrEmpty), ShouldBeTrue)

			_, err = tracker.Attach(session("https://vimeo.com/channels/x"))
			So(errors.Is(err, classify.ErrUnresolvable), ShouldBeTrue)
			So(tracker.Live().IsAbsent(), ShouldBeTrue)
		})

		Convey("Incomplete sessions are refused", func() {
			_, err := tracker.Attach(Session{Source: classify.Classify("https://cdn.example/e3.mp4")})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMetadata(t *testing.T) {
	Convey("Given a saved position at half the episode", t, func() {
		store := &memoryStore{found: mo.Some(&resume.Record{Progress: 0.5})}
		seeker := &seekRecorder{}

		Convey("The element seeks once when the duration is known", func() {
			a, _ := NewTracker(store, WithClock(newFakeClock())).Attach(session("https://cdn.example/e3.mp4"))
			So(a.Saved().IsPresent(), ShouldBeTrue)

			So(a.Metadata(0, seeker), ShouldBeNil)
			So(seeker.targets, ShouldBeEmpty)

			So(a.Metadata(1200, seeker), ShouldBeNil)
			So(a.Metadata(1200, seeker), ShouldBeNil)
			So(seeker.targets, ShouldResemble, []float64{600})
		})

		Convey("Resuming can be turned off", func() {
			a, _ := NewTracker(store, WithClock(newFakeClock()), WithResume(false)).Attach(session("https://cdn.example/e3.mp4"))
			So(a.Metadata(1200, seeker), ShouldBeNil)
			So(seeker.targets, ShouldBeEmpty)
		})
	})
}

func TestConfigOptions(t *testing.T) {
	Convey("Percentages from config are bounded to a fraction", t, func() {
		defer viper.Reset()
		viper.Set(key.PlayerPersistSeconds, 5)
		viper.Set(key.PlayerMinProgress, -3)
		viper.Set(key.PlayerLowWater, 250)

		tracker := NewTracker(&memoryStore{found: mo.None[*resume.Record]()}, ConfigOptions()...)
		So(tracker.interval, ShouldEqual, 5*time.Second)
		So(tracker.minProgress, ShouldEqual, 0.0)
		So(tracker.lowWater, ShouldEqual, 1.0)
	})
}
