package player

import (
	"bufio"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wemanga/wemanga/progress"
)

type sample struct {
	position, duration float64
}

type recordingSink struct {
	mu        sync.Mutex
	durations []float64
	samples   []sample
}

func (s *recordingSink) Metadata(duration float64, seeker progress.Seeker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durations = append(s.durations, duration)
	return nil
}

func (s *recordingSink) TimeUpdate(position, duration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample{position, duration})
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

func TestDecodeEvent(t *testing.T) {
	Convey("Given lines pushed by mpv", t, func() {
		Convey("Property changes are decoded", func() {
			name, data, ok := decodeEvent([]byte(`{"event":"property-change","id":2,"name":"time-pos","data":12.5}`))
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, PropertyTimePos)
			So(data, ShouldEqual, 12.5)
		})

		Convey("Replies, other events and garbage are ignored", func() {
			for _, line := range []string{
				`{"data":null,"error":"success"}`,
				`{"event":"playback-restart"}`,
				`not json`,
			} {
				_, _, ok := decodeEvent([]byte(line))
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestRelay(t *testing.T) {
	Convey("Given a relay in front of a sink", t, func() {
		sink := &recordingSink{}
		relay := NewRelay(sink, nil)

		Convey("Time positions carry the last known duration", func() {
			relay.Handle(PropertyTimePos, 1.0)
			relay.Handle(PropertyDuration, 100.0)
			relay.Handle(PropertyTimePos, 40.0)
			So(sink.samples, ShouldResemble, []sample{{1, 0}, {40, 100}})
		})

		Convey("Metadata is sent for the first known duration only", func() {
			relay.Handle(PropertyDuration, 100.0)
			relay.Handle(PropertyDuration, 101.0)
			So(sink.durations, ShouldResemble, []float64{100})
		})

		Convey("Unavailable properties are skipped", func() {
			relay.Handle(PropertyTimePos, nil)
			relay.Handle("pause", true)
			So(sink.samples, ShouldBeEmpty)
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given a fake mpv socket", t, func() {
		socket := filepath.Join(t.TempDir(), "mpv.sock")
		server, err := net.Listen("unix", socket)
		So(err, ShouldBeNil)
		defer server.Close()

		observed := make(chan string, 2)
		go func() {
			conn, err := server.Accept()
			if err != nil {
				return
			}
			defer conn.Close()

			reader := bufio.NewScanner(conn)
			for i := 0; i < 2 && reader.Scan(); i++ {
				observed <- reader.Text()
			}
			_, _ = conn.Write([]byte(
				`{"request_id":0,"error":"success"}` + "\n" +
					`{"event":"property-change","id":1,"name":"duration","data":100.0}` + "\n" +
					`{"event":"property-change","id":2,"name":"time-pos","data":25.0}` + "\n",
			))
			time.Sleep(200 * time.Millisecond)
		}()

		sink := &recordingSink{}
		listener := NewEventListener(socket, NewRelay(sink, nil).Handle)
		So(listener.Start(), ShouldBeNil)

		Convey("It observes duration and time-pos and relays the events", func() {
			So(<-observed, ShouldContainSubstring, `"duration"`)
			So(<-observed, ShouldContainSubstring, `"time-pos"`)

			deadline := time.After(2 * time.Second)
			for sink.count() == 0 {
				select {
				case <-deadline:
					t.Fatal("no sample relayed")
				case <-time.After(10 * time.Millisecond):
				}
			}

			So(sink.durations, ShouldResemble, []float64{100})
			So(sink.samples[0], ShouldResemble, sample{25, 100})

			listener.Stop()
			select {
			case <-listener.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("read loop did not stop")
			}
		})
	})
}
