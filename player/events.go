package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/progress"
)

// Observed mpv properties.
const (
	PropertyTimePos  = "time-pos"
	PropertyDuration = "duration"
)

// EventCallback receives mpv property changes.
type EventCallback func(property string, data any)

// EventListener keeps a connection to mpv open and dispatches property-change events.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener creates a listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start subscribes to time-pos and duration on a dedicated connection.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// events for observe_property are only delivered to the connection that asked for them
	for id, name := range []string{PropertyDuration, PropertyTimePos} {
		payload, _ := json.Marshal(ipcCommand{Command: []any{"observe_property", id + 1, name}})
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	el.done = make(chan struct{})
	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection. Pending callbacks may still complete.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	_ = el.conn.Close()
	el.listening = false
}

// Done is closed once the read loop has returned.
func (el *EventListener) Done() <-chan struct{} {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if name, data, ok := decodeEvent(scanner.Bytes()); ok && el.callback != nil {
			el.callback(name, data)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

// mpvEvent is one line pushed by mpv on an observing connection.
type mpvEvent struct {
	Event string `json:"event"`
	Name  string `json:"name"`
	Data  any    `json:"data"`
}

// decodeEvent extracts property changes. Command replies and other events are ignored.
func decodeEvent(line []byte) (string, any, bool) {
	var event mpvEvent
	if err := json.Unmarshal(line, &event); err != nil {
		return "", nil, false
	}
	if event.Event != "property-change" || event.Name == "" {
		return "", nil, false
	}
	return event.Name, event.Data, true
}

// Relay turns mpv property changes into tracker samples.
type Relay struct {
	sink   progress.Sink
	seeker progress.Seeker

	mu       sync.Mutex
	duration float64
}

// NewRelay feeds sink, seeking through seeker when a saved position exists.
func NewRelay(sink progress.Sink, seeker progress.Seeker) *Relay {
	return &Relay{sink: sink, seeker: seeker}
}

// Handle is an EventCallback.
func (r *Relay) Handle(property string, data any) {
	value, ok := data.(float64)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch property {
	case PropertyDuration:
		first := r.duration <= 0
		r.duration = value
		if first {
			if err := r.sink.Metadata(value, r.seeker); err != nil && !errors.Is(err, progress.ErrDetached) {
				log.Warnf("resume seek: %v", err)
			}
		}
	case PropertyTimePos:
		if err := r.sink.TimeUpdate(value, r.duration); err != nil && !errors.Is(err, progress.ErrDetached) {
			log.Tracef("sample dropped: %v", err)
		}
	}
}
