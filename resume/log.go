package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/filesystem"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/storage"
	"github.com/wemanga/wemanga/util"
	"github.com/wemanga/wemanga/where"
)

// ErrInvalidRecord is returned by Save for records that must not be persisted.
var ErrInvalidRecord = errors.New("invalid resume record")

// Store is the contract the tracker and the home view depend on.
type Store interface {
	// Save moves the record to the front of the log, replacing any record with the same key.
	Save(record *Record) error

	// List returns the log, most recent first.
	List() ([]*Record, error)

	// Remove deletes the record with the given key, if any.
	Remove(key Key) error
}

// Log is the default Store, one JSON array under a single storage key.
type Log struct {
	storage  storage.Storage
	key      string
	capacity int
	mu       sync.Mutex
}

// Option configures a Log.
type Option func(*Log)

// WithCapacity bounds the number of records kept. Non-positive values are ignored.
func WithCapacity(capacity int) Option {
	return func(l *Log) {
		if capacity > 0 {
			l.capacity = capacity
		}
	}
}

// NewLog returns a Log persisted in s.
func NewLog(s storage.Storage, options ...Option) *Log {
	l := &Log{
		storage:  s,
		key:      constant.ContinueWatchingKey,
		capacity: constant.DefaultCapacity,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// maxCapacity bounds the configured capacity, the whole log is rewritten on each save.
const maxCapacity = 100

// Open returns the user's log, stored in the application data directory.
func Open() *Log {
	return NewLog(
		storage.NewLocal(filesystem.Fs(), where.Storage()),
		WithCapacity(util.Clamp(viper.GetInt(key.ResumeCapacity), 1, maxCapacity)),
	)
}

// Capacity is the maximum number of records kept.
func (l *Log) Capacity() int {
	return l.capacity
}

// read returns the persisted records. Missing, unreadable or undecodable data yields an empty log,
// which the next save replaces.
func (l *Log) read() ([]*Record, error) {
	data, ok, err := l.storage.Get(l.key)
	if err != nil {
		log.Warnf("resume log: %v, starting from an empty log", err)
		return []*Record{}, nil
	}
	if !ok {
		return []*Record{}, nil
	}

	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warnf("resume log: %v, starting from an empty log", fmt.Errorf("%w: %v", storage.ErrCorrupt, err))
		return []*Record{}, nil
	}

	return lo.Compact(records), nil
}

func (l *Log) write(records []*Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return l.storage.Set(l.key, data)
}

// Save implements Store.
func (l *Log) Save(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: nil", ErrInvalidRecord)
	}
	if err := record.valid(); err != nil {
		return err
	}

	saved := *record
	if saved.UpdatedAt == 0 {
		saved.UpdatedAt = time.Now().UnixMilli()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.read()
	if err != nil {
		return err
	}

	k := saved.Key()
	records = lo.Reject(records, func(r *Record, _ int) bool {
		return r.Key() == k
	})
	records = append([]*Record{&saved}, records...)
	if len(records) > l.capacity {
		records = records[:l.capacity]
	}

	if err := l.write(records); err != nil {
		return err
	}

	log.Debugf("resume log: saved %s at %d%%", k, saved.Percent())
	return nil
}

// List implements Store.
func (l *Log) List() ([]*Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.read()
}

// Find returns the record with the given key.
func (l *Log) Find(k Key) (mo.Option[*Record], error) {
	records, err := l.List()
	if err != nil {
		return mo.None[*Record](), err
	}

	r, ok := lo.Find(records, func(r *Record) bool {
		return r.Key() == k
	})
	return mo.TupleToOption(r, ok), nil
}

// Remove implements Store. Removing an absent key does not touch storage.
func (l *Log) Remove(k Key) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.read()
	if err != nil {
		return err
	}

	kept := lo.Reject(records, func(r *Record, _ int) bool {
		return r.Key() == k
	})
	if len(kept) == len(records) {
		return nil
	}

	log.Infof("resume log: removed %s", k)
	return l.write(kept)
}

// Clear drops the whole log.
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	log.Info("resume log: cleared")
	return l.storage.Remove(l.key)
}
