// Package storage implements a small key/value store on top of the virtualized filesystem.
//
// Every key owns exactly one file holding its serialized value. Writes replace the whole value
// atomically (temporary file + rename), so readers never observe a partially written value.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/wemanga/wemanga/util"
)

var (
	// ErrInvalidKey is returned for keys that do not map to a usable filename.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrCorrupt marks a stored value its owner could not decode.
	ErrCorrupt = errors.New("corrupt storage value")
)

// Storage is the key/value contract shared by all local state owners.
type Storage interface {
	// Get returns the value stored under key. ok is false when nothing is stored.
	Get(key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key in a single write.
	Set(key string, value []byte) error

	// Remove deletes the value stored under key; removing a missing key is a no-op.
	Remove(key string) error
}

// Local is a Storage backed by one directory of an afero filesystem.
type Local struct {
	fs  afero.Afero
	dir string
	mu  sync.Mutex
}

// NewLocal returns a Storage rooted at dir on fs. The directory is created lazily on first write.
func NewLocal(fs afero.Fs, dir string) *Local {
	return &Local{fs: afero.Afero{Fs: fs}, dir: dir}
}

func (l *Local) path(key string) (string, error) {
	name := util.SanitizeFilename(key)
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(l.dir, name+".json"), nil
}

// Get implements Storage.
func (l *Local) Get(key string) ([]byte, bool, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements Storage.
func (l *Local) Set(key string, value []byte) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.fs.MkdirAll(l.dir, 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp := path + ".tmp"
	if err := l.fs.WriteFile(tmp, value, 0o600); err != nil {
		_ = l.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := l.fs.Rename(tmp, path); err != nil {
		_ = l.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Remove implements Storage.
func (l *Local) Remove(key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
