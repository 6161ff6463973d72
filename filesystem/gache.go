package filesystem

import (
	"io"
	"os"
	"time"

	"github.com/metafates/gache"
)

// GacheFs lets gache caches live on the active backend, so tests can keep them in memory.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

// NewCache returns a file cache at path whose entries expire after lifetime.
// The file is resolved on first use, not here.
func NewCache[T any](path string, lifetime time.Duration) *gache.Cache[T] {
	return gache.New[T](&gache.Options{
		Path:       path,
		Lifetime:   lifetime,
		FileSystem: GacheFs{},
	})
}
