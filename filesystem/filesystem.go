// Package filesystem is the single afero backend every file access goes through:
// the resume storage, the catalog loader, the config file and the gache caches.
// Tests swap it for memory with SetMemMapFs.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

func API() afero.Afero {
	return backend
}

// Fs is the bare afero.Fs, for constructors taking one such as storage.NewLocal and catalog.Load.
func Fs() afero.Fs {
	return backend.Fs
}

func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to an empty in-memory backend. Nothing written before is kept.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
