// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/constant"
	"github.com/wemanga/wemanga/filesystem"
	"github.com/wemanga/wemanga/key"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "WEMANGA_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// Direct override: The path resolution can be explicitly specified via the WEMANGA_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Wemanga))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		// Fallback: Revert to a localized cache directory if the system-provided path is inaccessible.
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Wemanga))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Storage resolves the directory holding local key/value state such as the resume log.
func Storage() string {
	return ensureDir(filepath.Join(Config(), "storage"))
}

// Catalog resolves the catalog data file. The catalog.path setting takes precedence when set.
func Catalog() string {
	if custom := viper.GetString(key.CatalogPath); custom != "" {
		return custom
	}
	return filepath.Join(Config(), "catalog.json")
}

// Upcoming resolves the cache file for the upcoming episodes feed.
func Upcoming() string {
	return filepath.Join(Cache(), "upcoming.json")
}

// Temp resolves a volatile filesystem path for transient application artifacts such as mpv sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Wemanga))
}
