// Package storage persists perft results and analyzed positions in an
// embedded BadgerDB keyed by position hash.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

const appName = "fenrir"

// DataDir returns the platform data directory for the engine, creating
// it if needed.
// - macOS: ~/Library/Application Support/fenrir/
// - Linux: $XDG_DATA_HOME/fenrir/ or ~/.local/share/fenrir/
// - Windows: %APPDATA%/fenrir/
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", errors.Wrap(err, "resolve home dir")
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", errors.Wrap(err, "resolve home dir")
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create data dir")
	}
	return dataDir, nil
}

// DatabaseDir returns the BadgerDB directory, creating it if needed.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create db dir")
	}
	return dbDir, nil
}
