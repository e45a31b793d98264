// Package config resolves where studygen keeps its own state, separate from
// the Obsidian vault the notes are written into.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the directory name used under the XDG data home.
const AppDirName = "studygen"

// EnvDir overrides the data directory when set.
const EnvDir = "STUDYGEN_DIR"

// DataDir resolves the base directory for studygen state. It checks
// STUDYGEN_DIR first, then XDG paths, and finally falls back to the user's
// home directory.
func DataDir() string {
	if explicit := os.Getenv(EnvDir); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), AppDirName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, AppDirName)
}

// RegistryPath returns the absolute path to the plan registry database.
func RegistryPath() string {
	return filepath.Join(DataDir(), "registry.db")
}
