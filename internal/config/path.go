// Package config resolves filesystem paths used by the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath is where the ledger database lives when
// database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/khata/khata.db"

// ExpandPath resolves a configured path: a leading ~ becomes the home
// directory, then $VAR references are expanded. Paths that need neither
// pass through unchanged, as does ~ when the home directory cannot be
// determined.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
