// Package config resolves user-supplied paths for the wheelhouse CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves ~ and $VAR references in a path so the database
// location from the config file or WHEELHOUSE_DATABASE_PATH can be written
// as e.g. ~/.local/share/wheelhouse/shop.db. If the home directory cannot
// be determined the ~ is left as-is.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
