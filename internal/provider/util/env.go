package util

import (
	"os"
	"path/filepath"
	"strings"
)

// FirstEnv returns the value and name of the first non-empty environment
// variable. Returns empty strings if none are set.
func FirstEnv(names ...string) (value, name string) {
	for _, n := range names {
		if val := strings.TrimSpace(os.Getenv(n)); val != "" {
			return val, n
		}
	}
	return "", ""
}

// ExpandHome replaces a leading "~/" with the user's home directory.
// Paths without the prefix, or when the home directory is unknown, are
// returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
