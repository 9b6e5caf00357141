package utils

import (
	"os"
	"path/filepath"
)

// GetProjectRoot walks up from the working directory until it finds go.mod.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

// GetDataDir returns ~/.flavorfind, falling back to the project root when
// no home directory is available.
func GetDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(GetProjectRoot(), ".flavorfind")
	}
	return filepath.Join(home, ".flavorfind")
}
