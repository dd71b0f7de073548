package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory.
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigPath returns the skillkit configuration directory (~/.config/skillkit).
func ConfigPath() string {
	return filepath.Join(HomeDir(), ".config", "skillkit")
}

// DefaultTargetPath returns the default install target relative to the
// consuming project: .claude/skills under the working directory.
func DefaultTargetPath() string {
	return filepath.Join(".claude", "skills")
}

// ExpandPath expands a leading ~ to the home directory and resolves
// relative paths against baseDir. Returns "" for empty input.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if baseDir == "" {
		baseDir, _ = os.Getwd()
	}
	return filepath.Join(baseDir, path)
}
