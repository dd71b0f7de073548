package model

import "fmt"

// LinkMode controls how skills are materialized in the target directory.
type LinkMode string

const (
	// LinkSymlink installs skills as symbolic links to the source files.
	LinkSymlink LinkMode = "symlink"
	// LinkCopy installs skills as regular file copies.
	LinkCopy LinkMode = "copy"
)

// IsValid returns true if the link mode is recognized.
func (m LinkMode) IsValid() bool {
	switch m {
	case LinkSymlink, LinkCopy:
		return true
	default:
		return false
	}
}

// ParseLinkMode converts a string into a LinkMode.
func ParseLinkMode(s string) (LinkMode, error) {
	m := LinkMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown link mode %q (expected %q or %q)", s, LinkSymlink, LinkCopy)
	}
	return m, nil
}
