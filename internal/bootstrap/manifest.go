package bootstrap

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Manifest describes the symbol libraries to clone during bootstrap.
// Stored as TOML:
//
//	[[library]]
//	name = "kicad-symbols"
//	repo = "https://gitlab.com/kicad/libraries/kicad-symbols.git"
//	dest = "~/kicad/symbols"
type Manifest struct {
	Libraries []Library `toml:"library"`
}

// Library is a single git-hosted symbol or footprint library.
type Library struct {
	// Name identifies the library in output.
	Name string `toml:"name"`
	// Repo is the git clone URL.
	Repo string `toml:"repo"`
	// Ref is an optional branch or tag.
	Ref string `toml:"ref,omitempty"`
	// Dest is the clone destination. Supports ~ expansion.
	Dest string `toml:"dest"`
}

// LoadManifest reads and validates a library manifest.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %q: %w", path, err)
	}
	return &m, nil
}

// Validate checks that every library entry is cloneable.
func (m *Manifest) Validate() error {
	for i, lib := range m.Libraries {
		if lib.Repo == "" {
			return fmt.Errorf("library %d (%s): repo is required", i, lib.Name)
		}
		if lib.Dest == "" {
			return fmt.Errorf("library %d (%s): dest is required", i, lib.Name)
		}
	}
	return nil
}

// DefaultManifest returns the libraries cloned when no manifest file is
// provided: the official KiCad symbol and footprint libraries.
func DefaultManifest() *Manifest {
	return &Manifest{
		Libraries: []Library{
			{
				Name: "kicad-symbols",
				Repo: "https://gitlab.com/kicad/libraries/kicad-symbols.git",
				Dest: "~/kicad/symbols",
			},
			{
				Name: "kicad-footprints",
				Repo: "https://gitlab.com/kicad/libraries/kicad-footprints.git",
				Dest: "~/kicad/footprints",
			},
		},
	}
}
