// Package config loads and persists skillkit configuration.
//
// Configuration is read from ~/.config/skillkit/config.yaml, merged over
// built-in defaults, then overridden by SKILLKIT_* environment
// variables. A .env file in the working directory is loaded first so
// per-project overrides work without exporting anything.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hwskills/skillkit/internal/logging"
	"github.com/hwskills/skillkit/internal/model"
	"github.com/hwskills/skillkit/internal/util"
)

// FileName is the config file name inside the config directory.
const FileName = "config.yaml"

// Config is the root configuration.
type Config struct {
	Install   InstallConfig   `yaml:"install"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Schematic SchematicConfig `yaml:"schematic"`
	Output    OutputConfig    `yaml:"output"`
}

// InstallConfig controls skill installation.
type InstallConfig struct {
	// Target is the directory skills are installed into.
	Target string `yaml:"target"`
	// Source is a skills directory on disk. Empty means the embedded corpus.
	Source string `yaml:"source,omitempty"`
	// Mode is "symlink" or "copy".
	Mode string `yaml:"mode"`
}

// BootstrapConfig controls the deps command.
type BootstrapConfig struct {
	// Pip overrides the pip executable used for Python packages.
	Pip string `yaml:"pip,omitempty"`
	// Manifest is a TOML library manifest path. Empty means built-in defaults.
	Manifest string `yaml:"manifest,omitempty"`
	// Packages overrides the Python packages to install.
	Packages []string `yaml:"packages,omitempty"`
	// SymbolDir is where KiCad should find the cloned symbol libraries.
	SymbolDir string `yaml:"symbol_dir,omitempty"`
}

// SchematicConfig controls schematic generation.
type SchematicConfig struct {
	// OutputDir is where bare schematic filenames land.
	OutputDir string `yaml:"output_dir"`
	// RenderSVG exports an SVG after generation when kicad-cli exists.
	RenderSVG bool `yaml:"render_svg"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	// Color enables colored output.
	Color bool `yaml:"color"`
	// Verbose enables info-level logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Install: InstallConfig{
			Target: util.DefaultTargetPath(),
			Mode:   string(model.LinkSymlink),
		},
		Schematic: SchematicConfig{
			OutputDir: "KiCad",
			RenderSVG: true,
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

// FilePath returns the config file location.
func FilePath() string {
	return filepath.Join(util.ConfigPath(), FileName)
}

// Exists reports whether a config file is present.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}

// Load reads the configuration: defaults, then the config file if
// present, then environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	return LoadFromPath(FilePath())
}

// LoadFromPath loads configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	// Missing .env files are the normal case.
	if err := godotenv.Load(); err == nil {
		logging.Debug("loaded .env file")
	}

	cfg := Default()

	// #nosec G304 - config path is derived from the user's home directory
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logging.Debug("no config file, using defaults", logging.Path(path))
	case err != nil:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides config fields from SKILLKIT_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("SKILLKIT_TARGET"); v != "" {
		c.Install.Target = v
	}
	if v := os.Getenv("SKILLKIT_SOURCE"); v != "" {
		c.Install.Source = v
	}
	if v := os.Getenv("SKILLKIT_MODE"); v != "" {
		c.Install.Mode = v
	}
	if v := os.Getenv("SKILLKIT_PIP"); v != "" {
		c.Bootstrap.Pip = v
	}
	if v := os.Getenv("SKILLKIT_MANIFEST"); v != "" {
		c.Bootstrap.Manifest = v
	}
	if v := os.Getenv("SKILLKIT_OUTPUT_DIR"); v != "" {
		c.Schematic.OutputDir = v
	}
	if v := os.Getenv("SKILLKIT_NO_COLOR"); isTruthy(v) {
		c.Output.Color = false
	}
	if v := os.Getenv("SKILLKIT_VERBOSE"); isTruthy(v) {
		c.Output.Verbose = true
	}
}

func isTruthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Validate checks field values that have a closed set of options.
func (c *Config) Validate() error {
	if !model.LinkMode(c.Install.Mode).IsValid() {
		return fmt.Errorf("invalid install mode %q (want %q or %q)",
			c.Install.Mode, model.LinkSymlink, model.LinkCopy)
	}
	if c.Install.Target == "" {
		return fmt.Errorf("install target must not be empty")
	}
	return nil
}

// Save writes the configuration to the default location, creating the
// config directory if needed.
func (c *Config) Save() error {
	return c.SaveTo(FilePath())
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	logging.Debug("saved config", logging.Path(path))
	return nil
}
