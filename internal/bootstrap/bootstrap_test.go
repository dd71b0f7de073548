package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records executed commands and answers LookPath from a
// fixed set of available binaries.
type fakeRunner struct {
	available map[string]bool
	commands  []string
	fail      map[string]error
}

func newFakeRunner(available ...string) *fakeRunner {
	set := make(map[string]bool, len(available))
	for _, a := range available {
		set[a] = true
	}
	return &fakeRunner{available: set}
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	cmd := name + " " + strings.Join(args, " ")
	r.commands = append(r.commands, cmd)
	if err, ok := r.fail[name]; ok {
		return err
	}
	return nil
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if r.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("%s: executable file not found in $PATH", name)
}

func TestDetectManager(t *testing.T) {
	tests := []struct {
		goos      string
		available []string
		want      PackageManager
		found     bool
	}{
		{"darwin", []string{"brew"}, Homebrew, true},
		{"darwin", nil, "", false},
		{"linux", []string{"dnf"}, Dnf, true},
		{"linux", []string{"apt-get", "dnf"}, Apt, true},
		{"windows", []string{"winget"}, Winget, true},
		{"plan9", []string{"brew"}, "", false},
	}
	for _, tt := range tests {
		runner := newFakeRunner(tt.available...)
		got, found := DetectManager(tt.goos, runner.LookPath)
		if got != tt.want || found != tt.found {
			t.Errorf("DetectManager(%s, %v) = (%s, %v), want (%s, %v)",
				tt.goos, tt.available, got, found, tt.want, tt.found)
		}
	}
}

func TestKiCadInstallCommand(t *testing.T) {
	if cmd := Homebrew.KiCadInstallCommand(); cmd[0] != "brew" || cmd[2] != "--cask" {
		t.Errorf("Unexpected brew command: %v", cmd)
	}
	if cmd := Apt.KiCadInstallCommand(); cmd[0] != "sudo" {
		t.Errorf("apt-get install should be run with sudo: %v", cmd)
	}
}

func TestInstallKiCad(t *testing.T) {
	runner := newFakeRunner("brew")
	var out bytes.Buffer

	err := InstallKiCad(context.Background(), Options{
		GOOS: "darwin", Runner: runner, Out: &out,
	})
	if err != nil {
		t.Fatalf("InstallKiCad failed: %v", err)
	}
	if len(runner.commands) != 1 || runner.commands[0] != "brew install --cask kicad" {
		t.Errorf("Unexpected commands: %v", runner.commands)
	}
}

func TestInstallKiCad_UnsupportedOSWarns(t *testing.T) {
	runner := newFakeRunner()
	var out bytes.Buffer

	err := InstallKiCad(context.Background(), Options{
		GOOS: "plan9", Runner: runner, Out: &out,
	})
	if err != nil {
		t.Fatalf("Unsupported OS should warn, not fail: %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("No commands should run: %v", runner.commands)
	}
	if !strings.Contains(out.String(), "install KiCad manually") {
		t.Errorf("Expected manual-install hint, got %q", out.String())
	}
}

func TestInstallKiCad_DryRun(t *testing.T) {
	runner := newFakeRunner("apt-get")
	var out bytes.Buffer

	err := InstallKiCad(context.Background(), Options{
		GOOS: "linux", Runner: runner, Out: &out, DryRun: true,
	})
	if err != nil {
		t.Fatalf("InstallKiCad failed: %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("Dry run should not execute: %v", runner.commands)
	}
	if !strings.Contains(out.String(), "would run: sudo apt-get install -y kicad") {
		t.Errorf("Unexpected dry run output: %q", out.String())
	}
}

func TestInstallPythonPackages(t *testing.T) {
	runner := newFakeRunner("pip3")
	var out bytes.Buffer

	err := InstallPythonPackages(context.Background(), Options{
		Runner: runner, Out: &out,
	})
	if err != nil {
		t.Fatalf("InstallPythonPackages failed: %v", err)
	}
	if len(runner.commands) != 1 || runner.commands[0] != "pip3 install --user kicad-sch-api" {
		t.Errorf("Unexpected commands: %v", runner.commands)
	}
}

func TestInstallPythonPackages_FallsBackToPip(t *testing.T) {
	runner := newFakeRunner("pip")
	var out bytes.Buffer

	err := InstallPythonPackages(context.Background(), Options{
		Runner: runner, Out: &out, Packages: []string{"pkg-a", "pkg-b"},
	})
	if err != nil {
		t.Fatalf("InstallPythonPackages failed: %v", err)
	}
	if runner.commands[0] != "pip install --user pkg-a pkg-b" {
		t.Errorf("Unexpected command: %v", runner.commands)
	}
}

func TestInstallPythonPackages_MissingPip(t *testing.T) {
	runner := newFakeRunner("brew")
	var out bytes.Buffer

	err := InstallPythonPackages(context.Background(), Options{
		Runner: runner, Out: &out,
	})
	if err == nil || !strings.Contains(err.Error(), "pip not found") {
		t.Fatalf("Expected missing pip error, got %v", err)
	}
}

func TestCloneLibraries(t *testing.T) {
	runner := newFakeRunner("git")
	var out bytes.Buffer
	dir := t.TempDir()

	manifest := &Manifest{
		Libraries: []Library{
			{Name: "symbols", Repo: "https://example.com/symbols.git", Dest: filepath.Join(dir, "symbols")},
			{Name: "pinned", Repo: "https://example.com/pinned.git", Ref: "9.0", Dest: filepath.Join(dir, "pinned")},
		},
	}

	err := CloneLibraries(context.Background(), manifest, Options{
		Runner: runner, Out: &out, SymbolDir: filepath.Join(dir, "symbols"),
	})
	if err != nil {
		t.Fatalf("CloneLibraries failed: %v", err)
	}
	if len(runner.commands) != 2 {
		t.Fatalf("Expected 2 clones, got %v", runner.commands)
	}
	if !strings.Contains(runner.commands[0], "clone --depth 1 https://example.com/symbols.git") {
		t.Errorf("Unexpected clone command: %q", runner.commands[0])
	}
	if !strings.Contains(runner.commands[1], "--branch 9.0") {
		t.Errorf("Pinned clone should pass --branch: %q", runner.commands[1])
	}
	if !strings.Contains(out.String(), "Cloning symbols...") {
		t.Errorf("Expected per-library status line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "KICAD_SYMBOL_DIR=") {
		t.Errorf("Expected symbol dir hint, got %q", out.String())
	}
}

func TestCloneLibraries_SkipsExisting(t *testing.T) {
	runner := newFakeRunner("git")
	var out bytes.Buffer
	dest := t.TempDir() // already exists

	manifest := &Manifest{
		Libraries: []Library{{Name: "symbols", Repo: "https://example.com/s.git", Dest: dest}},
	}

	err := CloneLibraries(context.Background(), manifest, Options{Runner: runner, Out: &out})
	if err != nil {
		t.Fatalf("CloneLibraries failed: %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("Existing destination should be skipped: %v", runner.commands)
	}
	if !strings.Contains(out.String(), "already cloned") {
		t.Errorf("Expected skip notice, got %q", out.String())
	}
}

func TestCloneLibraries_MissingGit(t *testing.T) {
	runner := newFakeRunner()
	var out bytes.Buffer

	err := CloneLibraries(context.Background(), DefaultManifest(), Options{Runner: runner, Out: &out})
	if err == nil || !strings.Contains(err.Error(), "git not found") {
		t.Fatalf("Expected missing git error, got %v", err)
	}
}

func TestCloneLibraries_CloneFailure(t *testing.T) {
	runner := newFakeRunner("git")
	runner.fail = map[string]error{"git": errors.New("network down")}
	var out bytes.Buffer

	manifest := &Manifest{
		Libraries: []Library{{Name: "symbols", Repo: "https://example.com/s.git", Dest: filepath.Join(t.TempDir(), "s")}},
	}

	err := CloneLibraries(context.Background(), manifest, Options{Runner: runner, Out: &out})
	if err == nil || !strings.Contains(err.Error(), "clone symbols") {
		t.Fatalf("Expected clone error, got %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libs.toml")
	content := `
[[library]]
name = "kicad-symbols"
repo = "https://gitlab.com/kicad/libraries/kicad-symbols.git"
dest = "~/kicad/symbols"

[[library]]
name = "pinned"
repo = "https://example.com/pinned.git"
ref = "9.0"
dest = "~/kicad/pinned"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if len(m.Libraries) != 2 {
		t.Fatalf("Expected 2 libraries, got %d", len(m.Libraries))
	}
	if m.Libraries[1].Ref != "9.0" {
		t.Errorf("Expected ref 9.0, got %q", m.Libraries[1].Ref)
	}
}

func TestLoadManifest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libs.toml")
	content := `
[[library]]
name = "no-repo"
dest = "~/kicad/x"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "repo is required") {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	if err := m.Validate(); err != nil {
		t.Fatalf("Default manifest should validate: %v", err)
	}
	if len(m.Libraries) != 2 {
		t.Errorf("Expected symbol and footprint libraries, got %d", len(m.Libraries))
	}
}
