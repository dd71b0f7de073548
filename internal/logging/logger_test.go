package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf})

	logger.Info("hello", Skill("api-design"))

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "skill=api-design") {
		t.Errorf("Unexpected log output: %q", out)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, JSON: true})

	logger.Info("hello", Path("/tmp/x"))

	out := buf.String()
	if !strings.Contains(out, `"path":"/tmp/x"`) {
		t.Errorf("Expected JSON output, got %q", out)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info should be filtered at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("Warn should pass at warn level")
	}
}

func TestErr(t *testing.T) {
	if attr := Err(nil); attr.Key != "" {
		t.Errorf("Err(nil) should produce an empty attribute, got %v", attr)
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New(Options{Level: LevelDebug, Output: &buf}))

	done := Timer("install")
	done()

	out := buf.String()
	if !strings.Contains(out, "operation=install") || !strings.Contains(out, "duration=") {
		t.Errorf("Timer should log operation and duration: %q", out)
	}
}
