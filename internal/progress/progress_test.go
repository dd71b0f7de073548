package progress

import (
	"bytes"
	"testing"
)

func TestBar_DisabledOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	bar := New(Options{Max: 3, Description: "testing", Writer: &buf})

	// A plain buffer is not a terminal; the bar stays silent but the
	// API still works.
	if err := bar.Add(1); err != nil {
		t.Errorf("Add on disabled bar should be a no-op: %v", err)
	}
	bar.Describe("renamed")
	if err := bar.Finish(); err != nil {
		t.Errorf("Finish on disabled bar should be a no-op: %v", err)
	}
}

func TestSimple(t *testing.T) {
	bar := Simple(5, "install")
	if bar == nil {
		t.Fatal("Simple returned nil")
	}
	_ = bar.Finish()
}
