package schematic

import (
	"math"
	"testing"
)

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{2.54, 2.54},
		{2.6, 2.54},
		{3.9, 5.08},
		{-1.3, -2.54},
	}
	for _, tt := range tests {
		got := SnapToGrid(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SnapToGrid(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		libID string
		want  componentClass
	}{
		{"MCU_Module:Arduino_Nano_v3.x", classMCU},
		{"RF_Module:ESP32-WROOM-32", classMCU},
		{"Device:R", classPassive},
		{"Device:C_Polarized", classPassive},
		{"Device:LED", classPassive},
		{"Device:D_Zener", classOther},
		{"Interface_UART:MAX3485", classOther},
		{"Connector:Conn_01x04", classOther},
	}
	for _, tt := range tests {
		if got := classify(tt.libID); got != tt.want {
			t.Errorf("classify(%q) = %v, want %v", tt.libID, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	def := sampleDefinition()
	positions := Layout(def)

	if len(positions) != len(def.Components) {
		t.Fatalf("Expected a position per component, got %d", len(positions))
	}

	mcu := positions["U1"]
	passive := positions["R1"]
	other := positions["U2"]

	if !(mcu.X < passive.X && passive.X < other.X) {
		t.Errorf("Expected MCU < passive < other column order, got %v %v %v", mcu.X, passive.X, other.X)
	}

	for ref, pos := range positions {
		if SnapToGrid(pos.X) != pos.X || SnapToGrid(pos.Y) != pos.Y {
			t.Errorf("%s placed off grid: %+v", ref, pos)
		}
	}
}

func TestLayout_ManualPosition(t *testing.T) {
	def := sampleDefinition()
	c := def.Components["R1"]
	c.Position = &Position{X: 101.0, Y: 49.9}
	def.Components["R1"] = c

	positions := Layout(def)
	got := positions["R1"]
	if got.X != SnapToGrid(101.0) || got.Y != SnapToGrid(49.9) {
		t.Errorf("Manual position should be kept (snapped), got %+v", got)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	def := sampleDefinition()
	first := Layout(def)
	for i := 0; i < 5; i++ {
		again := Layout(def)
		for ref, pos := range first {
			if again[ref] != pos {
				t.Fatalf("Layout not deterministic for %s: %+v vs %+v", ref, pos, again[ref])
			}
		}
	}
}

func TestPinIndexes(t *testing.T) {
	def := sampleDefinition()
	indexes := pinIndexes(def)

	u1 := indexes["U1"]
	if len(u1) != 4 {
		t.Fatalf("Expected 4 referenced pins on U1, got %d", len(u1))
	}
	// Sorted pin numbers "1", "2", "27", "29" yield stable indexes.
	if u1["1"] != 0 {
		t.Errorf("Expected pin 1 first, got index %d", u1["1"])
	}
	seen := make(map[int]bool)
	for _, idx := range u1 {
		if seen[idx] {
			t.Error("Pin indexes must be unique per component")
		}
		seen[idx] = true
	}
}
