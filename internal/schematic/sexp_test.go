package schematic

import (
	"strings"
	"testing"
)

func TestNodeString(t *testing.T) {
	n := sexp("paper", quoted("A4"))
	if got := n.String(); got != "(paper \"A4\")\n" {
		t.Errorf("Unexpected leaf rendering: %q", got)
	}

	doc := sexp("kicad_sch").add(
		sexp("version", "20250114"),
		sexp("title_block").add(sexp("title", quoted("x"))),
	)
	got := doc.String()
	want := "(kicad_sch\n\t(version 20250114)\n\t(title_block\n\t\t(title \"x\")\n\t)\n)\n"
	if got != want {
		t.Errorf("Unexpected nested rendering:\n%q\nwant:\n%q", got, want)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2.54, "2.54"},
		{50.8, "50.8"},
		{-7.62, "-7.62"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildDocument(t *testing.T) {
	def := sampleDefinition()
	doc := buildDocument(def, Layout(def)).String()

	for _, want := range []string{
		`(generator "skillkit")`,
		`(paper "A4")`,
		`(title "UART Bridge")`,
		`(lib_id "MCU_Module:Arduino_Nano_v3.x")`,
		`(property "Reference" "R1"`,
		`(property "Value" "120"`,
		"(sheet_instances",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Document missing %q", want)
		}
	}

	// Two connections and four power net pins produce wires and labels.
	if strings.Count(doc, "(wire") == 0 {
		t.Error("Expected wire segments for connections")
	}
	if got := strings.Count(doc, "(label "); got != 4 {
		t.Errorf("Expected 4 power net labels, got %d", got)
	}
}

func TestBuildDocument_ValueFallsBackToReference(t *testing.T) {
	def := &Definition{
		Components: map[string]Component{"J1": {LibID: "Connector:Conn_01x04"}},
	}
	doc := buildDocument(def, Layout(def)).String()
	if !strings.Contains(doc, `(property "Value" "J1"`) {
		t.Error("Components without a value should use the reference as value")
	}
}

func TestRouteWires(t *testing.T) {
	from := Position{X: 0, Y: 0}
	to := Position{X: 10.16, Y: 5.08}
	wires := routeWires(from, to)
	if len(wires) != 3 {
		t.Fatalf("Expected 3 segments for an offset connection, got %d", len(wires))
	}

	// A straight horizontal connection needs fewer segments.
	straight := routeWires(Position{X: 0, Y: 0}, Position{X: 10.16, Y: 0})
	if len(straight) != 2 {
		t.Errorf("Expected 2 segments for a straight run, got %d", len(straight))
	}
}
