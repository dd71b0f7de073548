package schematic

import (
	"math"
	"sort"
	"strings"
)

// Layout constants, in millimeters. KiCad uses a 2.54mm (100 mil) grid;
// everything placed off-grid makes wire hookup miserable in the editor.
const (
	GridSpacing       = 2.54
	ComponentSpacingX = 40.0
	ComponentSpacingY = 10.0

	sheetOriginX = 50.8
	sheetOriginY = 50.8
)

// SnapToGrid rounds a coordinate to the nearest grid point.
func SnapToGrid(v float64) float64 {
	return math.Round(v/GridSpacing) * GridSpacing
}

// Layout assigns a sheet position to every component. Manual positions
// are kept (snapped to grid); the rest are auto-placed in three columns:
// MCUs and modules on the left, passives in a grid in the middle,
// everything else on the right.
func Layout(def *Definition) map[string]Position {
	positions := make(map[string]Position, len(def.Components))

	var mcus, passives, others []string
	for _, ref := range def.sortedRefs() {
		c := def.Components[ref]
		if c.Position != nil {
			positions[ref] = Position{
				X: SnapToGrid(c.Position.X),
				Y: SnapToGrid(c.Position.Y),
			}
			continue
		}
		switch classify(c.LibID) {
		case classMCU:
			mcus = append(mcus, ref)
		case classPassive:
			passives = append(passives, ref)
		default:
			others = append(others, ref)
		}
	}

	for i, ref := range mcus {
		positions[ref] = Position{
			X: SnapToGrid(sheetOriginX),
			Y: SnapToGrid(sheetOriginY + float64(i)*ComponentSpacingY*4),
		}
	}

	// Passives pack into a four column grid between the MCUs and the
	// remaining parts.
	const passiveCols = 4
	for i, ref := range passives {
		col := i % passiveCols
		row := i / passiveCols
		positions[ref] = Position{
			X: SnapToGrid(sheetOriginX + ComponentSpacingX + float64(col)*ComponentSpacingX/2),
			Y: SnapToGrid(sheetOriginY + float64(row)*ComponentSpacingY),
		}
	}

	for i, ref := range others {
		positions[ref] = Position{
			X: SnapToGrid(sheetOriginX + ComponentSpacingX*3),
			Y: SnapToGrid(sheetOriginY + float64(i)*ComponentSpacingY*2),
		}
	}

	return positions
}

type componentClass int

const (
	classOther componentClass = iota
	classMCU
	classPassive
)

// classify buckets a component by the library segment of its lib_id.
func classify(libID string) componentClass {
	lib, symbol, _ := strings.Cut(libID, ":")
	upper := strings.ToUpper(lib)
	if strings.Contains(upper, "MCU") || strings.Contains(upper, "MODULE") {
		return classMCU
	}
	if lib == "Device" {
		for _, prefix := range []string{"R", "C", "L"} {
			if strings.HasPrefix(symbol, prefix) {
				return classPassive
			}
		}
	}
	return classOther
}

// pinAnchor approximates where a pin attaches to a placed symbol. The
// exact geometry lives in the symbol library, which is not loaded here;
// pins are spread down the right edge in pin number order so wires land
// near the body and stay on grid.
func pinAnchor(pos Position, pinIndex int) Position {
	return Position{
		X: SnapToGrid(pos.X + 3*GridSpacing),
		Y: SnapToGrid(pos.Y + float64(pinIndex)*GridSpacing),
	}
}

// pinIndexes builds a deterministic pin ordering per component from
// every pin number the definition references.
func pinIndexes(def *Definition) map[string]map[string]int {
	seen := make(map[string]map[string]bool)
	note := func(pinRef string) {
		ref, pin, err := def.ResolvePin(pinRef)
		if err != nil {
			return
		}
		if seen[ref] == nil {
			seen[ref] = make(map[string]bool)
		}
		seen[ref][pin] = true
	}

	for _, conn := range def.Connections {
		note(conn.From)
		note(conn.To)
	}
	for _, net := range def.PowerNets {
		for _, pin := range net.Pins {
			note(pin)
		}
	}

	indexes := make(map[string]map[string]int, len(seen))
	for ref, pins := range seen {
		ordered := make([]string, 0, len(pins))
		for pin := range pins {
			ordered = append(ordered, pin)
		}
		sort.Strings(ordered)
		indexes[ref] = make(map[string]int, len(ordered))
		for i, pin := range ordered {
			indexes[ref][pin] = i
		}
	}
	return indexes
}
