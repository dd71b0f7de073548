package schematic

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// node is one S-expression in a KiCad schematic document.
type node struct {
	name     string
	atoms    []string
	children []*node
}

func sexp(name string, atoms ...string) *node {
	return &node{name: name, atoms: atoms}
}

func (n *node) add(children ...*node) *node {
	n.children = append(n.children, children...)
	return n
}

// quoted wraps a string atom in KiCad's double-quote form.
func quoted(s string) string {
	return strconv.Quote(s)
}

// num formats a coordinate the way KiCad writes them.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String renders the document with KiCad-style tab indentation.
func (n *node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	b.WriteByte('\n')
	return b.String()
}

func (n *node) write(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
	b.WriteByte('(')
	b.WriteString(n.name)
	for _, atom := range n.atoms {
		b.WriteByte(' ')
		b.WriteString(atom)
	}
	if len(n.children) == 0 {
		b.WriteByte(')')
		return
	}
	for _, child := range n.children {
		b.WriteByte('\n')
		child.write(b, depth+1)
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
	b.WriteByte(')')
}

func uuidNode() *node {
	return sexp("uuid", quoted(uuid.NewString()))
}

func atNode(p Position) *node {
	return sexp("at", num(p.X), num(p.Y), "0")
}

// buildDocument assembles the full kicad_sch tree: header, one symbol
// per component, manhattan-routed wires per connection, and a net label
// per power net pin.
func buildDocument(def *Definition, positions map[string]Position) *node {
	doc := sexp("kicad_sch").add(
		sexp("version", "20250114"),
		sexp("generator", quoted("skillkit")),
		sexp("generator_version", quoted("9.0")),
		uuidNode(),
		sexp("paper", quoted("A4")),
	)
	if def.Title != "" {
		doc.add(sexp("title_block").add(sexp("title", quoted(def.Title))))
	}

	for _, ref := range def.sortedRefs() {
		doc.add(symbolNode(ref, def.Components[ref], positions[ref]))
	}

	indexes := pinIndexes(def)
	anchor := func(pinRef string) (Position, bool) {
		ref, pin, err := def.ResolvePin(pinRef)
		if err != nil {
			return Position{}, false
		}
		pos, ok := positions[ref]
		if !ok {
			return Position{}, false
		}
		return pinAnchor(pos, indexes[ref][pin]), true
	}

	for _, conn := range def.Connections {
		from, okFrom := anchor(conn.From)
		to, okTo := anchor(conn.To)
		if !okFrom || !okTo {
			continue
		}
		for _, w := range routeWires(from, to) {
			doc.add(w)
		}
	}

	for _, net := range def.PowerNets {
		for _, pinRef := range net.Pins {
			pos, ok := anchor(pinRef)
			if !ok {
				continue
			}
			doc.add(labelNode(net.Net, pos))
		}
	}

	doc.add(sexp("sheet_instances").add(
		sexp("path", quoted("/")).add(sexp("page", quoted("1"))),
	))
	return doc
}

func symbolNode(ref string, c Component, pos Position) *node {
	sym := sexp("symbol").add(
		sexp("lib_id", quoted(c.LibID)),
		atNode(pos),
		sexp("unit", "1"),
		sexp("in_bom", "yes"),
		sexp("on_board", "yes"),
		uuidNode(),
		propertyNode("Reference", ref, Position{X: pos.X, Y: pos.Y - 2*GridSpacing}),
	)
	value := c.Value
	if value == "" {
		value = ref
	}
	sym.add(propertyNode("Value", value, Position{X: pos.X, Y: pos.Y + 2*GridSpacing}))
	if c.Footprint != "" {
		sym.add(propertyNode("Footprint", c.Footprint, Position{X: pos.X, Y: pos.Y + 4*GridSpacing}))
	}
	return sym
}

func propertyNode(name, value string, pos Position) *node {
	return sexp("property", quoted(name), quoted(value)).add(
		atNode(pos),
		sexp("effects").add(sexp("font").add(sexp("size", "1.27", "1.27"))),
	)
}

func wireNode(a, b Position) *node {
	return sexp("wire").add(
		sexp("pts").add(
			sexp("xy", num(a.X), num(a.Y)),
			sexp("xy", num(b.X), num(b.Y)),
		),
		sexp("stroke").add(sexp("width", "0"), sexp("type", "default")),
		uuidNode(),
	)
}

// routeWires produces the wire segments for a connection: a horizontal
// run to the midpoint, a vertical run, then horizontal to the target.
// Zero length segments are dropped.
func routeWires(from, to Position) []*node {
	mid := SnapToGrid((from.X + to.X) / 2)
	points := []Position{
		from,
		{X: mid, Y: from.Y},
		{X: mid, Y: to.Y},
		to,
	}

	var wires []*node
	for i := 0; i < len(points)-1; i++ {
		if points[i] == points[i+1] {
			continue
		}
		wires = append(wires, wireNode(points[i], points[i+1]))
	}
	return wires
}

func labelNode(name string, pos Position) *node {
	return sexp("label", quoted(name)).add(
		atNode(pos),
		sexp("effects").add(
			sexp("font").add(sexp("size", "1.27", "1.27")),
			sexp("justify", "left", "bottom"),
		),
		uuidNode(),
	)
}
