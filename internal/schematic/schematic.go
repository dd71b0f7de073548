// Package schematic generates KiCad schematic files (.kicad_sch) from
// declarative connection definitions, along with a Markdown connection
// table and an optional SVG render via kicad-cli.
package schematic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/hwskills/skillkit/internal/logging"
)

// DefaultOutputDir is where generated files land when the filename has
// no directory component.
const DefaultOutputDir = "KiCad"

// Position is a placement on the schematic sheet, in millimeters.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Component describes one schematic symbol.
type Component struct {
	// LibID is the KiCad library identifier, e.g. "Device:R".
	LibID string `yaml:"lib_id"`
	// Value is the component value, e.g. "4.7k".
	Value string `yaml:"value,omitempty"`
	// Footprint is an optional footprint identifier.
	Footprint string `yaml:"footprint,omitempty"`
	// Pins maps pin names to pin numbers for MCUs and ICs.
	Pins map[string]string `yaml:"pins,omitempty"`
	// Position places the component manually, overriding auto-layout.
	Position *Position `yaml:"position,omitempty"`
}

// Connection is a wire between two pin references of the form "REF.PIN".
type Connection struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// PowerNet groups pins that share a power net label (VCC, GND, ...).
type PowerNet struct {
	Net  string   `yaml:"net"`
	Pins []string `yaml:"pins"`
}

// Definition is a complete schematic description, loadable from YAML.
type Definition struct {
	Title       string               `yaml:"title,omitempty"`
	Components  map[string]Component `yaml:"components"`
	Connections []Connection         `yaml:"connections,omitempty"`
	PowerNets   []PowerNet           `yaml:"power_nets,omitempty"`
}

// Load reads a schematic definition from a YAML file.
func Load(path string) (*Definition, error) {
	// #nosec G304 - path is provided by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition %q: %w", path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse definition %q: %w", path, err)
	}
	return &def, nil
}

// Validate checks the definition for structural problems: missing
// components, unparseable pin references, endpoints naming unknown
// components.
func (d *Definition) Validate() error {
	if err := validation.ValidateStruct(d,
		validation.Field(&d.Components, validation.Required.Error("at least one component is required")),
	); err != nil {
		return err
	}

	for ref, c := range d.Components {
		if err := validation.ValidateStruct(&c,
			validation.Field(&c.LibID, validation.Required),
		); err != nil {
			return fmt.Errorf("component %s: %w", ref, err)
		}
	}

	endpoint := validation.By(d.validateEndpoint)
	for i, conn := range d.Connections {
		if err := validation.ValidateStruct(&conn,
			validation.Field(&conn.From, validation.Required, endpoint),
			validation.Field(&conn.To, validation.Required, endpoint),
		); err != nil {
			return fmt.Errorf("connection %d: %w", i, err)
		}
	}

	for i, net := range d.PowerNets {
		if err := validation.ValidateStruct(&net,
			validation.Field(&net.Net, validation.Required),
			validation.Field(&net.Pins, validation.Required, validation.Each(endpoint)),
		); err != nil {
			return fmt.Errorf("power net %d: %w", i, err)
		}
	}

	return nil
}

// validateEndpoint is an ozzo rule checking a "REF.PIN" endpoint.
func (d *Definition) validateEndpoint(value any) error {
	s, _ := value.(string)
	ref, _, err := SplitPinRef(s)
	if err != nil {
		return err
	}
	if _, ok := d.Components[ref]; !ok {
		return fmt.Errorf("references unknown component %q", ref)
	}
	return nil
}

// SplitPinRef splits "U1.TX1" into ("U1", "TX1").
func SplitPinRef(pinRef string) (ref, pin string, err error) {
	parts := strings.Split(pinRef, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid pin reference %q (expected REF.PIN)", pinRef)
	}
	return parts[0], parts[1], nil
}

// ResolvePin resolves a pin reference to a (reference, pin number)
// pair. Pin names are looked up in the component's pin map; names with
// no mapping are taken as literal pin numbers.
func (d *Definition) ResolvePin(pinRef string) (ref, pinNumber string, err error) {
	ref, pin, err := SplitPinRef(pinRef)
	if err != nil {
		return "", "", err
	}
	if c, ok := d.Components[ref]; ok {
		if num, ok := c.Pins[pin]; ok {
			return ref, num, nil
		}
	}
	return ref, pin, nil
}

// sortedRefs returns component references in deterministic order.
func (d *Definition) sortedRefs() []string {
	refs := make([]string, 0, len(d.Components))
	for ref := range d.Components {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Options configures schematic generation.
type Options struct {
	// Filename is the output schematic filename. Derived from the title
	// when empty. Bare filenames land in OutputDir.
	Filename string

	// OutputDir is the directory for bare filenames. Defaults to "KiCad".
	OutputDir string

	// RenderSVG also exports an SVG via kicad-cli when available.
	RenderSVG bool

	// WriteDoc also writes a Markdown connection table.
	WriteDoc bool
}

// Output lists the files a generation run produced.
type Output struct {
	SchematicPath string
	DocPath       string
	SVGPath       string
}

// Generate validates the definition and writes the schematic file, the
// connection table, and (best effort) the SVG render.
func Generate(ctx context.Context, def *Definition, opts Options) (*Output, error) {
	defer logging.Timer("schematic")()

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schematic definition: %w", err)
	}

	filename := opts.Filename
	if filename == "" {
		filename = defaultFilename(def.Title)
	}
	schPath, err := outputPath(filename, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	positions := Layout(def)
	doc := buildDocument(def, positions)

	// #nosec G306 - schematic files should be readable
	if err := os.WriteFile(schPath, []byte(doc.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write schematic %q: %w", schPath, err)
	}

	out := &Output{SchematicPath: schPath}
	logging.Debug("wrote schematic", logging.Path(schPath))

	if opts.WriteDoc {
		docPath := strings.TrimSuffix(schPath, ".kicad_sch") + ".md"
		// #nosec G306 - documentation should be readable
		if err := os.WriteFile(docPath, []byte(ConnectionDoc(def)), 0o644); err != nil {
			return nil, fmt.Errorf("write connection table %q: %w", docPath, err)
		}
		out.DocPath = docPath
	}

	if opts.RenderSVG {
		svgPath, err := RenderSVG(ctx, schPath)
		if err != nil {
			// Rendering is optional; a missing KiCad install should
			// not fail the generation run.
			if errors.Is(err, ErrKiCadCLINotFound) {
				logging.Warn("kicad-cli not found, skipping SVG render")
			} else {
				logging.Warn("SVG render failed", logging.Err(err))
			}
		} else {
			out.SVGPath = svgPath
		}
	}

	return out, nil
}

// defaultFilename derives an output filename from the schematic title.
func defaultFilename(title string) string {
	if title == "" {
		return "schematic.kicad_sch"
	}
	name := strings.ToLower(title)
	var b strings.Builder
	lastDash := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "schematic.kicad_sch"
	}
	return slug + ".kicad_sch"
}

// outputPath resolves the output location: filenames with a directory
// component are used as-is, bare filenames land in outputDir. The
// directory is created on demand.
func outputPath(filename, outputDir string) (string, error) {
	path := filename
	if filepath.Dir(filename) == "." {
		if outputDir == "" {
			outputDir = DefaultOutputDir
		}
		path = filepath.Join(outputDir, filename)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	return path, nil
}
