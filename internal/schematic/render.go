package schematic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hwskills/skillkit/internal/logging"
)

// ErrKiCadCLINotFound reports that kicad-cli is not on PATH. Callers
// treat this as "rendering unavailable", not a failure.
var ErrKiCadCLINotFound = errors.New("kicad-cli not found on PATH")

// renderTimeout bounds a single kicad-cli invocation. Exports of small
// schematics finish in a second or two; anything longer is wedged.
const renderTimeout = 30 * time.Second

// RenderSVG exports the schematic to SVG next to the .kicad_sch file
// and returns the SVG path.
func RenderSVG(ctx context.Context, schPath string) (string, error) {
	bin, err := exec.LookPath("kicad-cli")
	if err != nil {
		return "", ErrKiCadCLINotFound
	}

	outDir := filepath.Dir(schPath)
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	var stderr bytes.Buffer
	// #nosec G204 - bin comes from LookPath, schPath from our own output
	cmd := exec.CommandContext(ctx, bin, "sch", "export", "svg",
		"--output", outDir,
		"--no-background-color",
		schPath,
	)
	cmd.Stderr = &stderr

	logging.Debug("rendering schematic",
		logging.Command("kicad-cli sch export svg"),
		logging.Path(schPath),
	)
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("kicad-cli timed out after %s", renderTimeout)
		}
		return "", fmt.Errorf("kicad-cli: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	base := strings.TrimSuffix(filepath.Base(schPath), ".kicad_sch")
	svgPath := filepath.Join(outDir, base+".svg")
	if _, err := os.Stat(svgPath); err == nil {
		return svgPath, nil
	}

	// Some kicad-cli versions write into a per-sheet subdirectory.
	// Move the file up so callers get a stable location.
	nested := filepath.Join(outDir, base, base+".svg")
	if _, err := os.Stat(nested); err == nil {
		if err := os.Rename(nested, svgPath); err == nil {
			_ = os.Remove(filepath.Join(outDir, base))
			return svgPath, nil
		}
		return nested, nil
	}

	return "", fmt.Errorf("kicad-cli reported success but no SVG found at %q", svgPath)
}
