/*
PURPOSE:
  Renders each integrand's curve over its interval as a line plot.

REQUIREMENTS:
  User-specified:
  - One plot per integrand, sampled at 500 evenly spaced points by default.
  - Plotting never counts toward the timed integration batch.

  Implementation-discovered:
  - A CLI has no window to block on; plots are written as PNG files
    (non-blocking display).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Uses: internal/integrand.Sample

ERROR HANDLING:
  - Returns error if the directory or image cannot be written.

USAGE:
  p := plot.New("plots", 500)
  path, err := p.Plot(in)
*/

package plot

import (
	"fmt"
	"os"
	"path/filepath"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/quad-runner/internal/integrand"
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// Renderer writes one PNG per integrand into Dir.
type Renderer struct {
	Dir     string
	Samples int
}

// New creates a Renderer.
func New(dir string, samples int) *Renderer {
	return &Renderer{Dir: dir, Samples: samples}
}

// Plot renders the integrand and returns the path of the written image.
func (r *Renderer) Plot(in integrand.Integrand) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plot directory %s: %w", r.Dir, err)
	}

	xs, ys := integrand.Sample(in, r.Samples)
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := gonumplot.New()
	p.Title.Text = fmt.Sprintf("%s(x) = %s", in.Name, in.Formula)
	p.X.Label.Text = "x"
	p.Y.Label.Text = in.Name + "(x)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build line for %s: %w", in.Name, err)
	}
	p.Add(line)

	path := filepath.Join(r.Dir, in.Name+".png")
	if err := p.Save(width, height, path); err != nil {
		return "", fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return path, nil
}
