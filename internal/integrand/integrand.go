/*
PURPOSE:
  Defines the test integrands evaluated by the batch runner.
  Each integrand carries its formula, its fixed interval and its known discontinuities.

REQUIREMENTS:
  User-specified:
  - Reproduce f1..f4 exactly, elementwise over real inputs.
  - Modulo follows the floored convention (non-negative for a positive divisor).

  Implementation-discovered:
  - f1 and f3 jump wherever their modulo wraps; quadrature converges far better
    when told where those jumps are.
  - Plotting needs the function sampled over evenly spaced points.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/reference, internal/plot, internal/cli

ERROR HANDLING:
  - Select returns an error for unknown names.

IMPLEMENTATION RULES:
  - Integrand functions are pure. No shared state.
  - Intervals are literal constants.

USAGE:
  cases, err := integrand.Select([]string{"f1", "f4"})

RELATED FILES:
  - internal/reference/reference.go - closed forms for the same functions.
*/

package integrand

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Func is a real scalar function of one variable.
type Func func(x float64) float64

// Integrand is a named test function paired with its integration interval.
type Integrand struct {
	Name    string
	Formula string
	Lower   float64
	Upper   float64
	Func    Func

	// Breaks returns the known discontinuities strictly inside (a, b).
	// Nil for smooth integrands.
	Breaks func(a, b float64) []float64
}

// Breakpoints returns the known discontinuities inside the integrand's own interval.
func (in Integrand) Breakpoints() []float64 {
	if in.Breaks == nil {
		return nil
	}
	return in.Breaks(in.Lower, in.Upper)
}

// Mod is the floored modulo: the result has the sign of y.
func Mod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

// F1 is a parabola periodic in 1234 plus a root trend and a decaying sine.
// It jumps at every multiple of 1234.
func F1(x float64) float64 {
	r := Mod(x, 1234) / 100
	f := r * r
	f += math.Sqrt(x) * 0.2
	f += math.Sin(x/58*math.Exp(-x/2000)) * 30
	return f
}

// F2 is 1e-5 + x^2, integrated over a tiny interval around zero.
func F2(x float64) float64 {
	return 1e-5 + x*x
}

// F3 sums a sawtooth 1/(1+x mod 12) and a staircase in x mod 23.
// Both pieces are discontinuous.
func F3(x float64) float64 {
	f := 1 / (1 + Mod(x, 12))
	f += math.Floor(Mod(x, 23)/5) * 0.3
	return f
}

// F4 is x*sin(x), smooth but oscillating.
func F4(x float64) float64 {
	return math.Sin(x) * x
}

// Periodic returns every k*period+offset that lies strictly inside (a, b), sorted.
func Periodic(a, b, period float64, offsets ...float64) []float64 {
	if len(offsets) == 0 {
		offsets = []float64{0}
	}
	var pts []float64
	for k := math.Floor(a/period) - 1; k*period <= b; k++ {
		for _, off := range offsets {
			p := k*period + off
			if p > a && p < b {
				pts = append(pts, p)
			}
		}
	}
	sort.Float64s(pts)
	return dedup(pts)
}

func dedup(pts []float64) []float64 {
	if len(pts) < 2 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

func f1Breaks(a, b float64) []float64 {
	return Periodic(a, b, 1234)
}

func f3Breaks(a, b float64) []float64 {
	pts := append(Periodic(a, b, 12), Periodic(a, b, 23, 0, 5, 10, 15, 20)...)
	sort.Float64s(pts)
	return dedup(pts)
}

// Defaults returns the four literal test integrands in their canonical order.
func Defaults() []Integrand {
	return []Integrand{
		{
			Name:    "f1",
			Formula: "((x mod 1234)/100)^2 + sqrt(x)*0.2 + sin((x/58)*exp(-x/2000))*30",
			Lower:   14.9,
			Upper:   4534.453,
			Func:    F1,
			Breaks:  f1Breaks,
		},
		{
			Name:    "f2",
			Formula: "1e-5 + x^2",
			Lower:   -1e-6,
			Upper:   3e-6,
			Func:    F2,
		},
		{
			Name:    "f3",
			Formula: "1/(1 + (x mod 12)) + floor((x mod 23)/5)*0.3",
			Lower:   474564,
			Upper:   474599,
			Func:    F3,
			Breaks:  f3Breaks,
		},
		{
			Name:    "f4",
			Formula: "sin(x)*x",
			Lower:   -50,
			Upper:   50,
			Func:    F4,
		},
	}
}

// Names lists the names of the default integrands.
func Names() []string {
	defs := Defaults()
	names := make([]string, len(defs))
	for i, in := range defs {
		names[i] = in.Name
	}
	return names
}

// Select returns the named integrands in the requested order.
// An empty list selects all of them.
func Select(names []string) ([]Integrand, error) {
	defs := Defaults()
	if len(names) == 0 {
		return defs, nil
	}

	byName := make(map[string]Integrand, len(defs))
	for _, in := range defs {
		byName[in.Name] = in
	}

	out := make([]Integrand, 0, len(names))
	for _, name := range names {
		in, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown integrand %q (known: %v)", name, Names())
		}
		out = append(out, in)
	}
	return out, nil
}

// Sample evaluates the integrand at n evenly spaced points spanning its interval,
// endpoints included.
func Sample(in Integrand, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = floats.Span(make([]float64, n), in.Lower, in.Upper)
	ys = Map(in.Func, xs)
	return xs, ys
}

// Map applies f elementwise.
func Map(f Func, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys
}
