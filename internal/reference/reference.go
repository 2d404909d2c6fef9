/*
PURPOSE:
  Independent reference values for the test integrals, used to audit the
  adaptive quadrature results.

REQUIREMENTS:
  User-specified:
  - |estimate - reference| <= max(error_bound, epsrel*|reference|).

  Implementation-discovered:
  - f1 and f3 are only piecewise smooth; integrate them exactly between their
    discontinuities rather than through them.
  - f1's sine term has no elementary antiderivative; a fine composite
    Gauss-Legendre rule is accurate far beyond the audited tolerance.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli (check), tests.
  - Uses: internal/integrand for breakpoints and the floored modulo.

ERROR HANDLING:
  - Returns an error for unknown integrands or out-of-domain intervals.

IMPLEMENTATION RULES:
  - Closed forms are evaluated in math/big at prec bits, then rounded once.

USAGE:
  ref, err := reference.Value("f3", 474564, 474599)
*/

package reference

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/daryltucker/quad-runner/internal/integrand"
)

const prec = 256

// legendrePoints is the per-panel order of the composite Gauss-Legendre rule,
// panelWidth the widest panel it is applied to.
const (
	legendrePoints = 20
	panelWidth     = 2.0
)

// Value returns the reference integral of the named integrand over [a, b].
func Value(name string, a, b float64) (float64, error) {
	if a > b {
		return 0, fmt.Errorf("reference %s: lower bound %g exceeds upper bound %g", name, a, b)
	}
	switch name {
	case "f1":
		return F1(a, b)
	case "f2":
		return F2(a, b), nil
	case "f3":
		return F3(a, b), nil
	case "f4":
		return F4(a, b), nil
	}
	return 0, fmt.Errorf("no reference value for integrand %q", name)
}

// Within reports whether est lies within max(errBound, epsrel*|ref|) of ref.
func Within(ref, est, errBound, epsrel float64) bool {
	return math.Abs(est-ref) <= math.Max(errBound, epsrel*math.Abs(ref))
}

func newFloat(x float64) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

func toFloat64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// cube returns x^3 at prec bits.
func cube(x *big.Float) *big.Float {
	c := new(big.Float).SetPrec(prec).Mul(x, x)
	return c.Mul(c, x)
}

// segments splits [a, b] at the given interior points.
func segments(a, b float64, breaks []float64) [][2]float64 {
	edges := append(append([]float64{a}, breaks...), b)
	out := make([][2]float64, 0, len(edges)-1)
	for i := 0; i+1 < len(edges); i++ {
		out = append(out, [2]float64{edges[i], edges[i+1]})
	}
	return out
}

// offsetWithin returns lo and hi measured from the start of the period that
// contains the segment midpoint, so a segment ending on a period boundary
// ends at period rather than at 0.
func offsetWithin(lo, hi, period float64) (rlo, rhi *big.Float) {
	mid := 0.5 * (lo + hi)
	start := newFloat(math.Floor(mid/period) * period)
	rlo = new(big.Float).SetPrec(prec).Sub(newFloat(lo), start)
	rhi = new(big.Float).SetPrec(prec).Sub(newFloat(hi), start)
	return rlo, rhi
}

// F1 integrates ((x mod 1234)/100)^2 + sqrt(x)*0.2 + sin((x/58)*exp(-x/2000))*30.
func F1(a, b float64) (float64, error) {
	if a < 0 {
		return 0, fmt.Errorf("reference f1: sqrt(x) undefined below 0, lower bound is %g", a)
	}

	// Quadratic term, one 1234-period at a time: (r_hi^3 - r_lo^3) / 3e4.
	poly := new(big.Float).SetPrec(prec)
	for _, seg := range segments(a, b, integrand.Periodic(a, b, 1234)) {
		rlo, rhi := offsetWithin(seg[0], seg[1], 1234)
		d := new(big.Float).SetPrec(prec).Sub(cube(rhi), cube(rlo))
		d.Quo(d, newFloat(3e4))
		poly.Add(poly, d)
	}

	// Root term: 0.2 * 2/3 * (b^1.5 - a^1.5).
	ba, bb := newFloat(a), newFloat(b)
	pa := new(big.Float).SetPrec(prec).Mul(ba, new(big.Float).SetPrec(prec).Sqrt(ba))
	pb := new(big.Float).SetPrec(prec).Mul(bb, new(big.Float).SetPrec(prec).Sqrt(bb))
	root := new(big.Float).SetPrec(prec).Sub(pb, pa)
	root.Mul(root, newFloat(0.2))
	root.Mul(root, newFloat(2))
	root.Quo(root, newFloat(3))

	total := new(big.Float).SetPrec(prec).Add(poly, root)
	return toFloat64(total) + sineTerm(a, b), nil
}

// sineTerm integrates sin((x/58)*exp(-x/2000))*30 with composite Gauss-Legendre.
func sineTerm(a, b float64) float64 {
	g := func(x float64) float64 {
		return math.Sin(x/58*math.Exp(-x/2000)) * 30
	}
	panels := int(math.Ceil((b - a) / panelWidth))
	if panels < 1 {
		panels = 1
	}
	width := (b - a) / float64(panels)

	parts := make([]float64, panels)
	for i := range parts {
		lo := a + float64(i)*width
		hi := lo + width
		if i == panels-1 {
			hi = b
		}
		parts[i] = quad.Fixed(g, lo, hi, legendrePoints, quad.Legendre{}, 0)
	}
	return neumaierSum(parts)
}

// F2 integrates 1e-5 + x^2 in closed form.
func F2(a, b float64) float64 {
	ba, bb := newFloat(a), newFloat(b)
	lin := new(big.Float).SetPrec(prec).Sub(bb, ba)
	lin.Mul(lin, newFloat(1e-5))
	cub := new(big.Float).SetPrec(prec).Sub(cube(bb), cube(ba))
	cub.Quo(cub, newFloat(3))
	return toFloat64(lin.Add(lin, cub))
}

// F3 integrates 1/(1 + (x mod 12)) + floor((x mod 23)/5)*0.3 piecewise: on each
// smooth piece the first term is log(1+r_hi) - log(1+r_lo) and the second is constant.
func F3(a, b float64) float64 {
	breaks := integrand.Defaults()[2].Breaks(a, b)
	one := newFloat(1)

	total := new(big.Float).SetPrec(prec)
	for _, seg := range segments(a, b, breaks) {
		lo, hi := seg[0], seg[1]
		if lo == hi {
			continue
		}
		rlo, rhi := offsetWithin(lo, hi, 12)
		llo := bigfloat.Log(new(big.Float).SetPrec(prec).Add(one, rlo))
		lhi := bigfloat.Log(new(big.Float).SetPrec(prec).Add(one, rhi))
		total.Add(total, lhi.Sub(lhi, llo))

		mid := 0.5 * (lo + hi)
		step := newFloat(math.Floor(integrand.Mod(mid, 23)/5) * 0.3)
		width := new(big.Float).SetPrec(prec).Sub(newFloat(hi), newFloat(lo))
		total.Add(total, step.Mul(step, width))
	}
	return toFloat64(total)
}

// F4 integrates sin(x)*x using its antiderivative sin(x) - x*cos(x).
func F4(a, b float64) float64 {
	anti := func(x float64) float64 { return math.Sin(x) - x*math.Cos(x) }
	return anti(b) - anti(a)
}

// neumaierSum is compensated summation, used for the many small panel sums.
func neumaierSum(xs []float64) float64 {
	var sum, c float64
	for _, x := range xs {
		t := sum + x
		if math.Abs(sum) >= math.Abs(x) {
			c += (sum - t) + x
		} else {
			c += (x - t) + sum
		}
		sum = t
	}
	return sum + c
}
