/*
PURPOSE:
  Globally adaptive Gauss-Kronrod (G7K15) integration of a real function over a
  finite interval.

REQUIREMENTS:
  User-specified:
  - Relative and absolute error targets, plus a subdivision budget.
  - Non-convergence is not an abort: return the best estimate and its error bound.

  Implementation-discovered:
  - Known discontinuities are best handled by seeding the initial partition
    with them (QAGP-style breakpoints).
  - Bisection has to stop once a region is narrower than the float spacing
    around it.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, internal/cli (check)

ERROR HANDLING:
  - Fatal (returned as error): reversed interval, non-finite bounds, non-finite
    function values, invalid options.
  - Non-fatal (Result.Warning): ErrLimit, ErrRoundoff.

IMPLEMENTATION RULES:
  - Single-threaded and reentrant. No package state beyond constant rule tables.

USAGE:
  res, err := quadrature.Integrate(f, a, b, quadrature.DefaultOptions())
*/

package quadrature

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrLimit means the subdivision budget ran out before the tolerance was met.
	ErrLimit = errors.New("quadrature: subdivision limit reached before tolerance was met")
	// ErrRoundoff means the worst region became narrower than the float spacing around it.
	ErrRoundoff = errors.New("quadrature: integration step is smaller than spacing between numbers")

	ErrInterval  = errors.New("quadrature: invalid interval")
	ErrNonFinite = errors.New("quadrature: non-finite integrand value")
	ErrTolerance = errors.New("quadrature: invalid tolerance")
)

// minRelWidth bounds how finely a region may be bisected relative to its magnitude.
const minRelWidth = 1e-14

// Options controls termination of Integrate.
type Options struct {
	// AbsTol and RelTol: iteration stops once err <= max(AbsTol, RelTol*|I|).
	AbsTol float64
	RelTol float64

	// Limit is the maximum number of subintervals.
	Limit int

	// MaxWidth, when positive, pre-splits each initial segment into equal
	// pieces no wider than MaxWidth.
	MaxWidth float64

	// Breakpoints are known discontinuities. Points outside (a, b) are ignored.
	Breakpoints []float64
}

// DefaultOptions returns RelTol 1e-13, AbsTol 0 and a 10000 subinterval budget.
func DefaultOptions() Options {
	return Options{
		AbsTol: 0,
		RelTol: 1e-13,
		Limit:  10000,
	}
}

// Validate reports whether the options can drive an integration.
func (o Options) Validate() error {
	if o.AbsTol < 0 || o.RelTol < 0 || math.IsNaN(o.AbsTol) || math.IsNaN(o.RelTol) {
		return fmt.Errorf("%w: tolerances must be non-negative (abs=%g, rel=%g)", ErrTolerance, o.AbsTol, o.RelTol)
	}
	if o.AbsTol == 0 && o.RelTol == 0 {
		return fmt.Errorf("%w: at least one of abs and rel tolerance must be positive", ErrTolerance)
	}
	if o.Limit < 1 {
		return fmt.Errorf("%w: limit must be at least 1, got %d", ErrTolerance, o.Limit)
	}
	if o.MaxWidth < 0 {
		return fmt.Errorf("%w: max width must be non-negative, got %g", ErrTolerance, o.MaxWidth)
	}
	return nil
}

// Result is an integral estimate with its error bound.
type Result struct {
	Value       float64
	AbsErr      float64
	Regions     int
	Evaluations int

	// Warning is nil on convergence, otherwise ErrLimit or ErrRoundoff.
	Warning error
}

// Converged reports whether the tolerance was met.
func (r Result) Converged() bool { return r.Warning == nil }

// Integrate estimates the integral of f over [a, b].
func Integrate(f func(float64) float64, a, b float64, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if !finite(a) || !finite(b) {
		return Result{}, fmt.Errorf("%w: bounds must be finite, got [%g, %g]", ErrInterval, a, b)
	}
	if a > b {
		return Result{}, fmt.Errorf("%w: lower bound %g exceeds upper bound %g", ErrInterval, a, b)
	}
	if a == b {
		return Result{Regions: 0}, nil
	}

	segments, err := partition(a, b, opts.Breakpoints, opts.MaxWidth, opts.Limit)
	if err != nil {
		return Result{}, err
	}

	regions := make(regionHeap, 0, len(segments)+1)
	evals := 0
	var integral, errSum float64

	for i := 0; i+1 < len(segments); i++ {
		r, err := gk15(f, segments[i], segments[i+1])
		if err != nil {
			return Result{}, err
		}
		evals += pointsPerRule
		regions.push(r)
		integral += r.integral
		errSum += r.err
	}

	var warning error
	for errSum > math.Max(opts.AbsTol, opts.RelTol*math.Abs(integral)) {
		if regions.Len() >= opts.Limit {
			warning = ErrLimit
			break
		}

		worst := regions.top()
		if worst.b-worst.a < math.Max(math.Abs(worst.a), math.Abs(worst.b))*minRelWidth {
			warning = ErrRoundoff
			break
		}
		regions.pop()

		mid := 0.5 * (worst.a + worst.b)
		r1, err := gk15(f, worst.a, mid)
		if err != nil {
			return Result{}, err
		}
		r2, err := gk15(f, mid, worst.b)
		if err != nil {
			return Result{}, err
		}
		evals += 2 * pointsPerRule
		regions.push(r1)
		regions.push(r2)

		integral += r1.integral + r2.integral - worst.integral
		errSum += r1.err + r2.err - worst.err
	}

	// Re-sum from the surviving regions to shed the running-update rounding.
	values := make([]float64, len(regions))
	errs := make([]float64, len(regions))
	for i, r := range regions {
		values[i] = r.integral
		errs[i] = r.err
	}

	return Result{
		Value:       floats.Sum(values),
		AbsErr:      floats.Sum(errs),
		Regions:     len(regions),
		Evaluations: evals,
		Warning:     warning,
	}, nil
}

// partition returns the sorted initial segment edges for [a, b]. It fails when
// the initial segments alone would exceed limit.
func partition(a, b float64, breakpoints []float64, maxWidth float64, limit int) ([]float64, error) {
	edges := []float64{a}
	inner := make([]float64, 0, len(breakpoints))
	for _, p := range breakpoints {
		if p > a && p < b {
			inner = append(inner, p)
		}
	}
	sort.Float64s(inner)
	for _, p := range inner {
		if p != edges[len(edges)-1] {
			edges = append(edges, p)
		}
	}
	edges = append(edges, b)

	if maxWidth > 0 && (b-a)/maxWidth > float64(limit) {
		return nil, fmt.Errorf("%w: max width %g needs more than %d initial segments", ErrTolerance, maxWidth, limit)
	}
	if maxWidth <= 0 {
		return checkSegments(edges, limit)
	}

	split := []float64{a}
	for i := 0; i+1 < len(edges); i++ {
		lo, hi := edges[i], edges[i+1]
		n := int(math.Ceil((hi - lo) / maxWidth))
		if n < 1 {
			n = 1
		}
		step := (hi - lo) / float64(n)
		for k := 1; k < n; k++ {
			split = append(split, lo+float64(k)*step)
		}
		split = append(split, hi)
	}
	return checkSegments(split, limit)
}

func checkSegments(edges []float64, limit int) ([]float64, error) {
	if n := len(edges) - 1; n > limit {
		return nil, fmt.Errorf("%w: %d initial segments exceed limit %d", ErrTolerance, n, limit)
	}
	return edges, nil
}

func nonFinite(x, v float64) error {
	return fmt.Errorf("%w: f(%g) = %g", ErrNonFinite, x, v)
}
