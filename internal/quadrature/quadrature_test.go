package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xSinX(x float64) float64 { return math.Sin(x) * x }

func TestIntegratePolynomialIsExactInOneRegion(t *testing.T) {
	res, err := Integrate(func(x float64) float64 { return x * x * x }, 0, 1, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.Equal(t, 1, res.Regions)
	assert.Equal(t, 15, res.Evaluations)
	assert.InDelta(t, 0.25, res.Value, 1e-15)
}

func TestIntegrateXSinX(t *testing.T) {
	ref := 2 * (math.Sin(50) - 50*math.Cos(50))

	res, err := Integrate(xSinX, -50, 50, DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged())

	bound := math.Max(res.AbsErr, 1e-13*math.Abs(ref))
	assert.LessOrEqual(t, math.Abs(res.Value-ref), bound)
	assert.LessOrEqual(t, res.AbsErr, 1e-13*math.Abs(res.Value))
	assert.Equal(t, res.Evaluations, 15*(2*res.Regions-1))
}

func TestIntegrateNarrowInterval(t *testing.T) {
	a, b := -1e-6, 3e-6
	res, err := Integrate(func(x float64) float64 { return 1e-5 + x*x }, a, b, DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged())

	ref := 1e-5*(b-a) + (b*b*b-a*a*a)/3
	assert.InDelta(t, 4.0000009333333e-11, res.Value, 1e-23)
	assert.InEpsilon(t, ref, res.Value, 1e-13)
}

func TestIntegrateLimitIsNonFatal(t *testing.T) {
	opts := DefaultOptions()
	opts.Limit = 1

	res, err := Integrate(xSinX, -50, 50, opts)
	require.NoError(t, err)
	assert.False(t, res.Converged())
	assert.ErrorIs(t, res.Warning, ErrLimit)
	assert.Equal(t, 1, res.Regions)
	assert.Greater(t, res.AbsErr, 1.0)
}

func TestIntegrateRoundoffOnUnresolvableJump(t *testing.T) {
	step := func(x float64) float64 {
		if x < 1.0/3 {
			return 0
		}
		return 1
	}
	opts := DefaultOptions()
	opts.RelTol = 1e-17

	res, err := Integrate(step, 0, 1, opts)
	require.NoError(t, err)
	assert.ErrorIs(t, res.Warning, ErrRoundoff)
	assert.InDelta(t, 2.0/3, res.Value, 1e-12)
	assert.Less(t, res.Regions, opts.Limit)
}

func TestIntegrateBreakpointsResolveJump(t *testing.T) {
	step := func(x float64) float64 {
		if x < 0.5 {
			return 0
		}
		return 1
	}
	opts := DefaultOptions()
	opts.Breakpoints = []float64{0.5, -3, 0.5, 7}

	res, err := Integrate(step, 0, 1, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.Equal(t, 2, res.Regions)
	assert.InDelta(t, 0.5, res.Value, 1e-15)
}

func TestIntegrateMaxWidth(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxWidth = 3

	res, err := Integrate(func(float64) float64 { return 1 }, 0, 10, opts)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Regions)
	assert.Equal(t, 60, res.Evaluations)
	assert.InDelta(t, 10, res.Value, 1e-13)
}

func TestIntegrateDegenerateInterval(t *testing.T) {
	res, err := Integrate(xSinX, 2, 2, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.Zero(t, res.Value)
	assert.Zero(t, res.AbsErr)
}

func TestIntegrateFatalErrors(t *testing.T) {
	nan := func(x float64) float64 { return math.Log(x) }

	tests := []struct {
		name string
		f    func(float64) float64
		a, b float64
		opts func(*Options)
		want error
	}{
		{name: "reversed interval", f: xSinX, a: 1, b: 0, want: ErrInterval},
		{name: "infinite bound", f: xSinX, a: 0, b: math.Inf(1), want: ErrInterval},
		{name: "nan bound", f: xSinX, a: math.NaN(), b: 1, want: ErrInterval},
		{name: "nan integrand", f: nan, a: -2, b: -1, want: ErrNonFinite},
		{name: "negative tolerance", f: xSinX, a: 0, b: 1, opts: func(o *Options) { o.RelTol = -1 }, want: ErrTolerance},
		{name: "zero tolerances", f: xSinX, a: 0, b: 1, opts: func(o *Options) { o.RelTol = 0 }, want: ErrTolerance},
		{name: "zero limit", f: xSinX, a: 0, b: 1, opts: func(o *Options) { o.Limit = 0 }, want: ErrTolerance},
		{name: "too many initial segments", f: xSinX, a: 0, b: 1, opts: func(o *Options) { o.MaxWidth = 1e-9 }, want: ErrTolerance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := Integrate(tt.f, tt.a, tt.b, opts)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegionHeapPopsLargestError(t *testing.T) {
	var h regionHeap
	for _, e := range []float64{0.1, 5, 0.3, 2} {
		h.push(region{err: e})
	}
	assert.Equal(t, 5.0, h.top().err)

	var got []float64
	for h.Len() > 0 {
		got = append(got, h.pop().err)
	}
	assert.Equal(t, []float64{5, 2, 0.3, 0.1}, got)
}
