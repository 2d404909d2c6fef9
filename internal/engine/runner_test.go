package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/quad-runner/internal/config"
	"github.com/daryltucker/quad-runner/internal/integrand"
	"github.com/daryltucker/quad-runner/internal/model"
	"github.com/daryltucker/quad-runner/internal/output"
	"github.com/daryltucker/quad-runner/internal/quadrature"
)

var elapsedLine = regexp.MustCompile(`^Elapsed (\d+) ms$`)

// fakePlotter records calls and can simulate slow or failing plots.
type fakePlotter struct {
	names []string
	delay time.Duration
	err   error
}

func (p *fakePlotter) Plot(in integrand.Integrand) (string, error) {
	time.Sleep(p.delay)
	p.names = append(p.names, in.Name)
	return in.Name + ".png", p.err
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Plot = false
	return cfg
}

func TestRunPrintsOneLinePerIntegrandThenElapsed(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Config: testConfig(), Stdout: &out}

	report, err := r.Run()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)

	for i, res := range report.Results {
		fields := strings.Fields(lines[i])
		require.Len(t, fields, 2, lines[i])

		est, err := strconv.ParseFloat(fields[0], 64)
		require.NoError(t, err)
		bound, err := strconv.ParseFloat(fields[1], 64)
		require.NoError(t, err)
		assert.Equal(t, res.Estimate, est)
		assert.Equal(t, res.ErrorBound, bound)
	}

	m := elapsedLine.FindStringSubmatch(lines[4])
	require.NotNil(t, m, lines[4])
	n, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 0)
}

func TestEvaluateKeepsInputOrderAndReportsNonConvergence(t *testing.T) {
	r := &Runner{Config: testConfig(), Stdout: &bytes.Buffer{}}
	cases, err := integrand.Select([]string{"f4", "f3", "f2", "f1"})
	require.NoError(t, err)

	report, err := r.Evaluate(cases)
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	var names []string
	for _, res := range report.Results {
		names = append(names, res.Integrand)
	}
	assert.Equal(t, []string{"f4", "f3", "f2", "f1"}, names)

	f3 := report.Results[1]
	assert.False(t, f3.Converged)
	assert.NotEmpty(t, f3.Warning)
	assert.InDelta(t, 26.5148053647, f3.Estimate, 1e-8)

	f2 := report.Results[2]
	assert.True(t, f2.Converged)
	assert.InDelta(t, 4.0000009333e-11, f2.Estimate, 1e-20)

	f4 := report.Results[0]
	ref := 2 * (math.Sin(50) - 50*math.Cos(50))
	assert.LessOrEqual(t, math.Abs(f4.Estimate-ref), math.Max(f4.ErrorBound, 1e-13*math.Abs(ref)))
}

func TestEvaluateWithBreakpointsConvergesEverywhere(t *testing.T) {
	cfg := testConfig()
	cfg.Breakpoints = true
	r := &Runner{Config: cfg, Stdout: &bytes.Buffer{}}

	report, err := r.Evaluate(integrand.Defaults())
	require.NoError(t, err)
	for _, res := range report.Results {
		assert.True(t, res.Converged, "%s: %s", res.Integrand, res.Warning)
	}
	assert.Equal(t, 3, report.Results[0].Breakpoints)
	assert.Equal(t, 9, report.Results[2].Breakpoints)
}

func TestEvaluateRepeatUsesMedian(t *testing.T) {
	cfg := testConfig()
	cfg.Repeat = 3
	r := &Runner{Config: cfg, Stdout: &bytes.Buffer{}}

	report, err := r.Evaluate(integrand.Defaults()[1:2])
	require.NoError(t, err)
	require.Len(t, report.Runs, 3)
	assert.Equal(t, Summarize(report.Runs).Median, report.Elapsed)
}

func TestFatalErrorAbortsBatch(t *testing.T) {
	bad := integrand.Integrand{
		Name:  "bad",
		Lower: 1,
		Upper: 2,
		Func:  func(float64) float64 { return math.NaN() },
	}
	r := &Runner{Config: testConfig(), Stdout: &bytes.Buffer{}}

	_, err := r.Evaluate([]integrand.Integrand{integrand.Defaults()[3], bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, quadrature.ErrNonFinite))
	assert.Contains(t, err.Error(), "bad")
}

func TestPlottingIsOutsideTimedSection(t *testing.T) {
	plotter := &fakePlotter{delay: 50 * time.Millisecond}
	cfg := testConfig()
	cfg.Integrands = []string{"f2", "f4"}
	r := &Runner{Config: cfg, Stdout: &bytes.Buffer{}, Plotter: plotter}

	report, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"f2", "f4"}, plotter.names)
	assert.Less(t, report.Elapsed, 100*time.Millisecond)
}

func TestPlotFailureDoesNotFailRun(t *testing.T) {
	plotter := &fakePlotter{err: errors.New("no display")}
	cfg := testConfig()
	cfg.Integrands = []string{"f4"}
	var out bytes.Buffer
	r := &Runner{Config: cfg, Stdout: &out, Plotter: plotter}

	_, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"f4"}, plotter.names)
	assert.Contains(t, out.String(), "Elapsed")
}

func TestRunExportsResults(t *testing.T) {
	cfg := testConfig()
	cfg.Integrands = []string{"f2", "f4"}
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	r := &Runner{Config: cfg, Stdout: &bytes.Buffer{}}

	_, err := r.Run()
	require.NoError(t, err)

	csvData, err := os.ReadFile(filepath.Join(cfg.OutputDir, "results.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csvData)), "\n"), 3)

	jsonData, err := os.ReadFile(filepath.Join(cfg.OutputDir, "results.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(jsonData)), "\n")
	require.Len(t, lines, 3)
	var summary model.Summary
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &summary))
	assert.Equal(t, "summary", summary.Record)
	assert.Equal(t, 2, summary.Integrands)
	assert.Equal(t, 2, summary.Converged)
	assert.Len(t, summary.RunsMs, 1)
}

func TestEvaluateLogsRegionsAtInfo(t *testing.T) {
	var logs bytes.Buffer
	prev := output.Logger
	output.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { output.SetLogger(prev) })

	cfg := testConfig()
	cfg.Integrands = []string{"f2", "f4"}
	r := &Runner{Config: cfg, Stdout: &bytes.Buffer{}}
	_, err := r.Run()
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(logs.String(), `msg="Integration regions"`))
	assert.Contains(t, logs.String(), "integrand=f4")
}

func TestNewWiresPlotter(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.NotNil(t, New(cfg).Plotter)

	cfg.Plot = false
	assert.Nil(t, New(cfg).Plotter)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond})
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 2*time.Millisecond, s.Median)
	assert.Equal(t, 2*time.Millisecond, s.Mean)
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Greater(t, s.StdDev, time.Duration(0))

	assert.Equal(t, Timing{}, Summarize(nil))
}
