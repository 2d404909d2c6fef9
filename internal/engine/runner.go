/*
PURPOSE:
  High-level runner that orchestrates the integration batch.
  Loops through integrands, integrates each, times the batch, then reports and plots.

REQUIREMENTS:
  User-specified:
  - Integrate every (integrand, interval) pair in input order.
  - Print one "estimate error_bound" line per integrand, then "Elapsed <N> ms".
  - Elapsed covers the integration calls only, never plotting.
  - Non-convergence is a warning; the batch still reports every integrand.

  Implementation-discovered:
  - Repeating the batch gives stable timings (median reported).
  - Result files are optional and written after the timed section.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/quadrature, internal/output, internal/plot

ERROR HANDLING:
  - Fatal quadrature errors abort the batch.
  - Plot and file-writer failures are logged and the run continues (resilience).

IMPLEMENTATION RULES:
  - Single-threaded. Evaluate -> Print -> Export -> Plot.

USAGE:
  engine.Run(cfg)

RELATED FILES:
  - internal/engine/timing.go
*/

package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/daryltucker/quad-runner/internal/config"
	"github.com/daryltucker/quad-runner/internal/integrand"
	"github.com/daryltucker/quad-runner/internal/model"
	"github.com/daryltucker/quad-runner/internal/output"
	"github.com/daryltucker/quad-runner/internal/plot"
	"github.com/daryltucker/quad-runner/internal/quadrature"
)

// Plotter renders one integrand's curve.
type Plotter interface {
	Plot(in integrand.Integrand) (string, error)
}

// Runner evaluates a batch of integrands.
type Runner struct {
	Config  *config.Config
	Stdout  io.Writer
	Plotter Plotter // nil disables plotting
}

// New creates a Runner writing results to stdout.
func New(cfg *config.Config) *Runner {
	r := &Runner{
		Config: cfg,
		Stdout: os.Stdout,
	}
	if cfg.Plot {
		r.Plotter = plot.New(cfg.PlotDir, cfg.Samples)
	}
	return r
}

// Run executes the configured batch with default wiring.
func Run(cfg *config.Config) error {
	_, err := New(cfg).Run()
	return err
}

// Run evaluates, prints, exports and plots the configured integrands.
func (r *Runner) Run() (model.Report, error) {
	cases, err := integrand.Select(r.Config.Integrands)
	if err != nil {
		return model.Report{}, err
	}

	report, err := r.Evaluate(cases)
	if err != nil {
		return report, err
	}

	if err := output.WriteText(r.Stdout, report); err != nil {
		return report, fmt.Errorf("failed to write results: %w", err)
	}

	if r.Config.OutputDir != "" {
		if err := r.export(report); err != nil {
			return report, err
		}
	}

	r.plot(cases)
	return report, nil
}

// Evaluate integrates every case, repeating the batch Config.Repeat times.
// Only the integration calls are inside the timed section.
func (r *Runner) Evaluate(cases []integrand.Integrand) (model.Report, error) {
	repeat := r.Config.Repeat
	if repeat < 1 {
		repeat = 1
	}

	var report model.Report
	for run := 0; run < repeat; run++ {
		results, elapsed, err := r.batch(cases)
		if err != nil {
			return model.Report{}, err
		}
		report.Runs = append(report.Runs, elapsed)
		report.Results = results
	}

	report.Elapsed = report.Runs[0]
	if repeat > 1 {
		summary := Summarize(report.Runs)
		report.Elapsed = summary.Median
		summary.Log(len(cases))
	}

	for _, res := range report.Results {
		output.Logger.Info("Integration regions",
			"integrand", res.Integrand,
			"regions", res.Regions,
			"evaluations", res.Evaluations,
			"breakpoints", res.Breakpoints,
		)
		if !res.Converged {
			output.Logger.Warn("Integration did not converge",
				"integrand", res.Integrand,
				"reason", res.Warning,
				"estimate", res.Estimate,
				"error_bound", res.ErrorBound,
			)
		}
	}
	return report, nil
}

// batch runs each case once and returns the results with the batch time.
func (r *Runner) batch(cases []integrand.Integrand) ([]model.Result, time.Duration, error) {
	results := make([]model.Result, 0, len(cases))
	var elapsed time.Duration

	for _, in := range cases {
		opts := r.Config.Options()
		if r.Config.Breakpoints {
			opts.Breakpoints = in.Breakpoints()
		}

		start := time.Now()
		res, err := quadrature.Integrate(in.Func, in.Lower, in.Upper, opts)
		took := time.Since(start)
		elapsed += took

		if err != nil {
			return nil, elapsed, fmt.Errorf("integrate %s over [%g, %g]: %w", in.Name, in.Lower, in.Upper, err)
		}

		out := model.Result{
			Integrand:   in.Name,
			Lower:       in.Lower,
			Upper:       in.Upper,
			Estimate:    res.Value,
			ErrorBound:  res.AbsErr,
			Regions:     res.Regions,
			Evaluations: res.Evaluations,
			Breakpoints: len(opts.Breakpoints),
			Converged:   res.Converged(),
			Timestamp:   start,
			Duration:    took,
		}
		if res.Warning != nil {
			out.Warning = res.Warning.Error()
		}
		results = append(results, out)
	}
	return results, elapsed, nil
}

func (r *Runner) export(report model.Report) error {
	dir := r.Config.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	csvPath := filepath.Join(dir, "results.csv")
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	jsonPath := filepath.Join(dir, "results.jsonl")
	jsonWriter, err := output.NewJSONWriter(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to init JSON writer at %s: %w", jsonPath, err)
	}
	defer jsonWriter.Close()

	for _, res := range report.Results {
		if err := csvWriter.Write(res); err != nil {
			output.Logger.Error("Failed to write result to CSV", "integrand", res.Integrand, "error", err)
		}
		if err := jsonWriter.Write(res); err != nil {
			output.Logger.Error("Failed to write result to JSON", "integrand", res.Integrand, "error", err)
		}
	}
	if err := jsonWriter.WriteSummary(report); err != nil {
		output.Logger.Error("Failed to write summary to JSON", "error", err)
	}
	output.Logger.Info("Results exported", "csv", csvPath, "json", jsonPath)
	return nil
}

func (r *Runner) plot(cases []integrand.Integrand) {
	if r.Plotter == nil {
		return
	}
	start := time.Now()
	for _, in := range cases {
		path, err := r.Plotter.Plot(in)
		if err != nil {
			output.Logger.Error("Plot failed", "integrand", in.Name, "error", err)
			continue
		}
		output.Logger.Info("Plot written", "integrand", in.Name, "path", path)
	}
	output.Logger.Debug("Plotting finished", "duration", time.Since(start))
}
