/*
PURPOSE:
  Defines the core data structures used throughout Quad Runner.
  These models represent integration results and batch timings.

REQUIREMENTS:
  User-specified:
  - Record estimate and error bound per integrand and interval.
  - Record the elapsed time of the integration batch.

  Implementation-discovered:
  - Need JSON tags for result export.
  - Non-convergence travels as a warning string, not an error.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Use time.Time and time.Duration for high precision.

USAGE:
  res := model.Result{...}

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add field and update CSV/JSON writers.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

import (
	"math"
	"time"
)

// Result represents the outcome of integrating one integrand over its interval.
type Result struct {
	Integrand   string        `json:"integrand"`
	Lower       float64       `json:"lower"`
	Upper       float64       `json:"upper"`
	Estimate    float64       `json:"estimate"`
	ErrorBound  float64       `json:"error_bound"`
	Regions     int           `json:"regions"`
	Evaluations int           `json:"evaluations"`
	Breakpoints int           `json:"breakpoints"`
	Converged   bool          `json:"converged"`
	Warning     string        `json:"warning,omitempty"` // Why it did not converge
	Timestamp   time.Time     `json:"timestamp"`
	Duration    time.Duration `json:"duration"`
}

// Report is one batch: results in input order plus the integration timings.
type Report struct {
	Results []Result `json:"results"`

	// Elapsed is the representative batch time (the median when repeated).
	Elapsed time.Duration `json:"elapsed"`
	// Runs holds the elapsed time of every repetition.
	Runs []time.Duration `json:"runs"`
}

// ElapsedMillis returns Elapsed rounded to the nearest millisecond.
func (r Report) ElapsedMillis() int64 {
	return Millis(r.Elapsed)
}

// Summary is the trailing record of a results stream.
type Summary struct {
	Record     string  `json:"record"` // always "summary"
	Integrands int     `json:"integrands"`
	Converged  int     `json:"converged"`
	ElapsedMs  int64   `json:"elapsed_ms"`
	RunsMs     []int64 `json:"runs_ms"`
}

// Summary condenses the report into its trailing record.
func (r Report) Summary() Summary {
	s := Summary{
		Record:     "summary",
		Integrands: len(r.Results),
		ElapsedMs:  r.ElapsedMillis(),
		RunsMs:     make([]int64, len(r.Runs)),
	}
	for _, res := range r.Results {
		if res.Converged {
			s.Converged++
		}
	}
	for i, d := range r.Runs {
		s.RunsMs[i] = Millis(d)
	}
	return s
}

// Millis rounds d to the nearest whole millisecond.
func Millis(d time.Duration) int64 {
	return int64(math.Round(float64(d) / float64(time.Millisecond)))
}
