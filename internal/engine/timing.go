package engine

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/daryltucker/quad-runner/internal/output"
)

// Timing summarizes the elapsed times of repeated batches.
type Timing struct {
	Runs   int
	Mean   time.Duration
	Median time.Duration
	Min    time.Duration
	Max    time.Duration
	StdDev time.Duration
}

// Summarize computes timing statistics over runs. An empty slice yields a zero Timing.
func Summarize(runs []time.Duration) Timing {
	if len(runs) == 0 {
		return Timing{}
	}
	values := make([]float64, len(runs))
	for i, d := range runs {
		values[i] = float64(d)
	}

	// Errors only occur on empty input, which is handled above.
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	stddev, _ := stats.StandardDeviation(values)

	return Timing{
		Runs:   len(runs),
		Mean:   time.Duration(mean),
		Median: time.Duration(median),
		Min:    time.Duration(lo),
		Max:    time.Duration(hi),
		StdDev: time.Duration(stddev),
	}
}

// Log reports the summary through the package logger.
func (t Timing) Log(integrands int) {
	output.Logger.Info("Batch timing",
		"runs", t.Runs,
		"integrands", integrands,
		"mean", t.Mean,
		"median", t.Median,
		"min", t.Min,
		"max", t.Max,
		"stddev", t.StdDev,
	)
}
