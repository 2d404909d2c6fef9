/*
PURPOSE:
  Writes integration results to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Optional export of a single run's results.

  Implementation-discovered:
  - One file per run; an existing file is overwritten.
  - Floats use the same shortest round-trip form as the stdout lines.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Result

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter("results.csv")
  w.Write(result)
  w.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Result struct changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/daryltucker/quad-runner/internal/model"
)

// CSVHeader is the first row of every results file.
var CSVHeader = []string{
	"integrand", "lower", "upper", "estimate", "error_bound",
	"regions", "evaluations", "breakpoints", "converged", "warning",
	"timestamp", "duration_ms",
}

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single result to the CSV file.
func (cw *CSVWriter) Write(r model.Result) error {
	record := []string{
		r.Integrand,
		FormatFloat(r.Lower),
		FormatFloat(r.Upper),
		FormatFloat(r.Estimate),
		FormatFloat(r.ErrorBound),
		strconv.Itoa(r.Regions),
		strconv.Itoa(r.Evaluations),
		strconv.Itoa(r.Breakpoints),
		strconv.FormatBool(r.Converged),
		r.Warning,
		r.Timestamp.Format(time.RFC3339),
		fmt.Sprintf("%.4f", float64(r.Duration)/float64(time.Millisecond)),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
