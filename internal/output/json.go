/*
PURPOSE:
  Writes integration results to a JSON Lines file (NDJSON).
  Optimized for machine parsing.

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines is better for streaming/logging than a single large array (append-friendly).
  - The stream ends with one {"record":"summary"} line carrying the batch timings,
    so `jq 'select(.record == "summary")'` finds it without scanning results.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Result

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Results first, summary last. The runner is single-threaded, so no locking.

USAGE:
  w, err := output.NewJSONWriter("results.jsonl")
  w.Write(result)
  w.WriteSummary(report)
  w.Close()

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/json"
	"os"

	"github.com/daryltucker/quad-runner/internal/model"
)

// JSONWriter writes results to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
}

// NewJSONWriter creates a new JSONWriter, truncating any existing file.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{file: f, encoder: json.NewEncoder(f)}, nil
}

// Write writes a single result as a JSON line.
func (jw *JSONWriter) Write(r model.Result) error {
	return jw.encoder.Encode(r)
}

// WriteSummary appends the batch summary line.
func (jw *JSONWriter) WriteSummary(report model.Report) error {
	return jw.encoder.Encode(report.Summary())
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
