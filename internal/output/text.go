package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/daryltucker/quad-runner/internal/model"
)

// FormatFloat renders v in its shortest round-trip form, e.g. 4.0000009333333336e-11.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteText prints one "<estimate> <error_bound>" line per result, in order,
// followed by "Elapsed <N> ms".
func WriteText(w io.Writer, report model.Report) error {
	for _, r := range report.Results {
		if _, err := fmt.Fprintf(w, "%s %s\n", FormatFloat(r.Estimate), FormatFloat(r.ErrorBound)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Elapsed %d ms\n", report.ElapsedMillis())
	return err
}
