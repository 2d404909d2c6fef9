/*
PURPOSE:
  Defines the 'check' subcommand.
  Audits each quadrature estimate against an independent reference value.

REQUIREMENTS:
  User-specified:
  - |estimate - reference| <= max(error_bound, epsrel*|reference|) for every integrand.

  Implementation-discovered:
  - f1 only passes when its breakpoints are supplied; the report makes that visible
    instead of hiding it.

ARCHITECTURE INTEGRATION:
  - Calls: internal/quadrature.Integrate(), internal/reference.Value()
  - Uses: internal/config (same tolerances as 'run')

ERROR HANDLING:
  - Returns an error naming the failing integrands (exit code 1).

USAGE:
  quad-runner check --breakpoints
*/

package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daryltucker/quad-runner/internal/config"
	"github.com/daryltucker/quad-runner/internal/integrand"
	"github.com/daryltucker/quad-runner/internal/output"
	"github.com/daryltucker/quad-runner/internal/quadrature"
	"github.com/daryltucker/quad-runner/internal/reference"
)

var checkBreakpoints bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare quadrature estimates against reference values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("breakpoints") {
			cfg.Breakpoints = checkBreakpoints
		}
		return runCheck(cmd.OutOrStdout(), cfg)
	},
}

func runCheck(w io.Writer, cfg *config.Config) error {
	cases, err := integrand.Select(cfg.Integrands)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tESTIMATE\tREFERENCE\tDEVIATION\tBOUND\tSTATUS")

	var failed []string
	for _, in := range cases {
		opts := cfg.Options()
		if cfg.Breakpoints {
			opts.Breakpoints = in.Breakpoints()
		}

		res, err := quadrature.Integrate(in.Func, in.Lower, in.Upper, opts)
		if err != nil {
			return fmt.Errorf("integrate %s: %w", in.Name, err)
		}
		ref, err := reference.Value(in.Name, in.Lower, in.Upper)
		if err != nil {
			return err
		}

		status := "PASS"
		if !reference.Within(ref, res.Value, res.AbsErr, opts.RelTol) {
			status = "FAIL"
			failed = append(failed, in.Name)
		}
		if res.Warning != nil {
			output.Logger.Warn("Integration did not converge", "integrand", in.Name, "reason", res.Warning)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%.3g\t%.3g\t%s\n",
			in.Name,
			output.FormatFloat(res.Value),
			output.FormatFloat(ref),
			math.Abs(res.Value-ref),
			math.Max(res.AbsErr, opts.RelTol*math.Abs(ref)),
			status,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("reference check failed for %s", strings.Join(failed, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkBreakpoints, "breakpoints", false, "Split integration at each integrand's known discontinuities")
}
