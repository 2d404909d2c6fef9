/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the integration batch with optional overrides.

REQUIREMENTS:
  User-specified:
  - Run the batch.
  - specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config, only for flags actually set.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails, overrides are invalid, or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Validate -> Engine.Run.

USAGE:
  quad-runner run --breakpoints --no-plot

RELATED FILES:
  - internal/cli/root.go
*/

package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/daryltucker/quad-runner/internal/config"
	"github.com/daryltucker/quad-runner/internal/engine"
)

var (
	integrandsOverride []string
	relTolOverride     float64
	absTolOverride     float64
	limitOverride      int
	maxWidthOverride   float64
	breakpointsFlag    bool
	repeatOverride     int
	samplesOverride    int
	plotDirOverride    string
	noPlot             bool
	outputOverride     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the integration batch",
	Long: `Integrates each selected integrand over its fixed interval with adaptive
G7K15 quadrature (defaults: epsrel 1e-13, epsabs 0, limit 10000 subintervals).

Stdout receives one "<estimate> <error_bound>" line per integrand in input order,
then "Elapsed <N> ms" covering only the integration calls. Integrands that fail to
converge are still reported; a warning is logged to stderr.

Plots are written as PNG files after the timed section.`,
	Example: `  # Run with defaults (uses quad_runner.yaml if present)
  quad-runner run

  # Split at known discontinuities and skip plotting
  quad-runner run --breakpoints --no-plot

  # Time 20 repetitions of two integrands and export results
  quad-runner run --integrands f1,f4 --repeat 20 -o ./results`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRunFlags(cmd.Flags(), cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		return engine.Run(cfg)
	},
}

// applyRunFlags copies every explicitly set flag onto cfg.
func applyRunFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("integrands") {
		cfg.Integrands = integrandsOverride
	}
	if flags.Changed("epsrel") {
		cfg.RelTol = relTolOverride
	}
	if flags.Changed("epsabs") {
		cfg.AbsTol = absTolOverride
	}
	if flags.Changed("limit") {
		cfg.Limit = limitOverride
	}
	if flags.Changed("max-width") {
		cfg.MaxWidth = maxWidthOverride
	}
	if flags.Changed("breakpoints") {
		cfg.Breakpoints = breakpointsFlag
	}
	if flags.Changed("repeat") {
		cfg.Repeat = repeatOverride
	}
	if flags.Changed("samples") {
		cfg.Samples = samplesOverride
	}
	if flags.Changed("plot-dir") {
		cfg.PlotDir = plotDirOverride
	}
	if noPlot {
		cfg.Plot = false
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputOverride
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVar(&integrandsOverride, "integrands", nil, "Comma-separated list of integrands to run, in order (default all)")
	runCmd.Flags().Float64Var(&relTolOverride, "epsrel", 1e-13, "Relative error tolerance")
	runCmd.Flags().Float64Var(&absTolOverride, "epsabs", 0, "Absolute error tolerance")
	runCmd.Flags().IntVar(&limitOverride, "limit", 10000, "Maximum number of subintervals")
	runCmd.Flags().Float64Var(&maxWidthOverride, "max-width", 0, "Pre-split the interval into pieces no wider than this (0 disables)")
	runCmd.Flags().BoolVar(&breakpointsFlag, "breakpoints", false, "Split integration at each integrand's known discontinuities")
	runCmd.Flags().IntVar(&repeatOverride, "repeat", 1, "Repeat the timed batch N times and report the median")
	runCmd.Flags().IntVar(&samplesOverride, "samples", 500, "Number of evenly spaced samples per plot")
	runCmd.Flags().StringVar(&plotDirOverride, "plot-dir", "plots", "Directory for PNG plots")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip plotting")
	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results (CSV/JSON)")
}
