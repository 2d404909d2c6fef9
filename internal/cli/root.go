/*
PURPOSE:
  Defines the root Cobra command for the Quad Runner CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Running the binary with no arguments reproduces the reference batch.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Log level must be applied before any subcommand logs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/quad-runner/main.go
  - Calls: Child commands (run, list, check)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/quad-runner/main.go
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/quad-runner/internal/config"
	"github.com/daryltucker/quad-runner/internal/engine"
	"github.com/daryltucker/quad-runner/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "quad-runner",
		Short: "Adaptive quadrature smoke test over fixed test integrands",
		Long: `Integrates a fixed set of test functions with adaptive Gauss-Kronrod quadrature,
prints "<estimate> <error_bound>" per integrand followed by the elapsed time,
and plots each function over its interval.

Without a subcommand the default batch runs. Use 'run --help' for overrides.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return output.SetLevel(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return engine.Run(cfg)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the config file and applies the global log level, flag taking precedence.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel == "" {
		if err := output.SetLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./quad_runner.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}
