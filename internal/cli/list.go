/*
PURPOSE:
  Defines the 'list' subcommand.
  Shows the available integrands before a full run.

REQUIREMENTS:
  User-specified:
  - List available integrands.

  Implementation-discovered:
  - Useful validation step before full run; shows which ones have known breakpoints.

ARCHITECTURE INTEGRATION:
  - Calls: internal/integrand.Defaults()

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  quad-runner list
*/

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daryltucker/quad-runner/internal/integrand"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available integrands",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeIntegrands(cmd.OutOrStdout(), integrand.Defaults())
	},
}

func writeIntegrands(w io.Writer, cases []integrand.Integrand) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINTERVAL\tBREAKPOINTS\tFORMULA")
	for _, in := range cases {
		fmt.Fprintf(tw, "%s\t[%g, %g]\t%d\t%s\n", in.Name, in.Lower, in.Upper, len(in.Breakpoints()), in.Formula)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
