package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	lhio "github.com/phil-mansfield/lhalotree/io"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print an example config file and the known simulations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, lhio.ExampleConfigFile)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "# Known simulations:")
		for _, name := range config.Names() {
			sim := config.Simulation[name]
			fmt.Fprintf(out, "#   %s: HubbleH = %g, ParticleMass = %g, RootSnap = %d\n",
				name, sim.HubbleH, sim.ParticleMass, sim.RootSnap)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
