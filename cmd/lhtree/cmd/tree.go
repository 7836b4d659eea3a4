package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/lhalotree/graph"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the halos of a single tree",
	Long: `Print the halos of a single tree.

The tree is chosen either by --index or by --root-fofs, which selects the
first tree in the file with exactly that many halos at the root snapshot and
at least --min-halos halos in total. Only one of the two may be given. With
neither, tree 0 is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addSelectionFlags(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	sim, err := simulation()
	if err != nil {
		return err
	}
	t, err := selectTree(cmd, args[0], sim)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "# tree %d: %d halos\n", t.Index, t.Len())
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "halo\tdesc\tfirst_prog\tnext_prog\tfirst_fof\tnext_fof\tsnap\tlen\tmvir\tmass[Msun]\t")
	for i := range t.Halos {
		h := &t.Halos[i]
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.4g\t%.4g\t\n",
			i, h.Descendant, h.FirstProgenitor, h.NextProgenitor,
			h.FirstHaloInFOFgroup, h.NextHaloInFOFgroup,
			h.SnapNum, h.Len, h.Mvir, graph.Mass(h, sim))
	}
	return w.Flush()
}
