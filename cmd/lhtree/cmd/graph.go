package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/lhalotree/graph"
)

var (
	snapMin, snapMax int
	snapListFile     string
)

var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Print the graph view of a tree",
	Long: `Print the graph view of the selected tree: one node per halo with a
snapshot in [--snap-min, --snap-max] and one edge from each of those halos to
its descendant.

Nodes are printed grouped by snapshot with their mass, display color, and
display size. Colors and sizes come from the Display section of the config.
If --snaplist is given, each snapshot is annotated with its redshift.`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addSelectionFlags(graphCmd)
	graphCmd.Flags().IntVar(&snapMin, "snap-min", 0, "Earliest snapshot to include")
	graphCmd.Flags().IntVar(&snapMax, "snap-max", -1, "Latest snapshot to include (default: the simulation's RootSnap)")
	graphCmd.Flags().StringVar(&snapListFile, "snaplist", "", "File listing the scale factor of each snapshot")
}

func runGraph(cmd *cobra.Command, args []string) error {
	sim, err := simulation()
	if err != nil {
		return err
	}
	style, err := graph.NewStyle(&config.Display)
	if err != nil {
		return err
	}
	var snapList *graph.SnapList
	if snapListFile != "" {
		if snapList, err = graph.ReadSnapList(snapListFile); err != nil {
			return err
		}
	}

	hi := snapMax
	if !cmd.Flags().Changed("snap-max") {
		hi = sim.RootSnap
	}
	if err := checkSnap("--snap-min", snapMin); err != nil {
		return err
	} else if err := checkSnap("--snap-max", hi); err != nil {
		return err
	} else if hi < snapMin {
		return fmt.Errorf("--snap-max (%d) is smaller than --snap-min (%d).",
			hi, snapMin)
	}

	t, err := selectTree(cmd, args[0], sim)
	if err != nil {
		return err
	}
	g, err := graph.Build(t.Halos, graph.SnapRange(int32(snapMin), int32(hi)),
		sim, style)
	if err != nil {
		return err
	}
	logger.Debug("Built graph", "tree", t.Index,
		"nodes", len(g.Nodes), "edges", len(g.Edges))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# tree %d: %d nodes, %d edges\n",
		t.Index, len(g.Nodes), len(g.Edges))
	for _, rank := range graph.Ranks(g) {
		if z, ok := redshift(snapList, rank.Snap); ok {
			fmt.Fprintf(out, "snap %d (z = %.3f): %d halos\n",
				rank.Snap, z, len(rank.Halos))
		} else {
			fmt.Fprintf(out, "snap %d: %d halos\n", rank.Snap, len(rank.Halos))
		}
		for _, i := range rank.Halos {
			node, _ := g.Lookup(i)
			fmt.Fprintf(out, "  %d -> %d log10(M) = %.3f color = %s size = %.3f\n",
				node.Halo, t.Halos[i].Descendant, node.LogMass,
				node.Color.Hex(), node.Size)
		}
	}
	return nil
}

// checkSnap returns an error if a snapshot flag can't be an LHaloTree
// SnapNum.
func checkSnap(flag string, snap int) error {
	if snap < 0 || snap > math.MaxInt32 {
		return fmt.Errorf("%s is %d, but snapshots must be in [0, %d].",
			flag, snap, math.MaxInt32)
	}
	return nil
}

func redshift(sl *graph.SnapList, snap int32) (float64, bool) {
	if sl == nil {
		return 0, false
	}
	return sl.Redshift(snap)
}
