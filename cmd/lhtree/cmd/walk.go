package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/lhalotree/tree"
)

var walkStart int

var walkCmd = &cobra.Command{
	Use:   "walk FILE",
	Short: "Print the depth-first walk of a tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalk,
}

func init() {
	rootCmd.AddCommand(walkCmd)
	addSelectionFlags(walkCmd)
	walkCmd.Flags().IntVar(&walkStart, "start", 0, "Halo to start walking from")
}

func runWalk(cmd *cobra.Command, args []string) error {
	sim, err := simulation()
	if err != nil {
		return err
	}
	t, err := selectTree(cmd, args[0], sim)
	if err != nil {
		return err
	}
	if walkStart < 0 || walkStart >= t.Len() {
		return fmt.Errorf("Start halo %d is not in tree %d, which has %d halos.",
			walkStart, t.Index, t.Len())
	}

	out := cmd.OutOrStdout()
	n := tree.Walk(t.Halos, walkStart, func(i int) bool {
		fmt.Fprintf(out, "%d %d\n", i, t.Halos[i].SnapNum)
		return true
	})
	logger.Debug("Walked tree", "tree", t.Index, "start", walkStart,
		"visited", n, "halos", t.Len())
	return nil
}
