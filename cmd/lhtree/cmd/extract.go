package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	lhio "github.com/phil-mansfield/lhalotree/io"
)

var extractIndices []int

var extractCmd = &cobra.Command{
	Use:   "extract FILE OUT",
	Short: "Copy trees into a new tree file",
	Long: `Copy trees into a new LHaloTree file. Trees listed with --indices are
copied in the given order. Otherwise the single tree chosen by the selection
flags is copied.`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addSelectionFlags(extractCmd)
	extractCmd.Flags().IntSliceVar(&extractIndices, "indices", nil, "Comma-separated indices of the trees to copy")
}

func runExtract(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	sim, err := simulation()
	if err != nil {
		return err
	}

	var trees [][]lhio.Halo
	if len(extractIndices) > 0 {
		if trees, err = readTrees(in, extractIndices); err != nil {
			return err
		}
	} else {
		t, err := selectTree(cmd, in, sim)
		if err != nil {
			return err
		}
		trees = [][]lhio.Halo{t.Halos}
	}

	if err := lhio.Create(out, byteOrder(), trees); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d trees to %s\n", len(trees), out)
	return nil
}

func readTrees(path string, indices []int) ([][]lhio.Halo, error) {
	r, err := openTrees(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	trees := make([][]lhio.Halo, len(indices))
	for i, idx := range indices {
		t, err := r.ReadTree(idx)
		if err != nil {
			return nil, err
		}
		trees[i] = t.Halos
	}
	return trees, nil
}
