package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	lhio "github.com/phil-mansfield/lhalotree/io"
)

// selectionFlags are shared by every command that works on a single tree.
type selectionFlags struct {
	index    int
	rootFOFs int
	rootSnap int
	minHalos int
}

var sel selectionFlags

func addSelectionFlags(c *cobra.Command) {
	c.Flags().IntVarP(&sel.index, "index", "i", 0, "Index of the tree to read")
	c.Flags().IntVar(&sel.rootFOFs, "root-fofs", 0, "Select the first tree with exactly this many FoF halos at the root snapshot")
	c.Flags().IntVar(&sel.rootSnap, "root-snap", 0, "Root snapshot used by --root-fofs (default: the simulation's RootSnap)")
	c.Flags().IntVar(&sel.minHalos, "min-halos", 0, "Minimum total number of halos used by --root-fofs")
}

// selection converts the parsed flags of c into a Selection. Mixing --index
// with --root-fofs is left for Select to reject.
func (f *selectionFlags) selection(
	c *cobra.Command, sim *lhio.SimulationConfig,
) (lhio.Selection, error) {
	s := lhio.Selection{Index: f.index, ByIndex: c.Flags().Changed("index")}
	if !c.Flags().Changed("root-fofs") {
		for _, name := range []string{"root-snap", "min-halos"} {
			if c.Flags().Changed(name) {
				return s, &lhio.ConfigError{Msg: fmt.Sprintf(
					"--%s only applies when searching with --root-fofs.", name,
				)}
			}
		}
		return s, nil
	}

	crit := lhio.Criteria{
		NumRootFOFs: f.rootFOFs,
		RootSnapNum: int32(sim.RootSnap),
		NumHalos:    f.minHalos,
	}
	if c.Flags().Changed("root-snap") {
		if f.rootSnap < 0 || f.rootSnap > math.MaxInt32 {
			return s, &lhio.ConfigError{Msg: fmt.Sprintf(
				"--root-snap is %d, but snapshots must be in [0, %d].",
				f.rootSnap, math.MaxInt32,
			)}
		}
		crit.RootSnapNum = int32(f.rootSnap)
	}
	s.Criteria = &crit
	return s, nil
}

// selectTree reads the tree chosen by the selection flags of c from path.
func selectTree(
	c *cobra.Command, path string, sim *lhio.SimulationConfig,
) (*lhio.Tree, error) {
	s, err := sel.selection(c, sim)
	if err != nil {
		return nil, err
	}
	r, err := openTrees(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Select(s)
}
