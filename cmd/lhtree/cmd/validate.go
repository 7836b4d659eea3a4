package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	lhio "github.com/phil-mansfield/lhalotree/io"
	"github.com/phil-mansfield/lhalotree/tree"
)

var skipSnapCheck bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check the root halos and pointers of every tree",
	Long: `Check that in every tree the first halo is the root: it has no
descendant, no next progenitor, and is at the simulation's root snapshot.
Also checks that every pointer field stays inside its tree.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&skipSnapCheck, "skip-snap-check", false, "Don't require root halos to be at the root snapshot")
}

func runValidate(cmd *cobra.Command, args []string) error {
	sim, err := simulation()
	if err != nil {
		return err
	}
	rootSnap := sim.RootSnap
	if skipSnapCheck {
		rootSnap = -1
	}

	out := cmd.OutOrStdout()
	bad := 0
	for _, path := range args {
		n, err := validateFile(path, rootSnap, func(err error) {
			fmt.Fprintf(out, "%s: %s\n", path, err)
		})
		if err != nil {
			return err
		}
		bad += n
	}

	if bad > 0 {
		return fmt.Errorf("Found %d invalid trees.", bad)
	}
	fmt.Fprintf(out, "All trees in %d files are valid.\n", len(args))
	return nil
}

// validateFile validates every tree in path, calling report on each invalid
// tree, and returns the number of invalid trees.
func validateFile(path string, rootSnap int, report func(error)) (int, error) {
	r, err := openTrees(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	bad := 0
	err = r.Each(func(t *lhio.Tree) error {
		verr := tree.Validate(t, rootSnap)
		var ierr *tree.InvalidError
		if errors.As(verr, &ierr) {
			bad++
			report(verr)
			return nil
		}
		return verr
	})
	return bad, err
}
