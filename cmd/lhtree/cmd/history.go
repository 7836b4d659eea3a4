package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/lhalotree/tree"
)

var historyCmd = &cobra.Command{
	Use:   "history FILE HALO...",
	Short: "Print the main progenitor branch of halos",
	Long: `Print the main progenitor branch of each given halo in the selected
tree as (halo, snapshot) rows. Branches are separated by a "-1 -1" row.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	addSelectionFlags(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	roots, err := parseHalos(args[1:])
	if err != nil {
		return err
	}
	sim, err := simulation()
	if err != nil {
		return err
	}
	t, err := selectTree(cmd, args[0], sim)
	if err != nil {
		return err
	}

	idSets, snapSets, err := tree.Histories(t.Halos, roots)
	if err != nil {
		return err
	}

	ids, snaps := []int{}, []int{}
	for i := range idSets {
		ids = append(ids, idSets[i]...)
		snaps = append(snaps, snapSets[i]...)
		// Sentinels:
		if i != len(idSets)-1 {
			ids = append(ids, -1)
			snaps = append(snaps, -1)
		}
	}

	printIDs(cmd.OutOrStdout(), ids, snaps)
	return nil
}

func parseHalos(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i := range args {
		var err error
		ids[i], err = strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("Halo argument %d, '%s', cannot be parsed.",
				i, args[i])
		}
	}
	return ids, nil
}

func printIDs(w io.Writer, ids []int, snaps []int) {
	// Find the maximum width of each column.
	idWidth, snapWidth := 0, 0
	for i := range ids {
		iWidth := len(strconv.Itoa(ids[i]))
		sWidth := len(strconv.Itoa(snaps[i]))
		if iWidth > idWidth {
			idWidth = iWidth
		}
		if sWidth > snapWidth {
			snapWidth = sWidth
		}
	}

	rowFmt := fmt.Sprintf("%%%dd %%%dd\n", idWidth, snapWidth)
	for i := range ids {
		fmt.Fprintf(w, rowFmt, ids[i], snaps[i])
	}
}
