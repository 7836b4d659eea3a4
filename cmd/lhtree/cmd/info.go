package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	lhio "github.com/phil-mansfield/lhalotree/io"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "Summarize the headers of tree files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, path := range args {
		hd, err := readHeader(path)
		if err != nil {
			return err
		}

		maxIdx, maxHalos := hd.MaxTree()
		fmt.Fprintf(out, "%s\n", path)
		fmt.Fprintf(out, "  trees:   %d\n", hd.NTrees)
		fmt.Fprintf(out, "  halos:   %d\n", hd.NHalos)
		if maxIdx >= 0 {
			fmt.Fprintf(out, "  largest: tree %d with %d halos\n",
				maxIdx, maxHalos)
		}
	}
	return nil
}

// readHeader opens path just long enough to read its header.
func readHeader(path string) (hd *lhio.Header, err error) {
	r, err := openTrees(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()
	return r.Header(), nil
}
