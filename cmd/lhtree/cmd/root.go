package cmd

import (
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	lhio "github.com/phil-mansfield/lhalotree/io"
)

var (
	// Global flags
	verbose    bool
	configFile string
	simName    string
	bigEndian  bool

	logger *slog.Logger
	config *lhio.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lhtree",
	Short: "Inspect LHaloTree merger tree files",
	Long: `lhtree reads LHaloTree binary merger tree files.

It can summarize a file, select trees by index or by the number of FoF groups
at the root snapshot, walk trees depth-first, follow main progenitor
branches, build the graph view of a tree, check trees for broken pointers,
and copy trees into new files. It can also subsample binary density grids.

Simulation parameters (Hubble constant, particle mass, root snapshot) come
from the simulation named by --sim, which is either built in or defined in
the file given by --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(
			cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level},
		))

		cfg, err := lhio.ReadConfig(configFile)
		if err != nil {
			return err
		}
		config = cfg
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file with Simulation and Display sections")
	rootCmd.PersistentFlags().StringVarP(&simName, "sim", "s", string(lhio.Kali), "Name of the simulation that produced the files")
	rootCmd.PersistentFlags().BoolVar(&bigEndian, "big-endian", false, "Read and write big endian files")

	binName := BinName()
	rootCmd.Example = `  # Summarize a tree file
  ` + binName + ` info subgroup_trees_000.dat

  # Print the first tree with one FoF group at the root snapshot and at least 500 halos
  ` + binName + ` tree subgroup_trees_000.dat --root-fofs 1 --min-halos 500

  # Print the graph view of tree 3 between snapshots 90 and 98
  ` + binName + ` graph subgroup_trees_000.dat --index 3 --snap-min 90 --snap-max 98

  # Print an example config file
  ` + binName + ` config`
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}

func byteOrder() binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return lhio.DefaultByteOrder
}

func simulation() (*lhio.SimulationConfig, error) {
	return config.Lookup(lhio.SimulationName(simName))
}

func openTrees(path string) (*lhio.Reader, error) {
	return lhio.Open(path,
		lhio.WithByteOrder(byteOrder()), lhio.WithLogger(logger))
}
