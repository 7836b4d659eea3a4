package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/lhalotree/grid"
)

var (
	gridPrecision    string
	gridOutPrecision string
	gridSizeIn       int
	gridSizeOut      int
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Work with binary N^3 grid files",
}

var subsampleCmd = &cobra.Command{
	Use:   "subsample IN OUT",
	Short: "Average a grid down to a coarser resolution",
	Long: `Average a periodic cubic grid with --n-in cells on a side down to one
with --n-out cells on a side. With c = n-in / n-out, output cell i is the
mean of the c input cells starting at i*c - (c-1)/2 along each axis, wrapping
around the box edges. The input file's size must match --n-in and --precision exactly.`,
	Args: cobra.ExactArgs(2),
	RunE: runSubsample,
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.AddCommand(subsampleCmd)
	subsampleCmd.Flags().StringVarP(&gridPrecision, "precision", "p", "float", "Precision of the input grid: int, float, or double")
	subsampleCmd.Flags().StringVar(&gridOutPrecision, "out-precision", "double", "Precision of the output grid: int, float, or double")
	subsampleCmd.Flags().IntVar(&gridSizeIn, "n-in", 0, "Cells per side of the input grid")
	subsampleCmd.Flags().IntVar(&gridSizeOut, "n-out", 0, "Cells per side of the output grid")
	subsampleCmd.MarkFlagRequired("n-in")
	subsampleCmd.MarkFlagRequired("n-out")
}

func runSubsample(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	precIn, err := grid.ParsePrecision(gridPrecision)
	if err != nil {
		return err
	}
	precOut, err := grid.ParsePrecision(gridOutPrecision)
	if err != nil {
		return err
	}

	vals, err := grid.Read(in, gridSizeIn, precIn, byteOrder())
	if err != nil {
		return err
	}
	logger.Info("Read grid", "path", in, "cells", gridSizeIn,
		"precision", precIn.String())

	sub, err := grid.Subsample(vals, gridSizeIn, gridSizeOut)
	if err != nil {
		return err
	}
	if err := grid.Write(out, sub, precOut, byteOrder()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Subsampled grid saved to %s\n", out)
	return nil
}
