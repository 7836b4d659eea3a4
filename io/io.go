package io

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

/*
The LHaloTree binary format is as follows:
    |-- 1 --||-- 2 --||-- ... 3 ... --||-- ... 4 ... --|

    1 - (int32) NTrees, the number of trees in the file.
    2 - (int32) NHalos, the number of halos in all trees.
    3 - ([NTrees]int32) NHalosPerTree, the number of halos in each tree.
    4 - ([NHalos]Halo) Halo records. The records of each tree are stored
        contiguously and trees appear in the same order as in block 3.
*/

const (
	// HaloSize is the size of one Halo record in bytes.
	HaloSize = 104
	// headerPrefixSize is the size of the NTrees and NHalos fields.
	headerPrefixSize = 8
	// countChunk is the number of per-tree counts read at a time.
	countChunk = 4096
)

// DefaultByteOrder is the byte order used when none is given. Halo finders
// write native-endian files and every cluster they run on is little endian.
var DefaultByteOrder binary.ByteOrder = binary.LittleEndian

// Halo is a single LHaloTree record: one halo at one snapshot. Field order
// and widths match the on-disk layout exactly, so don't reorder them.
//
// The linkage fields are indices into the same tree's halo array, with -1
// meaning that there is no such halo.
type Halo struct {
	Descendant          int32
	FirstProgenitor     int32
	NextProgenitor      int32
	FirstHaloInFOFgroup int32
	NextHaloInFOFgroup  int32

	Len                     int32   // Number of particles
	MMean200, Mvir, MTopHat float32 // 1e10 Msun/h
	Pos, Vel                [3]float32
	VelDisp, Vmax           float32
	Spin                    [3]float32
	MostBoundID             int64
	SnapNum, FileNr         int32
	SubhaloIndex            int32
	SubHalfMass             float32
}

// Header is the table at the start of an LHaloTree file.
type Header struct {
	NTrees, NHalos int32
	NHalosPerTree  []int32
}

// Tree is a single deserialized tree. Halos[0] is the root.
type Tree struct {
	Index int
	Halos []Halo
}

// Len returns the number of halos in the tree.
func (t *Tree) Len() int { return len(t.Halos) }

// NewHeader returns the Header describing the given trees.
func NewHeader(trees [][]Halo) *Header {
	hd := &Header{
		NTrees:        int32(len(trees)),
		NHalosPerTree: make([]int32, len(trees)),
	}
	for i, t := range trees {
		hd.NHalosPerTree[i] = int32(len(t))
		hd.NHalos += int32(len(t))
	}
	return hd
}

// Size returns the size of the header in bytes.
func (hd *Header) Size() int64 {
	return headerPrefixSize + 4*int64(hd.NTrees)
}

// FileSize returns the size of the file that this header describes.
func (hd *Header) FileSize() int64 {
	return hd.Size() + HaloSize*int64(hd.NHalos)
}

// TreeOffset returns the byte offset of the first halo in tree i.
func (hd *Header) TreeOffset(i int) int64 {
	off := hd.Size()
	for j := 0; j < i; j++ {
		off += HaloSize * int64(hd.NHalosPerTree[j])
	}
	return off
}

// MaxTree returns the index and halo count of the largest tree. The first
// such tree wins ties. idx is -1 if there are no trees.
func (hd *Header) MaxTree() (idx, n int) {
	idx = -1
	for i, ni := range hd.NHalosPerTree {
		if idx == -1 || int(ni) > n {
			idx, n = i, int(ni)
		}
	}
	return idx, n
}

func (hd *Header) validate() error {
	if len(hd.NHalosPerTree) != int(hd.NTrees) {
		return &FormatError{Msg: fmt.Sprintf(
			"NTrees is %d, but %d per-tree counts were given",
			hd.NTrees, len(hd.NHalosPerTree),
		)}
	}

	sum := int64(0)
	for i, n := range hd.NHalosPerTree {
		if n < 0 {
			return &FormatError{Msg: fmt.Sprintf(
				"tree %d has a negative halo count, %d", i, n,
			)}
		}
		sum += int64(n)
	}
	if sum != int64(hd.NHalos) {
		return &FormatError{Msg: fmt.Sprintf(
			"NHalos is %d, but the per-tree counts sum to %d", hd.NHalos, sum,
		)}
	}
	return nil
}

// ReadHeader reads an LHaloTree header from r, which must be positioned at
// the start of the file.
func ReadHeader(r io.Reader, order binary.ByteOrder) (*Header, error) {
	return readHeader(r, order, -1)
}

// readHeader reads a header, refusing to allocate a count table for more than
// maxTrees trees. maxTrees < 0 means no limit.
func readHeader(
	r io.Reader, order binary.ByteOrder, maxTrees int64,
) (*Header, error) {
	hd := &Header{}
	var prefix [2]int32
	if err := binary.Read(r, order, &prefix); err != nil {
		return nil, shortRead(err, "header is truncated")
	}
	hd.NTrees, hd.NHalos = prefix[0], prefix[1]

	if hd.NTrees < 0 {
		return nil, &FormatError{Msg: fmt.Sprintf(
			"NTrees is negative, %d", hd.NTrees,
		)}
	} else if hd.NHalos < 0 {
		return nil, &FormatError{Msg: fmt.Sprintf(
			"NHalos is negative, %d", hd.NHalos,
		)}
	} else if maxTrees >= 0 && int64(hd.NTrees) > maxTrees {
		return nil, &FormatError{
			Msg:      fmt.Sprintf("header declares %d trees", hd.NTrees),
			Expected: hd.Size(),
			Actual:   headerPrefixSize + 4*maxTrees,
		}
	}

	// Allocation is bounded by what the stream holds, not by NTrees.
	n := int(hd.NTrees)
	hd.NHalosPerTree = make([]int32, 0, min(n, countChunk))
	buf := make([]int32, min(n, countChunk))
	for len(hd.NHalosPerTree) < n {
		chunk := buf[:min(n-len(hd.NHalosPerTree), countChunk)]
		if err := binary.Read(r, order, chunk); err != nil {
			return nil, shortRead(err, "per-tree halo counts are truncated")
		}
		hd.NHalosPerTree = append(hd.NHalosPerTree, chunk...)
	}

	if err := hd.validate(); err != nil {
		return nil, err
	}
	return hd, nil
}

// WriteHeader writes hd to w.
func WriteHeader(w io.Writer, order binary.ByteOrder, hd *Header) error {
	if err := hd.validate(); err != nil {
		return err
	}
	prefix := [2]int32{hd.NTrees, hd.NHalos}
	if err := binary.Write(w, order, &prefix); err != nil {
		return err
	}
	return binary.Write(w, order, hd.NHalosPerTree)
}

// ReadHalos reads exactly n consecutive Halo records from r.
func ReadHalos(r io.Reader, order binary.ByteOrder, n int) ([]Halo, error) {
	if n < 0 {
		return nil, &FormatError{Msg: fmt.Sprintf(
			"cannot read a negative number of halos, %d", n,
		)}
	}
	hs := make([]Halo, n)
	if n == 0 {
		return hs, nil
	}
	if err := binary.Read(r, order, hs); err != nil {
		return nil, shortRead(err, fmt.Sprintf(
			"a block of %d halos is truncated", n,
		))
	}
	return hs, nil
}

// WriteHalos writes hs to w as consecutive Halo records.
func WriteHalos(w io.Writer, order binary.ByteOrder, hs []Halo) error {
	if len(hs) == 0 {
		return nil
	}
	return binary.Write(w, order, hs)
}

// WriteForest writes a complete LHaloTree file containing the given trees to w.
func WriteForest(w io.Writer, order binary.ByteOrder, trees [][]Halo) error {
	if err := WriteHeader(w, order, NewHeader(trees)); err != nil {
		return err
	}
	for i := range trees {
		if err := WriteHalos(w, order, trees[i]); err != nil {
			return fmt.Errorf("Could not write tree %d: %w", i, err)
		}
	}
	return nil
}

// Create writes a complete LHaloTree file containing the given trees to the
// given path, overwriting whatever was there.
func Create(path string, order binary.ByteOrder, trees [][]Halo) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := WriteForest(f, order, trees); err != nil {
		return fmt.Errorf("Could not write %s: %w", path, err)
	}
	return nil
}

// shortRead converts the errors binary.Read returns at the end of a stream
// into a *FormatError and passes everything else through.
func shortRead(err error, msg string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{Msg: msg}
	}
	return err
}
