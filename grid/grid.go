/*package grid reads, writes, and subsamples cubic Cartesian grids stored as
flat binary arrays, such as the density fields written alongside LHaloTree
outputs. Cells are stored with the x index varying fastest.
*/
package grid

import (
	"fmt"
)

// Grid provides an interface for reasoning over a 1D slice as if it were a
// cubic 3D grid.
type Grid struct {
	N, Area, Volume int
}

// NewGrid returns a Grid with n cells on each side.
func NewGrid(n int) *Grid {
	g := &Grid{}
	g.Init(n)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(n int) {
	g.N = n
	g.Area = n * n
	g.Volume = n * n * n
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return x + y*g.N + z*g.Area
}

// IdxCheck returns an index and true if the given coordinates are valid and
// false otherwise.
func (g *Grid) IdxCheck(x, y, z int) (idx int, ok bool) {
	if !g.BoundsCheck(x, y, z) {
		return -1, false
	}
	return g.Idx(x, y, z), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.N && y < g.N && z < g.N
}

// Coords returns the x, y, z coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx % g.N
	y = (idx % g.Area) / g.N
	z = idx / g.Area
	return x, y, z
}

// pMod computes the positive modulo x % y.
func pMod(x, y int) int {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}

// Subsample averages vals, a periodic grid with nIn cells on a side, down to
// a grid with nOut cells on a side. With conv = nIn / nOut, output cell i
// along each axis is the mean of the conv input cells starting at
// i*conv - (conv-1)/2, wrapping around the box edges. This is the window a
// centered conv^3 box filter has when sampled every conv cells, so for
// conv <= 2 blocks are aligned with the origin and for larger conv they are
// shifted back by (conv-1)/2 cells.
func Subsample(vals []float64, nIn, nOut int) ([]float64, error) {
	if nIn <= 0 || nOut <= 0 {
		return nil, fmt.Errorf(
			"Grid sizes must be positive, but are %d and %d.", nIn, nOut,
		)
	} else if nOut > nIn {
		return nil, fmt.Errorf(
			"Output grid size %d is larger than input grid size %d.",
			nOut, nIn,
		)
	} else if len(vals) != nIn*nIn*nIn {
		return nil, fmt.Errorf(
			"Grid with %d cells on a side has %d values instead of %d.",
			nIn, len(vals), nIn*nIn*nIn,
		)
	}

	conv := nIn / nOut
	off := (conv - 1) / 2
	norm := float64(conv * conv * conv)
	in, out := NewGrid(nIn), NewGrid(nOut)
	outVals := make([]float64, out.Volume)

	for idx := range outVals {
		ox, oy, oz := out.Coords(idx)
		x0, y0, z0 := ox*conv-off, oy*conv-off, oz*conv-off
		sum := 0.0
		for dz := 0; dz < conv; dz++ {
			z := pMod(z0+dz, nIn)
			for dy := 0; dy < conv; dy++ {
				y := pMod(y0+dy, nIn)
				for dx := 0; dx < conv; dx++ {
					sum += vals[in.Idx(pMod(x0+dx, nIn), y, z)]
				}
			}
		}
		outVals[idx] = sum / norm
	}

	return outVals, nil
}
