package grid

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdxCoords(t *testing.T) {
	g := NewGrid(4)
	assert.Equal(t, 16, g.Area)
	assert.Equal(t, 64, g.Volume)

	for idx := 0; idx < g.Volume; idx++ {
		x, y, z := g.Coords(idx)
		got, ok := g.IdxCheck(x, y, z)
		assert.True(t, ok)
		assert.Equal(t, idx, got)
	}

	assert.Equal(t, 1+2*4+3*16, g.Idx(1, 2, 3))

	for _, c := range [][3]int{{-1, 0, 0}, {0, 4, 0}, {0, 0, 7}} {
		_, ok := g.IdxCheck(c[0], c[1], c[2])
		assert.False(t, ok, "%v", c)
	}
}

func TestSubsample(t *testing.T) {
	in := NewGrid(4)
	vals := make([]float64, in.Volume)
	for idx := range vals {
		x, y, z := in.Coords(idx)
		vals[idx] = float64(x + 10*y + 100*z)
	}

	out, err := Subsample(vals, 4, 2)
	require.NoError(t, err)
	require.Len(t, out, 8)

	// The block covering x, y, z in {0, 1} has mean 0.5 + 5 + 50.
	g := NewGrid(2)
	assert.InDelta(t, 55.5, out[g.Idx(0, 0, 0)], 1e-9)
	assert.InDelta(t, 57.5, out[g.Idx(1, 0, 0)], 1e-9)
	assert.InDelta(t, 75.5, out[g.Idx(0, 1, 0)], 1e-9)
	assert.InDelta(t, 255.5, out[g.Idx(0, 0, 1)], 1e-9)

	same, err := Subsample(vals, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, vals, same)

	// The window wraps, but still covers the whole box.
	one, err := Subsample(vals, 4, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.5+15+150, one[0], 1e-9)
}

// TestSubsampleCentered checks that for conv >= 3 the averaging window is
// shifted back by (conv-1)/2 cells and wraps around the box.
func TestSubsampleCentered(t *testing.T) {
	in := NewGrid(6)
	vals := make([]float64, in.Volume)
	for idx := range vals {
		x, y, z := in.Coords(idx)
		vals[idx] = float64(x + 10*y + 100*z)
	}

	out, err := Subsample(vals, 6, 2)
	require.NoError(t, err)
	require.Len(t, out, 8)

	// Cell 0 covers {5, 0, 1} on each axis (mean 2) and cell 1 covers
	// {2, 3, 4} (mean 3).
	g := NewGrid(2)
	assert.InDelta(t, 2+20+200, out[g.Idx(0, 0, 0)], 1e-9)
	assert.InDelta(t, 3+20+200, out[g.Idx(1, 0, 0)], 1e-9)
	assert.InDelta(t, 2+30+200, out[g.Idx(0, 1, 0)], 1e-9)
	assert.InDelta(t, 3+30+300, out[g.Idx(1, 1, 1)], 1e-9)

	// The last cell of the box wraps into cell 0.
	spike := make([]float64, in.Volume)
	spike[in.Idx(5, 5, 5)] = 27
	out, err = Subsample(spike, 6, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[g.Idx(0, 0, 0)], 1e-9)
	assert.InDelta(t, 0.0, out[g.Idx(1, 1, 1)], 1e-9)
}

func TestSubsampleNonDivisible(t *testing.T) {
	in := NewGrid(5)
	vals := make([]float64, in.Volume)
	for idx := range vals {
		x, _, _ := in.Coords(idx)
		vals[idx] = float64(x)
	}

	// conv = 2, so cells cover x in {0, 1} and {2, 3}; x = 4 is skipped.
	out, err := Subsample(vals, 5, 2)
	require.NoError(t, err)
	g := NewGrid(2)
	assert.InDelta(t, 0.5, out[g.Idx(0, 1, 1)], 1e-9)
	assert.InDelta(t, 2.5, out[g.Idx(1, 0, 1)], 1e-9)
}

func TestSubsampleErrors(t *testing.T) {
	vals := make([]float64, 27)
	table := []struct {
		vals      []float64
		nIn, nOut int
	}{
		{vals, 3, 4},
		{vals, 3, 0},
		{vals, 0, 1},
		{vals[:26], 3, 1},
	}

	for i, line := range table {
		_, err := Subsample(line.vals, line.nIn, line.nOut)
		assert.Error(t, err, "%d", i)
	}
}

func TestReadWrite(t *testing.T) {
	dir := t.TempDir()
	vals := []float64{0, 1, -2, 3, 4, 5, 6, 1e6}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, prec := range []Precision{Int32, Float32, Float64} {
			path := filepath.Join(dir, prec.String())
			require.NoError(t, Write(path, vals, prec, order))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, int64(len(vals)*prec.Bytes()), info.Size())

			got, err := Read(path, 2, prec, order)
			require.NoError(t, err, "%s", prec)
			assert.Equal(t, vals, got, "%s", prec)
		}
	}
}

func TestReadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.dat")
	require.NoError(t, Write(path, make([]float64, 8), Float32, binary.LittleEndian))

	_, err := Read(path, 2, Float64, binary.LittleEndian)
	var serr *SizeError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Equal(t, int64(64), serr.Expected)
	assert.Equal(t, int64(32), serr.Actual)

	_, err = Read(path, 0, Float32, binary.LittleEndian)
	assert.Error(t, err)
}

func TestParsePrecision(t *testing.T) {
	for _, prec := range []Precision{Int32, Float32, Float64} {
		got, err := ParsePrecision(prec.String())
		require.NoError(t, err)
		assert.Equal(t, prec, got)
	}
	_, err := ParsePrecision("half")
	assert.Error(t, err)
}
