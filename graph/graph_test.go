package graph

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/lhalotree/io"
)

func testSim() *io.SimulationConfig {
	sim := &io.SimulationConfig{HubbleH: 0.5, ParticleMass: 0.01, RootSnap: 3}
	if err := sim.CheckInit("test"); err != nil {
		panic(err)
	}
	return sim
}

// testTree is a root at snapshot 3 with two progenitors at snapshot 2, one
// of which has a progenitor at snapshot 1 with no Mvir.
func testTree() []io.Halo {
	hs := []io.Halo{
		{Descendant: -1, SnapNum: 3, Mvir: 10, Len: 1000},
		{Descendant: 0, SnapNum: 2, Mvir: 1, Len: 100},
		{Descendant: 1, SnapNum: 1, Mvir: 0, Len: 100},
		{Descendant: 0, SnapNum: 2, Mvir: 2, Len: 200},
	}
	return hs
}

func TestMass(t *testing.T) {
	sim := testSim()
	hs := testTree()

	assert.InDelta(t, 10*1e10/0.5, Mass(&hs[0], sim), 1)
	// Mvir = 0 falls back to the particle count.
	assert.InDelta(t, 100*0.01*1e10/0.5, Mass(&hs[2], sim), 1)

	h := io.Halo{Mvir: 1e-25, Len: 7}
	assert.InDelta(t, 7*0.01*1e10/0.5, Mass(&h, sim), 1)

	sim.MassEpsilon = 1e-30
	assert.InDelta(t, 1e-25*1e10/0.5, Mass(&h, sim), 1e-20)
}

func TestBuild(t *testing.T) {
	hs := testTree()
	g, err := Build(hs, nil, testSim(), nil)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 4)
	assert.ElementsMatch(t, []Edge{{1, 0}, {2, 1}, {3, 0}}, g.Edges)

	node, ok := g.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, int32(1), node.Snap)
	assert.InDelta(t, 2e10, node.Mass, 1)
	assert.InDelta(t, math.Log10(2e10), node.LogMass, 1e-9)
	assert.False(t, math.IsInf(node.LogMass, 0))
}

func TestBuildSnapshots(t *testing.T) {
	hs := testTree()
	g, err := Build(hs, SnapRange(2, 3), testSim(), nil)
	require.NoError(t, err)

	halos := []int{}
	for _, node := range g.Nodes {
		halos = append(halos, node.Halo)
	}
	assert.ElementsMatch(t, []int{0, 1, 3}, halos)
	// The edge 2 -> 1 goes away with halo 2.
	assert.ElementsMatch(t, []Edge{{1, 0}, {3, 0}}, g.Edges)

	_, ok := g.Lookup(2)
	assert.False(t, ok)

	g, err = Build(hs, SnapRange(1, 2), testSim(), nil)
	require.NoError(t, err)
	// Edges into the excluded root are dropped too.
	assert.ElementsMatch(t, []Edge{{2, 1}}, g.Edges)

	g, err = Build(hs, Snaps{}, testSim(), nil)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 0)
	assert.Len(t, g.Edges, 0)

	g, err = Build(hs, Snaps{1: true, 3: true}, testSim(), nil)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 0)
}

func TestSnapRange(t *testing.T) {
	table := []struct {
		lo, hi int32
		in     []int32
		out    []int32
	}{
		{2, 3, []int32{2, 3}, []int32{1, 4}},
		{5, 5, []int32{5}, []int32{4, 6}},
		{4, 3, nil, []int32{3, 4}},
		{math.MaxInt32 - 2, math.MaxInt32,
			[]int32{math.MaxInt32 - 2, math.MaxInt32}, []int32{0, math.MaxInt32 - 3}},
		{0, math.MaxInt32, []int32{0, 98, math.MaxInt32}, []int32{-1, math.MinInt32}},
	}

	for _, line := range table {
		set := SnapRange(line.lo, line.hi)
		for _, snap := range line.in {
			assert.True(t, set.Contains(snap), "[%d, %d] %d", line.lo, line.hi, snap)
		}
		for _, snap := range line.out {
			assert.False(t, set.Contains(snap), "[%d, %d] %d", line.lo, line.hi, snap)
		}
	}
}

func TestBuildZeroMass(t *testing.T) {
	hs := []io.Halo{{Descendant: 5, SnapNum: 0}}
	g, err := Build(hs, nil, testSim(), nil)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, 0.0, g.Nodes[0].Mass)
	assert.True(t, math.IsInf(g.Nodes[0].LogMass, -1))
	assert.Equal(t, DefaultStyle().MinSize, g.Nodes[0].Size)
	// Descendant outside the tree.
	assert.Len(t, g.Edges, 0)

	_, err = Build(hs, nil, nil, nil)
	assert.Error(t, err)
}

func TestRanks(t *testing.T) {
	hs := []io.Halo{
		{Descendant: -1, SnapNum: 5},
		{Descendant: 0, SnapNum: 4},
		{Descendant: 1, SnapNum: 3},
		{Descendant: 0, SnapNum: 4},
		{Descendant: 3, SnapNum: 3},
		{Descendant: 0, SnapNum: 4},
	}
	g, err := Build(hs, nil, testSim(), nil)
	require.NoError(t, err)

	assert.Equal(t, []Rank{
		{3, []int{2, 4}},
		{4, []int{1, 3, 5}},
		{5, []int{0}},
	}, Ranks(g))
}

func TestStyle(t *testing.T) {
	style, err := NewStyle(&io.DisplayConfig{
		MinLogMass: 8, MaxLogMass: 12, MinSize: 1, MaxSize: 3,
		LowColor: "#000000", HighColor: "#ff8040",
	})
	require.NoError(t, err)

	table := []struct {
		logMass float64
		color   string
		size    float64
	}{
		{8, "#000000", 1},
		{10, "#804020", 2},
		{12, "#ff8040", 3},
		{4, "#000000", 1},
		{20, "#ff8040", 3},
		{math.Inf(-1), "#000000", 1},
		{math.NaN(), "#000000", 1},
	}

	for _, line := range table {
		assert.Equal(t, line.color, style.Color(line.logMass).Hex(), "%g", line.logMass)
		assert.InDelta(t, line.size, style.Size(line.logMass), 1e-9, "%g", line.logMass)
	}

	_, err = NewStyle(&io.DisplayConfig{
		MinLogMass: 8, MaxLogMass: 12, LowColor: "blue", HighColor: "#ffffff",
	})
	assert.Error(t, err)
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("#2c7bb6")
	require.NoError(t, err)
	assert.Equal(t, RGB{0x2c, 0x7b, 0xb6}, c)

	c, err = ParseRGB("D7191C")
	require.NoError(t, err)
	assert.Equal(t, "#d7191c", c.Hex())

	for _, str := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := ParseRGB(str)
		assert.Error(t, err, str)
	}
}

func TestReadSnapList(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "tiny.a_list")
	require.NoError(t, os.WriteFile(fname, []byte("0.25\n0.5\n1.0\n"), 0644))

	sl, err := ReadSnapList(fname)
	require.NoError(t, err)
	require.Len(t, sl.Scales, 3)

	z, ok := sl.Redshift(0)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, z, 1e-9)
	z, ok = sl.Redshift(2)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, z, 1e-9)
	_, ok = sl.Redshift(3)
	assert.False(t, ok)
}
