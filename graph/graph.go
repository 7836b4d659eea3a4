/*package graph builds the graph view of a merger tree: one node per halo and
one edge from each halo to its descendant.
*/
package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/phil-mansfield/lhalotree/io"
)

// Node is a single halo in a Graph.
type Node struct {
	Halo    int // Index of the halo in its tree
	Snap    int32
	Mass    float64 // Msun
	LogMass float64 // log10(Mass). -Inf if Mass is zero.
	Color   RGB
	Size    float64
}

// Edge connects a halo to its descendant.
type Edge struct {
	From, To int
}

// Graph is the graph view of a single tree. Nodes and Edges are in halo
// order, but callers shouldn't rely on that.
type Graph struct {
	Nodes []Node
	Edges []Edge
	index map[int]int
}

// SnapSet decides which snapshots are included in a Graph. A nil SnapSet
// includes every snapshot.
type SnapSet interface {
	Contains(snap int32) bool
}

type snapRange struct {
	lo, hi int32
}

// SnapRange returns the SnapSet containing every snapshot in [lo, hi]. It is
// empty if hi < lo.
func SnapRange(lo, hi int32) SnapSet {
	return snapRange{lo, hi}
}

func (r snapRange) Contains(snap int32) bool {
	return snap >= r.lo && snap <= r.hi
}

// Snaps is a SnapSet listing its snapshots explicitly.
type Snaps map[int32]bool

func (set Snaps) Contains(snap int32) bool { return set[snap] }

func includes(set SnapSet, snap int32) bool {
	return set == nil || set.Contains(snap)
}

// Build returns the graph view of the halos hs, including only halos at
// snapshots in snaps. Masses are computed with the parameters in sim and
// colors and sizes come from style. A nil style uses DefaultStyle.
func Build(
	hs []io.Halo, snaps SnapSet, sim *io.SimulationConfig, style *Style,
) (*Graph, error) {
	if sim == nil {
		return nil, fmt.Errorf("A simulation configuration is required.")
	}
	if style == nil {
		style = DefaultStyle()
	}

	g := &Graph{index: map[int]int{}}
	for i := range hs {
		h := &hs[i]
		if !includes(snaps, h.SnapNum) {
			continue
		}

		mass := Mass(h, sim)
		logMass := math.Inf(-1)
		if mass > 0 {
			logMass = math.Log10(mass)
		}

		g.index[i] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{
			Halo: i, Snap: h.SnapNum, Mass: mass, LogMass: logMass,
			Color: style.Color(logMass), Size: style.Size(logMass),
		})
	}

	for _, node := range g.Nodes {
		desc := hs[node.Halo].Descendant
		if desc < 0 || int(desc) >= len(hs) {
			continue
		}
		if _, ok := g.index[int(desc)]; !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{From: node.Halo, To: int(desc)})
	}

	return g, nil
}

// Lookup returns the node for halo i, if it is in the graph.
func (g *Graph) Lookup(i int) (*Node, bool) {
	j, ok := g.index[i]
	if !ok {
		return nil, false
	}
	return &g.Nodes[j], true
}

// Rank is the set of halos in a Graph at a single snapshot, in the order
// they were found.
type Rank struct {
	Snap  int32
	Halos []int
}

// Ranks groups the nodes of g by snapshot. Ranks are sorted by snapshot and
// halos within a rank keep their order in g.Nodes.
func Ranks(g *Graph) []Rank {
	idx := map[int32]int{}
	ranks := []Rank{}
	for _, node := range g.Nodes {
		j, ok := idx[node.Snap]
		if !ok {
			j = len(ranks)
			idx[node.Snap] = j
			ranks = append(ranks, Rank{Snap: node.Snap})
		}
		ranks[j].Halos = append(ranks[j].Halos, node.Halo)
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Snap < ranks[j].Snap
	})
	return ranks
}
