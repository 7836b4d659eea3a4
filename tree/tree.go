/*package tree contains functions for walking LHaloTree merger trees.

All functions take the halo array of a single tree and work with indices into
it. -1 is used wherever there is no such halo. None of these functions trust
the linkage fields: every walk is bounded by the size of the tree, so a
corrupt tree can give wrong answers but can't cause an infinite loop or an
out-of-range access.
*/
package tree

import (
	"fmt"

	"github.com/phil-mansfield/lhalotree/io"
)

func valid(hs []io.Halo, i int32) bool { return i >= 0 && int(i) < len(hs) }

// Next returns the halo after i in a depth-first walk of the progenitor tree,
// or -1 if i is the last halo in the walk.
//
// The walk goes to the first progenitor if there is one and to the next
// progenitor otherwise. If there is neither, it climbs descendants until it
// finds a halo with a next progenitor and returns that progenitor.
func Next(hs []io.Halo, i int) int {
	if i < 0 || i >= len(hs) {
		return -1
	}

	h := &hs[i]
	if valid(hs, h.FirstProgenitor) {
		return int(h.FirstProgenitor)
	} else if valid(hs, h.NextProgenitor) {
		return int(h.NextProgenitor)
	}

	curr := i
	for steps := 0; steps < len(hs); steps++ {
		h = &hs[curr]
		if h.NextProgenitor != -1 {
			break
		}
		if !valid(hs, h.Descendant) {
			return -1
		}
		curr = int(h.Descendant)
	}

	if valid(hs, hs[curr].NextProgenitor) {
		return int(hs[curr].NextProgenitor)
	}
	return -1
}

// Walk calls fn on start and then on every halo after it in the depth-first
// walk until fn returns false or the walk ends. At most len(hs) halos are
// visited. Walk returns the number of halos visited.
func Walk(hs []io.Halo, start int, fn func(i int) bool) int {
	n := 0
	for i := start; i != -1 && n < len(hs); i = Next(hs, i) {
		if i < 0 || i >= len(hs) {
			break
		}
		n++
		if !fn(i) {
			break
		}
	}
	return n
}

// Order returns the depth-first walk starting at start.
func Order(hs []io.Halo, start int) []int {
	out := []int{}
	Walk(hs, start, func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// Progenitors returns the direct progenitors of halo i, starting with its
// first progenitor.
func Progenitors(hs []io.Halo, i int) []int {
	out := []int{}
	if i < 0 || i >= len(hs) {
		return out
	}
	for p := hs[i].FirstProgenitor; valid(hs, p) && len(out) < len(hs); {
		out = append(out, int(p))
		p = hs[p].NextProgenitor
	}
	return out
}

// MainBranch returns halo i followed by its chain of first progenitors.
func MainBranch(hs []io.Halo, i int) []int {
	out := []int{}
	if i < 0 || i >= len(hs) {
		return out
	}
	for p := int32(i); valid(hs, p) && len(out) < len(hs); {
		out = append(out, int(p))
		p = hs[p].FirstProgenitor
	}
	return out
}

// FOFGroup returns every halo in the same FoF group as halo i, starting with
// the group's central halo.
func FOFGroup(hs []io.Halo, i int) []int {
	out := []int{}
	if i < 0 || i >= len(hs) {
		return out
	}
	for p := hs[i].FirstHaloInFOFgroup; valid(hs, p) && len(out) < len(hs); {
		out = append(out, int(p))
		p = hs[p].NextHaloInFOFgroup
	}
	return out
}

// Histories returns the main branch of each of the given halos along with the
// snapshot of every halo on it.
func Histories(
	hs []io.Halo, roots []int,
) (ids [][]int, snaps [][]int, err error) {

	ids, snaps = make([][]int, len(roots)), make([][]int, len(roots))
	for i, root := range roots {
		if root < 0 || root >= len(hs) {
			return nil, nil, fmt.Errorf(
				"Halo %d not found in a tree with %d halos.", root, len(hs),
			)
		}
		ids[i] = MainBranch(hs, root)
		snaps[i] = make([]int, len(ids[i]))
		for j, id := range ids[i] {
			snaps[i][j] = int(hs[id].SnapNum)
		}
	}

	return ids, snaps, nil
}
