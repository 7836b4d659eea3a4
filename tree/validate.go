package tree

import (
	"fmt"

	"github.com/phil-mansfield/lhalotree/io"
)

// InvalidError describes a tree which breaks one of the LHaloTree
// invariants.
type InvalidError struct {
	Tree, Halo int
	Msg        string
}

func (err *InvalidError) Error() string {
	return fmt.Sprintf("Tree %d, halo %d: %s.", err.Tree, err.Halo, err.Msg)
}

// Validate checks that t's root halo has no descendant, no next progenitor,
// and is at snapshot rootSnap, and that every linkage field is either -1 or
// an index into t. rootSnap < 0 skips the snapshot check.
func Validate(t *io.Tree, rootSnap int) error {
	hs := t.Halos
	if len(hs) == 0 {
		return nil
	}

	root := &hs[0]
	if root.Descendant != -1 {
		return &InvalidError{t.Index, 0, fmt.Sprintf(
			"the root halo has descendant %d instead of -1", root.Descendant,
		)}
	} else if root.NextProgenitor != -1 {
		return &InvalidError{t.Index, 0, fmt.Sprintf(
			"the root halo has next progenitor %d instead of -1",
			root.NextProgenitor,
		)}
	} else if rootSnap >= 0 && int(root.SnapNum) != rootSnap {
		return &InvalidError{t.Index, 0, fmt.Sprintf(
			"the root halo is at snapshot %d instead of %d",
			root.SnapNum, rootSnap,
		)}
	}

	for i := range hs {
		h := &hs[i]
		links := []struct {
			name string
			val  int32
		}{
			{"Descendant", h.Descendant},
			{"FirstProgenitor", h.FirstProgenitor},
			{"NextProgenitor", h.NextProgenitor},
			{"FirstHaloInFOFgroup", h.FirstHaloInFOFgroup},
			{"NextHaloInFOFgroup", h.NextHaloInFOFgroup},
		}
		for _, link := range links {
			if link.val != -1 && !valid(hs, link.val) {
				return &InvalidError{t.Index, i, fmt.Sprintf(
					"%s is %d, outside a tree of %d halos",
					link.name, link.val, len(hs),
				)}
			}
		}
	}

	return nil
}
