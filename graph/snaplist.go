package graph

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// SnapList gives the scale factor of every snapshot in a simulation.
type SnapList struct {
	Scales []float64
}

// ReadSnapList reads a text file whose first column is the scale factor of
// each snapshot, one snapshot per line in order. This is the format of the
// '.a_list' files that accompany LHaloTree outputs.
func ReadSnapList(fname string) (*SnapList, error) {
	cols, err := table.ReadTable(fname, []int{0}, nil)
	if err != nil {
		return nil, err
	}
	for i, a := range cols[0] {
		if a <= 0 {
			return nil, fmt.Errorf(
				"Snapshot %d in %s has a non-positive scale factor, %g.",
				i, fname, a,
			)
		}
	}
	return &SnapList{cols[0]}, nil
}

// Redshift returns the redshift of a snapshot, if it is in the list.
func (sl *SnapList) Redshift(snap int32) (float64, bool) {
	if snap < 0 || int(snap) >= len(sl.Scales) {
		return 0, false
	}
	return 1/sl.Scales[snap] - 1, true
}
