package graph

import (
	"github.com/phil-mansfield/lhalotree/io"
)

// massUnit is the unit LHaloTree masses are stored in, Msun/h.
const massUnit = 1e10

// Mass returns the mass of h in Msun. Mvir is used unless it is below
// sim.MassEpsilon, in which case the mass is computed from the particle
// count. Some halo finders leave Mvir unset for very small halos.
func Mass(h *io.Halo, sim *io.SimulationConfig) float64 {
	if float64(h.Mvir) < sim.MassEpsilon {
		return float64(h.Len) * sim.ParticleMass * massUnit / sim.HubbleH
	}
	return float64(h.Mvir) * massUnit / sim.HubbleH
}
