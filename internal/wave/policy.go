package wave

import (
	"math"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
)

// Explicit-scheme CFL bounds for the leapfrog stencils. Factors at or above
// the limit are accepted by the engines but diverge; keeping runs below the
// bound is the caller's responsibility.
const (
	StableLimit1D = 1.0
	StableLimit2D = 1 / math.Sqrt2
)

// Policy selects the timestep from a CFL factor: dt = factor * dx / c,
// using the smaller spacing in 2D.
type Policy struct {
	CFL float64
}

func (p Policy) Dt1D(g grid.Spec1D, phys grid.Physics) float64 {
	return p.CFL * g.Spacing / phys.C
}

func (p Policy) Dt2D(g grid.Spec2D, phys grid.Physics) float64 {
	return p.CFL * math.Min(g.Dx, g.Dy) / phys.C
}
