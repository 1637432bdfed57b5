package dispersion

import "github.com/Belowme77/Vibrational-Gravity-Theory/internal/wave"

// Classification is the advisory stable/unstable verdict for a CFL factor.
// It is a pure threshold check against the 2D limit; no simulation is
// re-run.
type Classification int

const (
	Unstable Classification = iota
	Stable
)

func (c Classification) String() string {
	if c == Stable {
		return "stable"
	}
	return "unstable"
}

// ClassifyCFL compares a CFL factor against the 2D stability limit 1/sqrt(2).
// Factors strictly below the limit are stable; the limit itself sits on the
// marginal boundary and is classified unstable, since the discrete scheme
// has no damping to absorb roundoff there.
func ClassifyCFL(factor float64) Classification {
	if factor < wave.StableLimit2D {
		return Stable
	}
	return Unstable
}

// ClassifyScan classifies a sequence of CFL factors.
func ClassifyScan(factors []float64) []Classification {
	out := make([]Classification, len(factors))
	for i, f := range factors {
		out[i] = ClassifyCFL(f)
	}
	return out
}
