package dispersion

import (
	"math"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
)

// RadialProfile bin-averages a 2D field by distance from the domain center,
// for inspecting ring propagation. Bins run from 0 to min(Lx, Ly)/2; empty
// bins report 0.
func RadialProfile(phi [][]float64, g grid.Spec2D, bins int) (r, mean []float64) {
	if bins < 1 {
		bins = 1
	}
	cx, cy := g.Lx/2, g.Ly/2
	rMax := math.Min(g.Lx, g.Ly) / 2
	width := rMax / float64(bins)

	sums := make([]float64, bins)
	counts := make([]int, bins)

	xs, ys := g.Mesh()
	for i := range phi {
		dx := xs[i] - cx
		for j := range phi[i] {
			dy := ys[j] - cy
			d := math.Hypot(dx, dy)
			bin := int(d / width)
			if bin >= bins {
				continue
			}
			sums[bin] += phi[i][j]
			counts[bin]++
		}
	}

	r = make([]float64, bins)
	mean = make([]float64, bins)
	for b := 0; b < bins; b++ {
		r[b] = (float64(b) + 0.5) * width
		if counts[b] > 0 {
			mean[b] = sums[b] / float64(counts[b])
		}
	}
	return r, mean
}

// VelocityCurves returns phase and group velocity over a wavenumber range:
// v_phase = omega/k, v_group = c^2 k / omega. kMin must be positive (the
// phase velocity diverges at k=0 for omega0 > 0).
func VelocityCurves(kMin, kMax float64, n int, c, omega0 float64) (k, phase, group []float64) {
	k = make([]float64, n)
	phase = make([]float64, n)
	group = make([]float64, n)
	step := (kMax - kMin) / float64(n-1)
	for i := 0; i < n; i++ {
		ki := kMin + float64(i)*step
		w := Theory(ki, c, omega0)
		k[i] = ki
		phase[i] = w / ki
		group[i] = c * c * ki / w
	}
	return k, phase, group
}
