// Package metrics provides run diagnostics: the discrete energy functional
// for 2D fields and a relative-drift tracker.
package metrics

import "math"

// Total computes the discrete field energy for a 2D snapshot pair.
//
// The kinetic term uses the forward difference (cur-prev)/dt as the velocity
// estimator. It is first-order accurate and carries an O(dt) bias; the
// conservation checks are calibrated against exactly this estimator, so it
// must not be swapped for a centered one.
func Total(cur, prev [][]float64, dt, dx, dy, omega0 float64) float64 {
	kinetic := 0.0
	for i := range cur {
		for j := range cur[i] {
			v := (cur[i][j] - prev[i][j]) / dt
			kinetic += v * v
		}
	}
	kinetic *= 0.5 * dx * dy

	gx := GradientX(cur, dx)
	gy := GradientY(cur, dy)
	w2 := omega0 * omega0

	potential := 0.0
	for i := range cur {
		for j := range cur[i] {
			potential += gx[i][j]*gx[i][j] + gy[i][j]*gy[i][j] + w2*cur[i][j]*cur[i][j]
		}
	}
	potential *= 0.5 * dx * dy

	return kinetic + potential
}

// GradientX differentiates along the first index (spacing dx): centered
// differences in the interior, one-sided at the two edges.
func GradientX(phi [][]float64, dx float64) [][]float64 {
	nx := len(phi)
	g := make([][]float64, nx)
	for i := range g {
		g[i] = make([]float64, len(phi[i]))
	}
	for j := range phi[0] {
		g[0][j] = (phi[1][j] - phi[0][j]) / dx
		g[nx-1][j] = (phi[nx-1][j] - phi[nx-2][j]) / dx
	}
	for i := 1; i < nx-1; i++ {
		for j := range phi[i] {
			g[i][j] = (phi[i+1][j] - phi[i-1][j]) / (2 * dx)
		}
	}
	return g
}

// GradientY differentiates along the second index (spacing dy).
func GradientY(phi [][]float64, dy float64) [][]float64 {
	g := make([][]float64, len(phi))
	for i := range phi {
		row := phi[i]
		ny := len(row)
		g[i] = make([]float64, ny)
		g[i][0] = (row[1] - row[0]) / dy
		g[i][ny-1] = (row[ny-1] - row[ny-2]) / dy
		for j := 1; j < ny-1; j++ {
			g[i][j] = (row[j+1] - row[j-1]) / (2 * dy)
		}
	}
	return g
}

// Drift tracks the maximum relative energy drift |E - E0| / E0 over a run.
type Drift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift() *Drift { return &Drift{} }

func (d *Drift) Observe(energy float64) {
	if d.samples == 0 {
		d.initial = energy
	}
	d.samples++
	if d.initial != 0 {
		drift := math.Abs(energy-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *Drift) Value() float64 { return d.maxDrift }

func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
