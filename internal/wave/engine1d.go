// Package wave implements the explicit leapfrog integrators for the
// Klein-Gordon equation d2phi/dt2 = c^2 laplacian(phi) - omega0^2 phi on
// regular grids with Dirichlet-zero boundaries.
package wave

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/field"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
)

// Advance1D writes one leapfrog step into next:
//
//	next[i] = 2 cur[i] - prev[i] + dt^2 (c^2 (cur[i+1] - 2 cur[i] + cur[i-1])/dx^2 - omega0^2 cur[i])
//
// for interior i, with both boundary cells zeroed unconditionally. All three
// slices must share a length of at least 3.
func Advance1D(next, cur, prev []float64, dt, dx, c, omega0 float64) {
	n := len(cur)
	dt2 := dt * dt
	c2dx2 := c * c / (dx * dx)
	w2 := omega0 * omega0

	for i := 1; i < n-1; i++ {
		lap := c2dx2 * (cur[i+1] - 2*cur[i] + cur[i-1])
		next[i] = 2*cur[i] - prev[i] + dt2*(lap-w2*cur[i])
	}
	next[0] = 0
	next[n-1] = 0
}

// Engine1D drives a 1D run. It exclusively owns its field buffers; a fresh
// engine is needed per run.
type Engine1D struct {
	grid    grid.Spec1D
	phys    grid.Physics
	dt      float64
	state   *field.State1D
	scratch []float64
}

func NewEngine1D(g grid.Spec1D, phys grid.Physics, policy Policy, initial []float64) (*Engine1D, error) {
	if len(initial) != g.Points {
		return nil, fmt.Errorf("wave: initial condition has %d points, grid has %d: %w",
			len(initial), g.Points, grid.ErrTooFewPoints)
	}
	return &Engine1D{
		grid:    g,
		phys:    phys,
		dt:      policy.Dt1D(g, phys),
		state:   field.NewState1D(initial),
		scratch: make([]float64, g.Points),
	}, nil
}

func (e *Engine1D) Dt() float64           { return e.dt }
func (e *Engine1D) Field() *field.State1D { return e.state }

// Step advances the field by one timestep, rotating the ring buffer.
func (e *Engine1D) Step() {
	Advance1D(e.scratch, e.state.Current(), e.state.Previous(),
		e.dt, e.grid.Spacing, e.phys.C, e.phys.Omega0)
	e.scratch = e.state.Rotate(e.scratch)
}

// Run performs steps updates, snapshotting at step 0 and every saveEvery
// steps and recording max|phi| at every step. It blocks until done; on
// context cancellation it returns the partial result with the ctx error.
// No NaN guarding is applied: an unstable CFL factor surfaces as divergence
// in the outputs, not as an engine error.
func (e *Engine1D) Run(ctx context.Context, steps, saveEvery int) (*Result1D, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("wave: steps must be positive, got %d", steps)
	}
	if saveEvery <= 0 {
		return nil, fmt.Errorf("wave: saveEvery must be positive, got %d", saveEvery)
	}

	res := &Result1D{
		Times:     make([]float64, 0, steps/saveEvery+1),
		Snapshots: make([][]float64, 0, steps/saveEvery+1),
		Amplitude: make([]float64, 0, steps+1),
		Dt:        e.dt,
	}

	res.Times = append(res.Times, 0)
	res.Snapshots = append(res.Snapshots, e.state.Snapshot())
	res.Amplitude = append(res.Amplitude, maxAbs(e.state.Current()))

	for t := 1; t <= steps; t++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		e.Step()
		res.StepsTaken++

		if t%saveEvery == 0 {
			res.Times = append(res.Times, float64(t)*e.dt)
			res.Snapshots = append(res.Snapshots, e.state.Snapshot())
		}
		res.Amplitude = append(res.Amplitude, maxAbs(e.state.Current()))
	}

	return res, nil
}

func maxAbs(x []float64) float64 {
	return floats.Norm(x, math.Inf(1))
}
