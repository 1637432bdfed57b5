package wave

import (
	"context"
	"fmt"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/field"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/metrics"
)

// Advance2D writes one leapfrog step into next using the 5-point Laplacian
//
//	lap[i][j] = (cur[i][j+1] - 2 cur[i][j] + cur[i][j-1])/dy^2
//	          + (cur[i+1][j] - 2 cur[i][j] + cur[i-1][j])/dx^2
//
// over interior cells only; all four edges are zeroed unconditionally.
func Advance2D(next, cur, prev [][]float64, dt, dx, dy, c, omega0 float64) {
	nx := len(cur)
	ny := len(cur[0])
	dt2 := dt * dt
	c2 := c * c
	invDx2 := 1 / (dx * dx)
	invDy2 := 1 / (dy * dy)
	w2 := omega0 * omega0

	for i := 1; i < nx-1; i++ {
		for j := 1; j < ny-1; j++ {
			lap := (cur[i][j+1]-2*cur[i][j]+cur[i][j-1])*invDy2 +
				(cur[i+1][j]-2*cur[i][j]+cur[i-1][j])*invDx2
			next[i][j] = 2*cur[i][j] - prev[i][j] + dt2*(c2*lap-w2*cur[i][j])
		}
	}
	for j := 0; j < ny; j++ {
		next[0][j] = 0
		next[nx-1][j] = 0
	}
	for i := 0; i < nx; i++ {
		next[i][0] = 0
		next[i][ny-1] = 0
	}
}

// Engine2D drives a 2D run, recording the energy functional at every saved
// snapshot.
type Engine2D struct {
	grid    grid.Spec2D
	phys    grid.Physics
	dt      float64
	state   *field.State2D
	scratch [][]float64
}

func NewEngine2D(g grid.Spec2D, phys grid.Physics, policy Policy, initial [][]float64) (*Engine2D, error) {
	if len(initial) != g.Nx || len(initial[0]) != g.Ny {
		return nil, fmt.Errorf("wave: initial condition is %dx%d, grid is %dx%d: %w",
			len(initial), len(initial[0]), g.Nx, g.Ny, grid.ErrTooFewPoints)
	}
	return &Engine2D{
		grid:    g,
		phys:    phys,
		dt:      policy.Dt2D(g, phys),
		state:   field.NewState2D(initial),
		scratch: field.Zeros2D(g.Nx, g.Ny),
	}, nil
}

func (e *Engine2D) Dt() float64           { return e.dt }
func (e *Engine2D) Field() *field.State2D { return e.state }

func (e *Engine2D) Step() {
	Advance2D(e.scratch, e.state.Current(), e.state.Previous(),
		e.dt, e.grid.Dx, e.grid.Dy, e.phys.C, e.phys.Omega0)
	e.scratch = e.state.Rotate(e.scratch)
}

func (e *Engine2D) energy() float64 {
	return metrics.Total(e.state.Current(), e.state.Previous(),
		e.dt, e.grid.Dx, e.grid.Dy, e.phys.Omega0)
}

// Run mirrors Engine1D.Run with the energy functional evaluated at every
// saved snapshot, including the initial one (which carries zero kinetic
// energy since previous == current at t=0).
func (e *Engine2D) Run(ctx context.Context, steps, saveEvery int) (*Result2D, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("wave: steps must be positive, got %d", steps)
	}
	if saveEvery <= 0 {
		return nil, fmt.Errorf("wave: saveEvery must be positive, got %d", saveEvery)
	}

	res := &Result2D{
		Times:     make([]float64, 0, steps/saveEvery+1),
		Snapshots: make([][][]float64, 0, steps/saveEvery+1),
		Amplitude: make([]float64, 0, steps+1),
		Energy:    make([]float64, 0, steps/saveEvery+1),
		Dt:        e.dt,
	}

	res.Times = append(res.Times, 0)
	res.Snapshots = append(res.Snapshots, e.state.Snapshot())
	res.Amplitude = append(res.Amplitude, maxAbs2D(e.state.Current()))
	res.Energy = append(res.Energy, e.energy())

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
			res.Energy = append(res.Energy, e.energy())
		}
		res.Amplitude = append(res.Amplitude, maxAbs2D(e.state.Current()))
	}

	return res, nil
}

func maxAbs2D(phi [][]float64) float64 {
	m := 0.0
	for i := range phi {
		if v := maxAbs(phi[i]); v > m {
			m = v
		}
	}
	return m
}
