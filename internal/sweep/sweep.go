// Package sweep runs independent parameter sweeps over the resonant
// frequency. Each sweep point owns its grid, field and engine, so the
// fan-out is embarrassingly parallel with no shared mutable state.
package sweep

import (
	"context"
	"sync"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/dispersion"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/field"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/wave"
)

// Spec describes one 1D sweep: the shared grid/pulse configuration and the
// omega0 values to cover.
type Spec struct {
	Grid       grid.Spec1D
	C          float64
	Omega0s    []float64
	CFL        float64
	PulseWidth float64
	Steps      int
	SaveEvery  int
}

// Point is the outcome at one omega0 value.
type Point struct {
	Omega0 float64
	Bundle *dispersion.RunBundle
}

// Run1D executes every sweep point concurrently and returns them in input
// order. The first error (typically context cancellation) wins; partial
// points are discarded.
func Run1D(ctx context.Context, s Spec) ([]Point, error) {
	points := make([]Point, len(s.Omega0s))
	errs := make([]error, len(s.Omega0s))

	var wg sync.WaitGroup
	for idx, omega0 := range s.Omega0s {
		wg.Add(1)
		go func(idx int, omega0 float64) {
			defer wg.Done()

			phys, err := grid.NewPhysics(s.C, omega0)
			if err != nil {
				errs[idx] = err
				return
			}
			initial := field.Gaussian1D(s.Grid, s.Grid.Length/2, s.PulseWidth, 1.0)
			eng, err := wave.NewEngine1D(s.Grid, phys, wave.Policy{CFL: s.CFL}, initial)
			if err != nil {
				errs[idx] = err
				return
			}
			res, err := eng.Run(ctx, s.Steps, s.SaveEvery)
			if err != nil {
				errs[idx] = err
				return
			}
			points[idx] = Point{
				Omega0: omega0,
				Bundle: dispersion.FromRun1D(s.Grid, phys, s.PulseWidth, res),
			}
		}(idx, omega0)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}
