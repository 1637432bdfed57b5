package wave

import (
	"context"
	"testing"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/field"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
)

func gaussianRun2D(t *testing.T, nx, ny, steps, saveEvery int, cfl float64) *Result2D {
	t.Helper()
	g, err := grid.New2D(20.0, 20.0, nx, ny)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	phys, err := grid.NewPhysics(1.0, 2.0)
	if err != nil {
		t.Fatalf("physics: %v", err)
	}
	initial := field.Gaussian2D(g, g.Lx/2, g.Ly/2, 1.0, 1.0)
	eng, err := NewEngine2D(g, phys, Policy{CFL: cfl}, initial)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	res, err := eng.Run(context.Background(), steps, saveEvery)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestEngine2DEdgeInvariant(t *testing.T) {
	res := gaussianRun2D(t, 80, 80, 60, 10, 0.5)

	for si, snap := range res.Snapshots {
		nx, ny := len(snap), len(snap[0])
		for j := 0; j < ny; j++ {
			if snap[0][j] != 0 || snap[nx-1][j] != 0 {
				t.Fatalf("snapshot %d: x edges not zero at j=%d", si, j)
			}
		}
		for i := 0; i < nx; i++ {
			if snap[i][0] != 0 || snap[i][ny-1] != 0 {
				t.Fatalf("snapshot %d: y edges not zero at i=%d", si, i)
			}
		}
	}
}

func TestEngine2DEnergyConservation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 200x200 conservation run in short mode")
	}
	res := gaussianRun2D(t, 200, 200, 150, 10, 0.5)

	e0 := res.Energy[0]
	if e0 <= 0 {
		t.Fatalf("expected positive initial energy, got %g", e0)
	}
	for i, e := range res.Energy {
		drift := (e - e0) / e0
		if drift < 0 {
			drift = -drift
		}
		if drift > 0.05 {
			t.Fatalf("snapshot %d: relative energy drift %.4f exceeds 5%%", i, drift)
		}
	}
}

func TestEngine2DEnergyAlignment(t *testing.T) {
	res := gaussianRun2D(t, 50, 50, 40, 10, 0.5)

	if len(res.Energy) != len(res.Snapshots) {
		t.Errorf("energy record (%d) not aligned with snapshots (%d)",
			len(res.Energy), len(res.Snapshots))
	}
	if len(res.Amplitude) != 41 {
		t.Errorf("expected dense amplitude trace of 41, got %d", len(res.Amplitude))
	}
}

func TestEngine2DDeterministicReplay(t *testing.T) {
	a := gaussianRun2D(t, 50, 50, 30, 5, 0.5)
	b := gaussianRun2D(t, 50, 50, 30, 5, 0.5)

	for s := range a.Snapshots {
		for i := range a.Snapshots[s] {
			for j := range a.Snapshots[s][i] {
				if a.Snapshots[s][i][j] != b.Snapshots[s][i][j] {
					t.Fatalf("snapshot %d diverges at (%d,%d)", s, i, j)
				}
			}
		}
	}
}

func TestEngine2DRingRun(t *testing.T) {
	g, _ := grid.New2D(20.0, 20.0, 60, 60)
	phys, _ := grid.NewPhysics(1.0, 3.0)
	initial, err := field.Initial2D(g, field.InitialRing, field.Pulse{Width: 0.5, Amplitude: 1.0, Radius: 3.0})
	if err != nil {
		t.Fatalf("initial: %v", err)
	}
	eng, err := NewEngine2D(g, phys, Policy{CFL: 0.5}, initial)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	res, err := eng.Run(context.Background(), 50, 10)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.StepsTaken != 50 {
		t.Errorf("expected 50 steps, got %d", res.StepsTaken)
	}
}

func TestAdvance2DNullField(t *testing.T) {
	nx, ny := 20, 20
	next := field.Zeros2D(nx, ny)
	cur := field.Zeros2D(nx, ny)
	prev := field.Zeros2D(nx, ny)

	Advance2D(next, cur, prev, 0.01, 0.1, 0.1, 1.0, 0)

	for i := range next {
		for j := range next[i] {
			if next[i][j] != 0 {
				t.Fatalf("next[%d][%d] = %g, want exactly 0", i, j, next[i][j])
			}
		}
	}
}
