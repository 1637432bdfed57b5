package field

import (
	"errors"
	"math"
	"testing"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
)

func mustGrid1D(t *testing.T, l float64, n int) grid.Spec1D {
	t.Helper()
	g, err := grid.New1D(l, n)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func mustGrid2D(t *testing.T, lx, ly float64, nx, ny int) grid.Spec2D {
	t.Helper()
	g, err := grid.New2D(lx, ly, nx, ny)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestState1DRotate(t *testing.T) {
	s := NewState1D([]float64{1, 2, 3})

	if &s.Current()[0] == &s.Previous()[0] {
		t.Fatal("current and previous must not share storage")
	}

	next := []float64{4, 5, 6}
	oldCur := s.Current()
	scratch := s.Rotate(next)

	if &s.Previous()[0] != &oldCur[0] {
		t.Error("previous should alias the old current buffer")
	}
	if &s.Current()[0] != &next[0] {
		t.Error("current should alias the rotated-in buffer")
	}
	if len(scratch) != 3 {
		t.Errorf("expected reusable scratch of len 3, got %d", len(scratch))
	}
}

func TestState1DSnapshotIsCopy(t *testing.T) {
	s := NewState1D([]float64{1, 2, 3})
	snap := s.Snapshot()
	s.Current()[0] = 99
	if snap[0] != 1 {
		t.Error("snapshot must be independent of the live buffer")
	}
}

func TestGaussian1DPeakAtCenter(t *testing.T) {
	g := mustGrid1D(t, 10.0, 400)
	phi := Gaussian1D(g, 5.0, 0.1, 1.0)

	peak, peakIdx := 0.0, 0
	for i, v := range phi {
		if v > peak {
			peak, peakIdx = v, i
		}
	}
	if math.Abs(peak-1.0) > 1e-3 {
		t.Errorf("expected peak ~1 at center, got %g", peak)
	}
	x := g.Coords()[peakIdx]
	if math.Abs(x-5.0) > g.Spacing {
		t.Errorf("peak at x=%g, expected ~5", x)
	}
}

func TestGaussian2DSymmetry(t *testing.T) {
	g := mustGrid2D(t, 20.0, 20.0, 100, 100)
	phi := Gaussian2D(g, 10.0, 10.0, 1.0, 1.0)

	// Radial symmetry: equal offsets in x and y give equal values.
	if math.Abs(phi[60][50]-phi[50][60]) > 1e-12 {
		t.Errorf("expected symmetric values, got %g vs %g", phi[60][50], phi[50][60])
	}
}

func TestRing2DPeakAtRadius(t *testing.T) {
	g := mustGrid2D(t, 20.0, 20.0, 200, 200)
	phi := Ring2D(g, 10.0, 10.0, 3.0, 0.5, 1.0)

	// Center of the ring is a trough, radius 3 along +x is a crest.
	center := phi[100][100]
	xs, _ := g.Mesh()
	crestIdx := 0
	for i, x := range xs {
		if math.Abs(x-13.0) < g.Dx/2 {
			crestIdx = i
			break
		}
	}
	crest := phi[crestIdx][100]
	if crest < 0.9 {
		t.Errorf("expected crest ~1 at radius, got %g", crest)
	}
	if center > 0.01 {
		t.Errorf("expected trough at center, got %g", center)
	}
}

func TestSuperpose(t *testing.T) {
	g := mustGrid2D(t, 30.0, 30.0, 60, 60)
	a := Gaussian2D(g, 10.0, 15.0, 1.0, 0.7)
	b := Gaussian2D(g, 20.0, 15.0, 1.0, 0.7)
	sum := Superpose(a, b)

	for i := range sum {
		for j := range sum[i] {
			want := a[i][j] + b[i][j]
			if math.Abs(sum[i][j]-want) > 1e-15 {
				t.Fatalf("sum[%d][%d] = %g, want %g", i, j, sum[i][j], want)
			}
		}
	}

	// Superpose must not mutate its inputs.
	if a[30][30] == sum[30][30] && b[30][30] != 0 {
		t.Error("input field was mutated")
	}
}

func TestInitial2DUnknown(t *testing.T) {
	g := mustGrid2D(t, 20.0, 20.0, 50, 50)
	_, err := Initial2D(g, "vortex", Pulse{})
	if !errors.Is(err, ErrUnknownInitial) {
		t.Errorf("expected ErrUnknownInitial, got %v", err)
	}
}

func TestInitial2DDefaultsCentered(t *testing.T) {
	g := mustGrid2D(t, 20.0, 20.0, 101, 101)
	phi, err := Initial2D(g, InitialGaussian, Pulse{})
	if err != nil {
		t.Fatalf("Initial2D: %v", err)
	}

	peak, pi, pj := 0.0, 0, 0
	for i := range phi {
		for j := range phi[i] {
			if phi[i][j] > peak {
				peak, pi, pj = phi[i][j], i, j
			}
		}
	}
	xs, ys := g.Mesh()
	if math.Abs(xs[pi]-10.0) > g.Dx || math.Abs(ys[pj]-10.0) > g.Dy {
		t.Errorf("peak at (%g, %g), expected domain center", xs[pi], ys[pj])
	}
}
