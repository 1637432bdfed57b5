package storage

import (
	"context"
	"testing"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/dispersion"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/field"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/wave"
)

func bundle1D(t *testing.T) *dispersion.RunBundle {
	t.Helper()
	g, _ := grid.New1D(10.0, 100)
	phys, _ := grid.NewPhysics(1.0, 2.0)
	eng, err := wave.NewEngine1D(g, phys, wave.Policy{CFL: 0.9}, field.Gaussian1D(g, 5.0, 0.1, 1.0))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	res, err := eng.Run(context.Background(), 50, 10)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return dispersion.FromRun1D(g, phys, 0.1, res)
}

func bundle2D(t *testing.T) *dispersion.RunBundle {
	t.Helper()
	g, _ := grid.New2D(20.0, 20.0, 40, 40)
	phys, _ := grid.NewPhysics(1.0, 2.0)
	initial := field.Gaussian2D(g, 10.0, 10.0, 1.0, 1.0)
	eng, err := wave.NewEngine2D(g, phys, wave.Policy{CFL: 0.5}, initial)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	res, err := eng.Run(context.Background(), 30, 10)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return dispersion.FromRun2D(g, phys, 1.0, res)
}

func TestSaveAndReload1D(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	orig := bundle1D(t)
	runID, err := store.Save(orig)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.LoadBundle(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Dim != 1 || loaded.Nx != orig.Nx || loaded.C != orig.C ||
		loaded.Omega0 != orig.Omega0 || loaded.Dt != orig.Dt {
		t.Errorf("scalar parameters not round-tripped: %+v", loaded)
	}
	if len(loaded.Snapshots1D) != len(orig.Snapshots1D) {
		t.Fatalf("expected %d snapshots, got %d", len(orig.Snapshots1D), len(loaded.Snapshots1D))
	}
	for s := range orig.Snapshots1D {
		for i := range orig.Snapshots1D[s] {
			if loaded.Snapshots1D[s][i] != orig.Snapshots1D[s][i] {
				t.Fatalf("snapshot %d differs at %d", s, i)
			}
		}
	}
	if len(loaded.Amplitude) != len(orig.Amplitude) {
		t.Errorf("amplitude trace: expected %d entries, got %d", len(orig.Amplitude), len(loaded.Amplitude))
	}
}

func TestSaveAndReload2D(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	orig := bundle2D(t)
	runID, err := store.Save(orig)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.LoadBundle(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Snapshots2D) != len(orig.Snapshots2D) {
		t.Fatalf("expected %d snapshots, got %d", len(orig.Snapshots2D), len(loaded.Snapshots2D))
	}
	last := len(orig.Snapshots2D) - 1
	for i := range orig.Snapshots2D[last] {
		for j := range orig.Snapshots2D[last][i] {
			if loaded.Snapshots2D[last][i][j] != orig.Snapshots2D[last][i][j] {
				t.Fatalf("final snapshot differs at (%d,%d)", i, j)
			}
		}
	}
	if len(loaded.Energy) != len(orig.Energy) {
		t.Errorf("energy record: expected %d entries, got %d", len(orig.Energy), len(loaded.Energy))
	}

	// A reloaded bundle feeds the analyzer exactly like a live one.
	if _, err := loaded.SpectrumOfFinal(); err != nil {
		t.Errorf("analyzer rejected reloaded bundle: %v", err)
	}
}

func TestListRuns(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := store.Save(bundle1D(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(bundle2D(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	store := New(t.TempDir() + "/missing")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, err := store.LoadBundle("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}
