package dispersion

import (
	"errors"
	"math"
	"testing"
)

func TestFitDecayRecoversParameters(t *testing.T) {
	// Noiseless data from A=3, tau=2, offset=0.5.
	n := 200
	ts := make([]float64, n)
	amp := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) * 0.05
		amp[i] = 3*math.Exp(-ts[i]/2) + 0.5
	}

	fit, err := FitDecay(ts, amp)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(fit.A-3) > 1e-4 {
		t.Errorf("A = %g, want 3", fit.A)
	}
	if math.Abs(fit.Tau-2) > 1e-4 {
		t.Errorf("tau = %g, want 2", fit.Tau)
	}
	if math.Abs(fit.Offset-0.5) > 1e-4 {
		t.Errorf("offset = %g, want 0.5", fit.Offset)
	}
	if fit.Residual > 1e-6 {
		t.Errorf("residual %g on noiseless data", fit.Residual)
	}
}

func TestFitDecayWithNoise(t *testing.T) {
	// Deterministic pseudo-noise; tau should still come out near 4.
	n := 300
	ts := make([]float64, n)
	amp := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) * 0.1
		noise := 0.01 * math.Sin(17.3*float64(i))
		amp[i] = 2*math.Exp(-ts[i]/4) + 0.1 + noise
	}

	fit, err := FitDecay(ts, amp)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(fit.Tau-4)/4 > 0.05 {
		t.Errorf("tau = %g, want ~4", fit.Tau)
	}
}

func TestFitDecayNonFinite(t *testing.T) {
	// The trace of a diverged run carries NaN; the fit must report the
	// distinct non-convergence outcome rather than aborting or defaulting.
	ts := []float64{0, 1, 2, 3, 4}
	amp := []float64{1, 0.5, math.NaN(), 0.1, 0.05}

	_, err := FitDecay(ts, amp)
	if !errors.Is(err, ErrNoConvergence) {
		t.Errorf("expected ErrNoConvergence, got %v", err)
	}
}

func TestFitDecayBadInput(t *testing.T) {
	if _, err := FitDecay([]float64{0, 1}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := FitDecay([]float64{0, 1, 2}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for too few samples")
	}
}

func TestFitEval(t *testing.T) {
	fit := DecayFit{A: 2, Tau: 1, Offset: 0.5}
	if math.Abs(fit.Eval(0)-2.5) > 1e-15 {
		t.Errorf("Eval(0) = %g, want 2.5", fit.Eval(0))
	}
}

func TestClassifyCFL(t *testing.T) {
	limit := 1 / math.Sqrt2

	tests := []struct {
		name   string
		factor float64
		want   Classification
	}{
		{"well below", 0.5, Stable},
		{"just below", limit - 1e-9, Stable},
		{"at the limit", limit, Unstable}, // marginal boundary, documented unstable
		{"just above", limit + 1e-9, Unstable},
		{"well above", 1.5, Unstable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCFL(tt.factor); got != tt.want {
				t.Errorf("ClassifyCFL(%g) = %v, want %v", tt.factor, got, tt.want)
			}
		})
	}
}

func TestClassifyScan(t *testing.T) {
	factors := []float64{0.1, 0.5, 0.9, 1.5}
	got := ClassifyScan(factors)
	want := []Classification{Stable, Stable, Unstable, Unstable}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("factor %g classified %v, want %v", factors[i], got[i], want[i])
		}
	}
}
