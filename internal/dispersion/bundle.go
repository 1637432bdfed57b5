// Package dispersion verifies simulated fields against the theoretical
// dispersion relation omega^2 = c^2 k^2 + omega0^2 and provides stability
// and amplitude-decay diagnostics. Analyses are pure functions of a
// RunBundle; nothing here holds state across calls.
package dispersion

import (
	"errors"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/wave"
)

var (
	// ErrEmptyBundle indicates a bundle without snapshots.
	ErrEmptyBundle = errors.New("dispersion: bundle holds no snapshots")

	// ErrWrongDim indicates an analysis applied to the wrong dimensionality.
	ErrWrongDim = errors.New("dispersion: analysis does not match bundle dimensionality")
)

// RunBundle is the normalized run record every analysis consumes. It is
// built either in memory from a finished run (FromRun1D/FromRun2D) or
// reloaded from disk (storage.LoadBundle); both paths fill the same fields,
// so no analysis ever probes for optional keys.
type RunBundle struct {
	Dim int // 1 or 2

	// Scalar run parameters.
	L, Lx, Ly  float64
	Nx, Ny     int
	C, Omega0  float64
	Dx, Dy, Dt float64
	PulseWidth float64

	// Run outputs, immutable once the bundle exists.
	Times       []float64
	Snapshots1D [][]float64
	Snapshots2D [][][]float64
	Amplitude   []float64
	Energy      []float64
}

func FromRun1D(g grid.Spec1D, phys grid.Physics, pulseWidth float64, res *wave.Result1D) *RunBundle {
	return &RunBundle{
		Dim:         1,
		L:           g.Length,
		Nx:          g.Points,
		C:           phys.C,
		Omega0:      phys.Omega0,
		Dx:          g.Spacing,
		Dt:          res.Dt,
		PulseWidth:  pulseWidth,
		Times:       res.Times,
		Snapshots1D: res.Snapshots,
		Amplitude:   res.Amplitude,
	}
}

func FromRun2D(g grid.Spec2D, phys grid.Physics, pulseWidth float64, res *wave.Result2D) *RunBundle {
	return &RunBundle{
		Dim:         2,
		Lx:          g.Lx,
		Ly:          g.Ly,
		Nx:          g.Nx,
		Ny:          g.Ny,
		C:           phys.C,
		Omega0:      phys.Omega0,
		Dx:          g.Dx,
		Dy:          g.Dy,
		Dt:          res.Dt,
		PulseWidth:  pulseWidth,
		Times:       res.Times,
		Snapshots2D: res.Snapshots,
		Amplitude:   res.Amplitude,
		Energy:      res.Energy,
	}
}

// Final1D returns the last saved 1D snapshot.
func (b *RunBundle) Final1D() ([]float64, error) {
	if b.Dim != 1 {
		return nil, ErrWrongDim
	}
	if len(b.Snapshots1D) == 0 {
		return nil, ErrEmptyBundle
	}
	return b.Snapshots1D[len(b.Snapshots1D)-1], nil
}

// Final2D returns the last saved 2D snapshot.
func (b *RunBundle) Final2D() ([][]float64, error) {
	if b.Dim != 2 {
		return nil, ErrWrongDim
	}
	if len(b.Snapshots2D) == 0 {
		return nil, ErrEmptyBundle
	}
	return b.Snapshots2D[len(b.Snapshots2D)-1], nil
}

// VerifyDispersion runs the 1D spectral check on the final snapshot.
func (b *RunBundle) VerifyDispersion() (k, mag, omegaTheory []float64, err error) {
	phi, err := b.Final1D()
	if err != nil {
		return nil, nil, nil, err
	}
	k, mag, omegaTheory = Verify1D(phi, b.Dx, b.C, b.Omega0)
	return k, mag, omegaTheory, nil
}

// SpectrumOfFinal runs the 2D spectral analysis on the final snapshot.
func (b *RunBundle) SpectrumOfFinal() (*Spectrum2D, error) {
	phi, err := b.Final2D()
	if err != nil {
		return nil, err
	}
	return AnalyzeSpectrum2D(phi, b.Dx, b.Dy, b.C, b.Omega0), nil
}

// FitAmplitudeDecay fits the dense amplitude trace against
// A*exp(-t/tau) + offset, reconstructing the per-step time axis from Dt.
func (b *RunBundle) FitAmplitudeDecay() (DecayFit, error) {
	t := make([]float64, len(b.Amplitude))
	for i := range t {
		t[i] = float64(i) * b.Dt
	}
	return FitDecay(t, b.Amplitude)
}
