package dispersion

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Theory evaluates the closed-form dispersion relation omega(k).
func Theory(k, c, omega0 float64) float64 {
	return math.Sqrt(c*c*k*k + omega0*omega0)
}

// fftFreq returns the DFT sample wavenumbers in cycles per unit length,
// ordered like the transform output: non-negative frequencies first, then
// negative ones.
func fftFreq(n int, d float64) []float64 {
	f := make([]float64, n)
	scale := 1 / (float64(n) * d)
	half := (n - 1) / 2
	for i := 0; i <= half; i++ {
		f[i] = float64(i) * scale
	}
	for i := half + 1; i < n; i++ {
		f[i] = float64(i-n) * scale
	}
	return f
}

// Verify1D computes the spatial spectrum of a 1D field and the theoretical
// frequency curve over the positive wavenumbers. It asserts nothing; the
// caller (or a test) compares peak locations against the theory curve.
func Verify1D(phi []float64, dx, c, omega0 float64) (k, mag, omegaTheory []float64) {
	spectrum := fft.FFTReal(phi)
	freqs := fftFreq(len(phi), dx)

	half := len(phi) / 2
	k = make([]float64, half)
	mag = make([]float64, half)
	omegaTheory = make([]float64, half)
	for i := 0; i < half; i++ {
		k[i] = 2 * math.Pi * freqs[i]
		mag[i] = cmplx.Abs(spectrum[i])
		omegaTheory[i] = Theory(k[i], c, omega0)
	}
	return k, mag, omegaTheory
}

// DominantWavenumber returns the wavenumber of the strongest spectral
// component.
func DominantWavenumber(k, mag []float64) float64 {
	return k[floats.MaxIdx(mag)]
}

// Spectrum2D is the zero-frequency-centered 2D spectrum of a field plus the
// paired wavenumber mesh and theoretical dispersion surface. All grids share
// the field's shape.
type Spectrum2D struct {
	KX, KY      [][]float64
	Mag         [][]float64
	OmegaTheory [][]float64
}

// AnalyzeSpectrum2D computes the shifted 2D spectrum: |FFT2| with the zero
// frequency moved to the center, kx/ky meshes, and omega_theory(|K|).
func AnalyzeSpectrum2D(phi [][]float64, dx, dy, c, omega0 float64) *Spectrum2D {
	nx := len(phi)
	ny := len(phi[0])

	spectrum := fft.FFT2Real(phi)

	kx := fftShift1D(fftFreq(nx, dx))
	ky := fftShift1D(fftFreq(ny, dy))

	mag := make([][]float64, nx)
	for i := range mag {
		mag[i] = make([]float64, ny)
		for j := range mag[i] {
			mag[i][j] = cmplx.Abs(spectrum[i][j])
		}
	}
	mag = fftShift2D(mag)

	out := &Spectrum2D{
		KX:          make([][]float64, nx),
		KY:          make([][]float64, nx),
		Mag:         mag,
		OmegaTheory: make([][]float64, nx),
	}
	for i := 0; i < nx; i++ {
		out.KX[i] = make([]float64, ny)
		out.KY[i] = make([]float64, ny)
		out.OmegaTheory[i] = make([]float64, ny)
		kxi := 2 * math.Pi * kx[i]
		for j := 0; j < ny; j++ {
			kyj := 2 * math.Pi * ky[j]
			out.KX[i][j] = kxi
			out.KY[i][j] = kyj
			out.OmegaTheory[i][j] = Theory(math.Hypot(kxi, kyj), c, omega0)
		}
	}
	return out
}

func fftShift1D(x []float64) []float64 {
	n := len(x)
	shift := n / 2
	out := make([]float64, n)
	for i := range x {
		out[i] = x[(i-shift+n)%n]
	}
	return out
}

func fftShift2D(x [][]float64) [][]float64 {
	nx := len(x)
	ny := len(x[0])
	si, sj := nx/2, ny/2
	out := make([][]float64, nx)
	for i := range out {
		out[i] = make([]float64, ny)
		for j := range out[i] {
			out[i][j] = x[(i-si+nx)%nx][(j-sj+ny)%ny]
		}
	}
	return out
}
