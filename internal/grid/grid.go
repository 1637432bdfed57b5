package grid

import (
	"errors"
	"fmt"
)

// Domain errors for grid and physics construction.
var (
	// ErrTooFewPoints indicates a grid without at least one interior point.
	ErrTooFewPoints = errors.New("grid: need at least 3 points per axis")

	// ErrBadExtent indicates a non-positive domain length.
	ErrBadExtent = errors.New("grid: domain extent must be positive")

	// ErrBadWaveSpeed indicates a non-positive wave speed.
	ErrBadWaveSpeed = errors.New("grid: wave speed must be positive")

	// ErrBadFrequency indicates a negative resonant frequency.
	ErrBadFrequency = errors.New("grid: resonant frequency must be non-negative")
)

// Spec1D describes a 1D spatial discretization. Spacing is derived from
// Length/Points and never set directly; a Spec1D is immutable once built.
type Spec1D struct {
	Length  float64
	Points  int
	Spacing float64
}

func New1D(length float64, points int) (Spec1D, error) {
	if length <= 0 {
		return Spec1D{}, fmt.Errorf("length %g: %w", length, ErrBadExtent)
	}
	if points < 3 {
		return Spec1D{}, fmt.Errorf("points %d: %w", points, ErrTooFewPoints)
	}
	return Spec1D{Length: length, Points: points, Spacing: length / float64(points)}, nil
}

// Coords returns the grid coordinates i*dx, matching the stencil spacing.
func (s Spec1D) Coords() []float64 {
	x := make([]float64, s.Points)
	for i := range x {
		x[i] = float64(i) * s.Spacing
	}
	return x
}

// Spec2D describes a rectangular 2D discretization. Fields are indexed
// [i][j] with i along x (spacing Dx) and j along y (spacing Dy).
type Spec2D struct {
	Lx, Ly float64
	Nx, Ny int
	Dx, Dy float64
}

func New2D(lx, ly float64, nx, ny int) (Spec2D, error) {
	if lx <= 0 || ly <= 0 {
		return Spec2D{}, fmt.Errorf("extent (%g, %g): %w", lx, ly, ErrBadExtent)
	}
	if nx < 3 || ny < 3 {
		return Spec2D{}, fmt.Errorf("points (%d, %d): %w", nx, ny, ErrTooFewPoints)
	}
	return Spec2D{
		Lx: lx, Ly: ly,
		Nx: nx, Ny: ny,
		Dx: lx / float64(nx),
		Dy: ly / float64(ny),
	}, nil
}

// Mesh returns the x and y coordinate axes.
func (s Spec2D) Mesh() (xs, ys []float64) {
	xs = make([]float64, s.Nx)
	for i := range xs {
		xs[i] = float64(i) * s.Dx
	}
	ys = make([]float64, s.Ny)
	for j := range ys {
		ys[j] = float64(j) * s.Dy
	}
	return xs, ys
}

// Physics holds the wave speed c and the intrinsic resonance frequency
// omega0 of the Klein-Gordon field. Fixed for the lifetime of a run.
type Physics struct {
	C      float64
	Omega0 float64
}

func NewPhysics(c, omega0 float64) (Physics, error) {
	if c <= 0 {
		return Physics{}, fmt.Errorf("c %g: %w", c, ErrBadWaveSpeed)
	}
	if omega0 < 0 {
		return Physics{}, fmt.Errorf("omega0 %g: %w", omega0, ErrBadFrequency)
	}
	return Physics{C: c, Omega0: omega0}, nil
}
