// Package field holds the evolving scalar field buffers and the
// deterministic initial-condition generators.
package field

// State1D is the two-slot ring buffer for a 1D field: the values at t
// (current) and t-dt (previous). It is owned by exactly one engine; the
// buffers are never aliased outside a run.
type State1D struct {
	cur, prev []float64
}

// NewState1D starts a field from an initial profile with zero initial
// velocity (previous == current).
func NewState1D(initial []float64) *State1D {
	cur := make([]float64, len(initial))
	prev := make([]float64, len(initial))
	copy(cur, initial)
	copy(prev, initial)
	return &State1D{cur: cur, prev: prev}
}

func (s *State1D) Current() []float64  { return s.cur }
func (s *State1D) Previous() []float64 { return s.prev }

// Rotate advances the ring buffer: next becomes current, current becomes
// previous, and the old previous buffer is returned for reuse as the next
// scratch slot. No values are copied.
func (s *State1D) Rotate(next []float64) []float64 {
	old := s.prev
	s.prev, s.cur = s.cur, next
	return old
}

// Snapshot returns an independent copy of the current field.
func (s *State1D) Snapshot() []float64 {
	c := make([]float64, len(s.cur))
	copy(c, s.cur)
	return c
}

// State2D is the 2D counterpart, indexed [i][j] per grid.Spec2D.
type State2D struct {
	cur, prev [][]float64
}

func NewState2D(initial [][]float64) *State2D {
	return &State2D{cur: clone2D(initial), prev: clone2D(initial)}
}

func (s *State2D) Current() [][]float64  { return s.cur }
func (s *State2D) Previous() [][]float64 { return s.prev }

func (s *State2D) Rotate(next [][]float64) [][]float64 {
	old := s.prev
	s.prev, s.cur = s.cur, next
	return old
}

func (s *State2D) Snapshot() [][]float64 { return clone2D(s.cur) }

func clone2D(a [][]float64) [][]float64 {
	c := make([][]float64, len(a))
	for i := range a {
		c[i] = make([]float64, len(a[i]))
		copy(c[i], a[i])
	}
	return c
}

// Zeros2D allocates an nx-by-ny field of zeros.
func Zeros2D(nx, ny int) [][]float64 {
	f := make([][]float64, nx)
	for i := range f {
		f[i] = make([]float64, ny)
	}
	return f
}
