package dispersion

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned when the decay fit fails to converge. It is
// a recoverable outcome: callers fall back to showing raw data instead of
// aborting a sweep.
var ErrNoConvergence = errors.New("dispersion: decay fit did not converge")

// DecayFit holds the fitted parameters of A*exp(-t/tau) + offset.
type DecayFit struct {
	A, Tau, Offset float64
	Residual       float64 // root-mean-square residual
	Iterations     int
}

// Eval evaluates the fitted model at time t.
func (f DecayFit) Eval(t float64) float64 {
	return f.A*math.Exp(-t/f.Tau) + f.Offset
}

const (
	fitMaxIter   = 200
	fitTolerance = 1e-10
	lambdaInit   = 1e-3
	lambdaCap    = 1e12
)

// FitDecay fits an exponential decay to an amplitude time series by
// Levenberg-Marquardt, starting from (amp[0], t_end/2, amp[end]). Data with
// non-finite values, or a search that stalls, yields ErrNoConvergence.
func FitDecay(t, amp []float64) (DecayFit, error) {
	if len(t) != len(amp) {
		return DecayFit{}, fmt.Errorf("dispersion: time and amplitude lengths differ (%d vs %d)", len(t), len(amp))
	}
	if len(t) < 4 {
		return DecayFit{}, fmt.Errorf("dispersion: need at least 4 samples to fit, got %d", len(t))
	}
	for i := range amp {
		if math.IsNaN(amp[i]) || math.IsInf(amp[i], 0) {
			return DecayFit{}, fmt.Errorf("non-finite amplitude at sample %d: %w", i, ErrNoConvergence)
		}
	}

	p := [3]float64{amp[0], t[len(t)-1] / 2, amp[len(amp)-1]}
	if p[1] == 0 {
		p[1] = 1
	}

	cost := residualSq(t, amp, p)
	lambda := lambdaInit

	var iter int
	for iter = 0; iter < fitMaxIter; iter++ {
		jtj, jtr := normalEquations(t, amp, p)

		// Damped normal equations: (JtJ + lambda*diag(JtJ)) delta = Jtr.
		a := mat.NewDense(3, 3, nil)
		a.CloneFrom(jtj)
		for d := 0; d < 3; d++ {
			a.Set(d, d, jtj.At(d, d)*(1+lambda))
		}

		var delta mat.VecDense
		if err := delta.SolveVec(a, jtr); err != nil {
			lambda *= 10
			if lambda > lambdaCap {
				return DecayFit{}, fmt.Errorf("singular normal equations: %w", ErrNoConvergence)
			}
			continue
		}

		pNorm := math.Abs(p[0]) + math.Abs(p[1]) + math.Abs(p[2])
		deltaNorm := math.Abs(delta.AtVec(0)) + math.Abs(delta.AtVec(1)) + math.Abs(delta.AtVec(2))
		if deltaNorm < fitTolerance*(1+pNorm) {
			break
		}

		trial := [3]float64{
			p[0] + delta.AtVec(0),
			p[1] + delta.AtVec(1),
			p[2] + delta.AtVec(2),
		}
		trialCost := residualSq(t, amp, trial)

		if !isFinite(trial) || trial[1] <= 0 || trialCost >= cost {
			lambda *= 10
			if lambda > lambdaCap {
				return DecayFit{}, ErrNoConvergence
			}
			continue
		}

		p = trial
		cost = trialCost
		lambda = math.Max(lambda/10, 1e-12)
	}

	if iter == fitMaxIter {
		return DecayFit{}, ErrNoConvergence
	}

	return DecayFit{
		A:          p[0],
		Tau:        p[1],
		Offset:     p[2],
		Residual:   math.Sqrt(cost / float64(len(t))),
		Iterations: iter + 1,
	}, nil
}

func residualSq(t, amp []float64, p [3]float64) float64 {
	sum := 0.0
	for i := range t {
		r := amp[i] - (p[0]*math.Exp(-t[i]/p[1]) + p[2])
		sum += r * r
	}
	return sum
}

func normalEquations(t, amp []float64, p [3]float64) (*mat.Dense, *mat.VecDense) {
	jtj := mat.NewDense(3, 3, nil)
	jtr := mat.NewVecDense(3, nil)

	for i := range t {
		e := math.Exp(-t[i] / p[1])
		model := p[0]*e + p[2]
		r := amp[i] - model

		// Jacobian row of the model w.r.t. (A, tau, offset).
		j := [3]float64{e, p[0] * e * t[i] / (p[1] * p[1]), 1}

		for a := 0; a < 3; a++ {
			jtr.SetVec(a, jtr.AtVec(a)+j[a]*r)
			for b := 0; b < 3; b++ {
				jtj.Set(a, b, jtj.At(a, b)+j[a]*j[b])
			}
		}
	}
	return jtj, jtr
}

func isFinite(p [3]float64) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
