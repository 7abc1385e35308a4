// Package solve provides an adaptive-step explicit Runge-Kutta integrator
// (Dormand-Prince 4(5)) with dense output onto a caller-supplied evaluation
// grid. It is the single integration backend for every analysis; a solver
// failure aborts the run for that parameter combination, there is no retry.
package solve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Func evaluates the right-hand side of the ODE system, writing the
// derivative of y at time t into dydt. Implementations must be deterministic.
type Func func(t float64, y []float64, dydt []float64)

// Config holds solver tolerances and limits.
type Config struct {
	// ATol and RTol are the absolute and relative error tolerances used in
	// the weighted RMS error norm for step acceptance.
	ATol float64 `yaml:"atol"`
	RTol float64 `yaml:"rtol"`

	// InitialStep is the first trial step size. Zero selects a small
	// fraction of the integration interval.
	InitialStep float64 `yaml:"initial_step"`

	// MaxSteps bounds the number of accepted steps before the integration
	// is abandoned as non-converging.
	MaxSteps int `yaml:"max_steps"`
}

// DefaultConfig returns the solver settings used by the analyses: tight
// tolerances matching the source study, generous step budget.
func DefaultConfig() Config {
	return Config{
		ATol:     1e-10,
		RTol:     1e-10,
		MaxSteps: 10_000_000,
	}
}

// ErrMaxSteps is returned when the step budget is exhausted before reaching
// the end of the integration interval.
var ErrMaxSteps = errors.New("solve: maximum number of steps exceeded")

// ErrStepUnderflow is returned when the required step size shrinks below the
// resolution of the time variable, the usual signature of stiffness or of a
// numerical blow-up under a pathological parameter set.
var ErrStepUnderflow = errors.New("solve: step size underflow")

// Dormand-Prince 5(4) coefficients. The seventh stage equals the derivative
// at the step end (FSAL), which also feeds the dense output.
var (
	dpC = [7]float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1}

	dpA = [7][6]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	}

	// 5th-order solution weights (identical to the last row of dpA).
	dpB = [7]float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0}

	// Difference between the 5th- and embedded 4th-order weights, used for
	// the local error estimate.
	dpE = [7]float64{
		35.0/384.0 - 5179.0/57600.0,
		0,
		500.0/1113.0 - 7571.0/16695.0,
		125.0/192.0 - 393.0/640.0,
		-2187.0/6784.0 + 92097.0/339200.0,
		11.0/84.0 - 187.0/2100.0,
		-1.0 / 40.0,
	}
)

// RK45 integrates y' = f(t, y) from t0 to t1 starting at y0, sampling the
// solution at the (ascending) grid points via cubic Hermite interpolation
// within accepted steps. The grid must lie within [t0, t1].
func RK45(f Func, t0, t1 float64, y0 []float64, grid []float64, cfg Config) (*Trajectory, error) {
	if t1 <= t0 {
		return nil, fmt.Errorf("solve: invalid interval [%g, %g]", t0, t1)
	}
	if cfg.ATol <= 0 || cfg.RTol <= 0 {
		return nil, fmt.Errorf("solve: tolerances must be positive (atol=%g, rtol=%g)", cfg.ATol, cfg.RTol)
	}

	n := len(y0)
	tr := &Trajectory{
		Times:  append([]float64(nil), grid...),
		States: make([][]float64, len(grid)),
	}

	y := append([]float64(nil), y0...)
	ynew := make([]float64, n)
	ys := make([]float64, n)
	errv := make([]float64, n)
	var k [7][]float64
	for i := range k {
		k[i] = make([]float64, n)
	}

	t := t0
	h := cfg.InitialStep
	if h <= 0 {
		h = (t1 - t0) * 1e-6
	}

	f(t, y, k[0])

	next := 0 // index of the first unsampled grid point
	for next < len(grid) && grid[next] <= t {
		tr.States[next] = append([]float64(nil), y...)
		next++
	}

	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultConfig().MaxSteps
	}

	for steps := 0; t < t1; steps++ {
		if steps >= maxSteps {
			return nil, fmt.Errorf("%w after %d steps at t=%g", ErrMaxSteps, steps, t)
		}
		if t+h == t {
			return nil, fmt.Errorf("%w at t=%g (h=%g)", ErrStepUnderflow, t, h)
		}
		if t+h > t1 {
			h = t1 - t
		}

		// Stages 2..7. Stage 1 is k[0], carried over from the previous
		// accepted step (FSAL).
		for s := 1; s < 7; s++ {
			copy(ys, y)
			for j := 0; j < s; j++ {
				if dpA[s][j] != 0 {
					floats.AddScaled(ys, h*dpA[s][j], k[j])
				}
			}
			f(t+dpC[s]*h, ys, k[s])
		}

		// 5th-order solution and embedded error estimate.
		copy(ynew, y)
		for s := 0; s < 7; s++ {
			if dpB[s] != 0 {
				floats.AddScaled(ynew, h*dpB[s], k[s])
			}
		}
		for i := range errv {
			errv[i] = 0
		}
		for s := 0; s < 7; s++ {
			if dpE[s] != 0 {
				floats.AddScaled(errv, h*dpE[s], k[s])
			}
		}

		norm := errNorm(errv, y, ynew, cfg.ATol, cfg.RTol)

		// A NaN right-hand side poisons the error estimate and would
		// otherwise leave the step size unchanged until the step budget
		// runs out. Retry smaller until the step underflows.
		if math.IsNaN(norm) {
			h *= 0.2
			continue
		}

		if norm <= 1 {
			// Accepted. Sample any grid points inside (t, t+h] before
			// advancing.
			for next < len(grid) && grid[next] <= t+h {
				tr.States[next] = hermite(t, h, y, ynew, k[0], k[6], grid[next])
				next++
			}
			t += h
			copy(y, ynew)
			copy(k[0], k[6])
		}

		h *= stepFactor(norm)
	}

	// Endpoint samples that rounding left behind.
	for next < len(grid) {
		tr.States[next] = append([]float64(nil), y...)
		next++
	}

	return tr, nil
}

// errNorm is the weighted RMS norm of the local error estimate.
func errNorm(errv, y, ynew []float64, atol, rtol float64) float64 {
	var sum float64
	for i := range errv {
		sc := atol + rtol*math.Max(math.Abs(y[i]), math.Abs(ynew[i]))
		r := errv[i] / sc
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(errv)))
}

// stepFactor returns the multiplier for the next step size given the error
// norm of the last attempt, with the usual safety factor and growth clamps.
func stepFactor(norm float64) float64 {
	if norm == 0 {
		return 5
	}
	fac := 0.9 * math.Pow(norm, -0.2)
	return math.Min(5, math.Max(0.2, fac))
}

// hermite evaluates the cubic Hermite interpolant of the accepted step
// [t, t+h] at ts, using the solution values and derivatives at both ends.
func hermite(t, h float64, y, ynew, f0, f1 []float64, ts float64) []float64 {
	theta := (ts - t) / h
	t2 := theta * theta
	t3 := t2 * theta

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + theta
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	out := make([]float64, len(y))
	for i := range out {
		out[i] = h00*y[i] + h10*h*f0[i] + h01*ynew[i] + h11*h*f1[i]
	}
	return out
}
