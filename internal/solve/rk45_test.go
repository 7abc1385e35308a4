package solve

import (
	"errors"
	"math"
	"testing"
)

func TestRK45_ExponentialDecay(t *testing.T) {
	// y' = -y, y(0) = 1, exact solution e^{-t}.
	f := func(_ float64, y, dydt []float64) {
		dydt[0] = -y[0]
	}

	grid := Grid(0, 2, 21)
	tr, err := RK45(f, 0, 2, []float64{1}, grid, DefaultConfig())
	if err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}
	if tr.Len() != len(grid) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(grid))
	}

	for i, ts := range tr.Times {
		want := math.Exp(-ts)
		got := tr.States[i][0]
		if math.Abs(got-want) > 1e-7 {
			t.Errorf("y(%g) = %.12g, want %.12g", ts, got, want)
		}
	}
}

func TestRK45_HarmonicOscillator(t *testing.T) {
	// y0' = y1, y1' = -y0 with y(0) = (1, 0), exact solution (cos t, -sin t).
	f := func(_ float64, y, dydt []float64) {
		dydt[0] = y[1]
		dydt[1] = -y[0]
	}

	grid := Grid(0, 2*math.Pi, 50)
	tr, err := RK45(f, 0, 2*math.Pi, []float64{1, 0}, grid, DefaultConfig())
	if err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}

	for i, ts := range tr.Times {
		if math.Abs(tr.States[i][0]-math.Cos(ts)) > 1e-6 {
			t.Errorf("y0(%g) = %g, want %g", ts, tr.States[i][0], math.Cos(ts))
		}
		if math.Abs(tr.States[i][1]+math.Sin(ts)) > 1e-6 {
			t.Errorf("y1(%g) = %g, want %g", ts, tr.States[i][1], -math.Sin(ts))
		}
	}
}

func TestRK45_ConstantDerivative(t *testing.T) {
	// y' = 3 is integrated exactly by any Runge-Kutta method; checks the grid
	// sampling and the Hermite interpolant on a trivially smooth solution.
	f := func(_ float64, _, dydt []float64) {
		dydt[0] = 3
	}

	grid := []float64{0, 0.25, 1, 2.5, 4}
	tr, err := RK45(f, 0, 4, []float64{1}, grid, DefaultConfig())
	if err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}

	for i, ts := range grid {
		want := 1 + 3*ts
		if math.Abs(tr.States[i][0]-want) > 1e-9 {
			t.Errorf("y(%g) = %g, want %g", ts, tr.States[i][0], want)
		}
	}
}

func TestRK45_Deterministic(t *testing.T) {
	f := func(ts float64, y, dydt []float64) {
		dydt[0] = math.Sin(ts) - 0.5*y[0]
	}

	grid := Grid(0, 10, 11)
	a, err := RK45(f, 0, 10, []float64{0.2}, grid, DefaultConfig())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := RK45(f, 0, 10, []float64{0.2}, grid, DefaultConfig())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range a.States {
		if a.States[i][0] != b.States[i][0] {
			t.Errorf("sample %d differs between identical runs: %g vs %g",
				i, a.States[i][0], b.States[i][0])
		}
	}
}

func TestRK45_InvalidInputs(t *testing.T) {
	f := func(_ float64, y, dydt []float64) { dydt[0] = -y[0] }

	tests := []struct {
		name string
		t0   float64
		t1   float64
		cfg  Config
	}{
		{"reversed interval", 2, 0, DefaultConfig()},
		{"empty interval", 1, 1, DefaultConfig()},
		{"zero atol", 0, 1, Config{ATol: 0, RTol: 1e-10}},
		{"zero rtol", 0, 1, Config{ATol: 1e-10, RTol: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RK45(f, tt.t0, tt.t1, []float64{1}, nil, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRK45_MaxSteps(t *testing.T) {
	f := func(_ float64, y, dydt []float64) { dydt[0] = -y[0] }

	cfg := DefaultConfig()
	cfg.MaxSteps = 3
	_, err := RK45(f, 0, 1000, []float64{1}, nil, cfg)
	if !errors.Is(err, ErrMaxSteps) {
		t.Errorf("err = %v, want ErrMaxSteps", err)
	}
}

func TestRK45_NaNDerivativeFailsFast(t *testing.T) {
	// A poisoned right-hand side must underflow the step size promptly
	// rather than spin through the whole step budget.
	f := func(_ float64, _, dydt []float64) { dydt[0] = math.NaN() }

	_, err := RK45(f, 1, 2, []float64{1}, nil, DefaultConfig())
	if !errors.Is(err, ErrStepUnderflow) {
		t.Errorf("err = %v, want ErrStepUnderflow", err)
	}
}

func TestRK45_BlowUpUnderflows(t *testing.T) {
	// y' = y^2 from y(0)=1 diverges at t=1; the step size collapses there.
	f := func(_ float64, y, dydt []float64) { dydt[0] = y[0] * y[0] }

	_, err := RK45(f, 0, 2, []float64{1}, nil, DefaultConfig())
	if !errors.Is(err, ErrStepUnderflow) {
		t.Errorf("err = %v, want ErrStepUnderflow", err)
	}
}

func TestRK45_DoesNotMutateInitialState(t *testing.T) {
	f := func(_ float64, y, dydt []float64) { dydt[0] = -y[0] }

	y0 := []float64{1}
	if _, err := RK45(f, 0, 1, y0, Grid(0, 1, 5), DefaultConfig()); err != nil {
		t.Fatalf("RK45 failed: %v", err)
	}
	if y0[0] != 1 {
		t.Errorf("y0 mutated to %g", y0[0])
	}
}

func TestStepFactor(t *testing.T) {
	tests := []struct {
		name string
		norm float64
		want float64
	}{
		{"zero error grows max", 0, 5},
		{"unit error shrinks slightly", 1, 0.9},
		{"huge error clamps low", 1e10, 0.2},
		{"tiny error clamps high", 1e-10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stepFactor(tt.norm)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("stepFactor(%g) = %g, want %g", tt.norm, got, tt.want)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	g := Grid(10, 20, 5)
	want := []float64{10, 12.5, 15, 17.5, 20}
	if len(g) != len(want) {
		t.Fatalf("len = %d, want %d", len(g), len(want))
	}
	for i := range g {
		if math.Abs(g[i]-want[i]) > 1e-12 {
			t.Errorf("g[%d] = %g, want %g", i, g[i], want[i])
		}
	}
	if g[len(g)-1] != 20 {
		t.Error("last point must be exactly t1")
	}

	single := Grid(3, 9, 1)
	if len(single) != 1 || single[0] != 3 {
		t.Errorf("Grid(3, 9, 1) = %v, want [3]", single)
	}

	for _, n := range []int{0, -4} {
		if got := Grid(0, 1, n); len(got) != 0 {
			t.Errorf("Grid(0, 1, %d) = %v, want empty", n, got)
		}
	}
}

func TestTrajectory_Component(t *testing.T) {
	tr := &Trajectory{
		Times:  []float64{0, 1, 2},
		States: [][]float64{{1, 10}, {2, 20}, {3, 30}},
	}

	c := tr.Component(1)
	want := []float64{10, 20, 30}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("Component(1)[%d] = %g, want %g", i, c[i], want[i])
		}
	}
}
