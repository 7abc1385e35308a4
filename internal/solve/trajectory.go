package solve

// Trajectory is the sampled solution of one integration run: the evaluation
// grid plus the full state vector at each grid point.
type Trajectory struct {
	Times  []float64
	States [][]float64
}

// Len returns the number of samples.
func (tr *Trajectory) Len() int {
	return len(tr.Times)
}

// Component extracts the time series of a single state variable.
func (tr *Trajectory) Component(idx int) []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		out[i] = s[idx]
	}
	return out
}

// Grid returns n evenly spaced points spanning [t0, t1] inclusive.
// A non-positive n yields an empty grid.
func Grid(t0, t1 float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{t0}
	}
	pts := make([]float64, n)
	step := (t1 - t0) / float64(n-1)
	for i := range pts {
		pts[i] = t0 + float64(i)*step
	}
	pts[n-1] = t1
	return pts
}
