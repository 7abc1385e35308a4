package sensitivity

import "math"

// DefaultEpsilon is the floor applied to |baseline| in the relative-change
// denominator. The model's concentrations span roughly 1e-21..1e-1 g/mL, so
// the floor only engages when a baseline series is structurally zero (for
// example astrocytes at the start of the run), where the naive formula would
// divide by zero.
const DefaultEpsilon = 1e-30

// MeanRelativeChange returns the mean over all samples of
// |pert - base| / max(|base|, eps), as a fraction (not a percentage).
// It is zero when the series are identical and non-negative by construction.
// An eps of zero selects DefaultEpsilon. Panics if the series lengths differ.
func MeanRelativeChange(base, pert []float64, eps float64) float64 {
	if len(base) != len(pert) {
		panic("sensitivity: series length mismatch")
	}
	if len(base) == 0 {
		return 0
	}
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	var sum float64
	for i := range base {
		den := math.Max(math.Abs(base[i]), eps)
		sum += math.Abs(pert[i]-base[i]) / den
	}
	return sum / float64(len(base))
}
