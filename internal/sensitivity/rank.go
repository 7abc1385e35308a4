package sensitivity

import "sort"

// Ranked is one row of a sensitivity ranking.
type Ranked struct {
	Parameter string
	Change    float64
}

// Rank orders the results by descending change of the given biomarker.
// Ties are broken by ascending parameter name so the order is a stable total
// order for fixed inputs.
func Rank(results []Sensitivity, biomarker string) []Ranked {
	out := make([]Ranked, 0, len(results))
	for _, r := range results {
		out = append(out, Ranked{Parameter: r.Parameter, Change: r.Change[biomarker]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Change != out[j].Change {
			return out[i].Change > out[j].Change
		}
		return out[i].Parameter < out[j].Parameter
	})
	return out
}

// Threshold keeps the rows whose change is at least frac times the largest
// change in the ranking. The source study plots parameters above 20% of the
// top sensitivity.
func Threshold(ranked []Ranked, frac float64) []Ranked {
	if len(ranked) == 0 || frac <= 0 {
		return ranked
	}
	cut := frac * ranked[0].Change
	out := make([]Ranked, 0, len(ranked))
	for _, r := range ranked {
		if r.Change >= cut {
			out = append(out, r)
		}
	}
	return out
}

// Exclude drops the named parameters from a ranking. The neuron biomarker
// ranking drops N_0 because perturbing the reference density rescales the
// output directly rather than through the dynamics.
func Exclude(ranked []Ranked, names ...string) []Ranked {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := make([]Ranked, 0, len(ranked))
	for _, r := range ranked {
		if !drop[r.Parameter] {
			out = append(out, r)
		}
	}
	return out
}
