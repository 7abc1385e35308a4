package sensitivity

import "testing"

func rankFixture() []Sensitivity {
	return []Sensitivity{
		{Parameter: "d_Fi", Change: map[string]float64{"N": 12.0, "tau": 80.0}},
		{Parameter: "lambda_Gtau", Change: map[string]float64{"N": 30.0, "tau": 5.0}},
		{Parameter: "N_0", Change: map[string]float64{"N": 30.0, "tau": 0.1}},
		{Parameter: "d_tau", Change: map[string]float64{"N": 1.0, "tau": 45.0}},
	}
}

func TestRank(t *testing.T) {
	ranked := Rank(rankFixture(), "N")

	want := []string{"N_0", "lambda_Gtau", "d_Fi", "d_tau"}
	if len(ranked) != len(want) {
		t.Fatalf("got %d rows, want %d", len(ranked), len(want))
	}
	for i, name := range want {
		if ranked[i].Parameter != name {
			t.Errorf("rank[%d] = %s, want %s", i, ranked[i].Parameter, name)
		}
	}

	// N_0 and lambda_Gtau are tied at 30; the tie breaks on name.
	if ranked[0].Change != ranked[1].Change {
		t.Fatal("fixture should contain a tie")
	}
}

func TestThreshold(t *testing.T) {
	ranked := Rank(rankFixture(), "tau") // 80, 45, 5, 0.1

	kept := Threshold(ranked, 0.2) // cut at 16
	if len(kept) != 2 {
		t.Fatalf("kept %d rows, want 2", len(kept))
	}
	if kept[0].Parameter != "d_Fi" || kept[1].Parameter != "d_tau" {
		t.Errorf("kept %v", kept)
	}

	if got := Threshold(ranked, 0); len(got) != len(ranked) {
		t.Error("zero fraction should keep everything")
	}
	if got := Threshold(nil, 0.2); got != nil {
		t.Error("nil ranking should pass through")
	}
}

func TestExclude(t *testing.T) {
	ranked := Rank(rankFixture(), "N")

	out := Exclude(ranked, "N_0")
	if len(out) != 3 {
		t.Fatalf("got %d rows, want 3", len(out))
	}
	for _, r := range out {
		if r.Parameter == "N_0" {
			t.Error("N_0 should have been excluded")
		}
	}

	// Excluding nothing is a copy.
	if got := Exclude(ranked); len(got) != len(ranked) {
		t.Error("empty exclusion should keep everything")
	}
}
