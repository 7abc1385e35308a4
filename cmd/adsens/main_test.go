package main

import (
	"testing"

	"github.com/neurodyn/adsens/internal/model"
)

func TestParseCases(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []model.Case
		wantErr bool
	}{
		{"empty selects all", nil, model.Cases, false},
		{"all keyword", []string{"all"}, model.Cases, false},
		{
			"single case",
			[]string{"women+"},
			[]model.Case{{Sex: model.Woman, APOE4: true}},
			false,
		},
		{
			"two cases keep order",
			[]string{"men-", "women-"},
			[]model.Case{{Sex: model.Man, APOE4: false}, {Sex: model.Woman, APOE4: false}},
			false,
		},
		{
			"case-insensitive with spaces",
			[]string{" MEN+ "},
			[]model.Case{{Sex: model.Man, APOE4: true}},
			false,
		},
		{"unknown token", []string{"children"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCases(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCases failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d cases, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("case[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFactorLabel(t *testing.T) {
	tests := []struct {
		factor float64
		want   string
	}{
		{1.05, "+5%"},
		{1.10, "+10%"},
		{0.95, "-5%"},
		{1, "+0%"},
	}
	for _, tt := range tests {
		if got := factorLabel(tt.factor); got != tt.want {
			t.Errorf("factorLabel(%g) = %q, want %q", tt.factor, got, tt.want)
		}
	}
}
