package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRankingChart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ranking.png")

	params := []string{"d_Fi", "lambda_Gtau", "d_tau"}
	series := []Series{
		{Label: "Women (APOE+)", Values: []float64{80, 45, 12}},
		{Label: "Men (APOE-)", Values: []float64{60, 50, 8}},
	}

	if err := RankingChart(path, "Sensitivity of N", "mean relative change (%)", params, series); err != nil {
		t.Fatalf("RankingChart failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestRankingChart_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.png")

	if err := RankingChart(path, "t", "y", nil, nil); err == nil {
		t.Error("no parameters should fail")
	}

	series := []Series{{Label: "a", Values: []float64{1}}}
	if err := RankingChart(path, "t", "y", []string{"p", "q"}, series); err == nil {
		t.Error("length mismatch should fail")
	}
}

func TestRankingChart_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "ranking.png")

	series := []Series{{Label: "Women (APOE-)", Values: []float64{1}}}
	if err := RankingChart(path, "t", "y", []string{"d_Fi"}, series); err != nil {
		t.Fatalf("RankingChart failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("chart not written under created directory: %v", err)
	}
}

func TestTrajectoryChart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traj.png")

	lines := []Line{
		{Label: "baseline", X: []float64{30, 55, 80}, Y: []float64{0.45, 0.40, 0.30}},
		{Label: "d_Fi +10%", X: []float64{30, 55, 80}, Y: []float64{0.45, 0.38, 0.25}},
	}

	if err := TrajectoryChart(path, "Neurons", "Age (years)", "g/mL", lines); err != nil {
		t.Fatalf("TrajectoryChart failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("chart file missing or empty: %v", err)
	}
}

func TestTrajectoryChart_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.png")

	if err := TrajectoryChart(path, "t", "x", "y", nil); err == nil {
		t.Error("no lines should fail")
	}

	lines := []Line{{Label: "l", X: []float64{1, 2}, Y: []float64{1}}}
	if err := TrajectoryChart(path, "t", "x", "y", lines); err == nil {
		t.Error("mismatched line lengths should fail")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"case label", []string{"oat", "N", "Women (APOE+)"}, "out/oat_N_Women_APOE+.png"},
		{"slash", []string{"single", "d_Fi", "a/b"}, "out/single_d_Fi_a-b.png"},
		{"plain", []string{"baseline"}, "out/baseline.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename("out", "png", tt.parts...)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}
