// Package report renders analysis results as PNG charts and CSV tables in
// the output directory. It contains formatting only; all numbers arrive
// precomputed.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Series is one colored bar series of a grouped bar chart, aligned to the
// parameter order of the chart.
type Series struct {
	Label  string
	Values []float64
}

// Line is one labeled curve of a trajectory chart.
type Line struct {
	Label string
	X     []float64
	Y     []float64
}

// RankingChart writes a grouped bar chart: one group of bars per parameter,
// one colored series per demographic case.
func RankingChart(path, title, ylabel string, params []string, series []Series) error {
	if len(params) == 0 {
		return fmt.Errorf("ranking chart %q: no parameters to plot", title)
	}
	for _, s := range series {
		if len(s.Values) != len(params) {
			return fmt.Errorf("ranking chart %q: series %q has %d values for %d parameters",
				title, s.Label, len(s.Values), len(params))
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Parameters"
	p.Y.Label.Text = ylabel
	p.Legend.Top = true

	n := len(series)
	w := vg.Points(24) / vg.Length(n)
	for i, s := range series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), w)
		if err != nil {
			return fmt.Errorf("ranking chart %q: %w", title, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(i)
		bars.Offset = w * (vg.Length(i) - vg.Length(n-1)/2)
		p.Add(bars)
		p.Legend.Add(s.Label, bars)
	}

	p.NominalX(params...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if err := ensureDir(path); err != nil {
		return err
	}
	width := vg.Length(math.Max(8, float64(len(params))*0.6)) * vg.Inch
	return p.Save(width, 6*vg.Inch, path)
}

// TrajectoryChart writes a line chart with one curve per labeled series,
// typically the baseline and the perturbed runs of one parameter.
func TrajectoryChart(path, title, xlabel, ylabel string, lines []Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("trajectory chart %q: no lines to plot", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true

	args := make([]any, 0, 2*len(lines))
	for _, l := range lines {
		if len(l.X) != len(l.Y) {
			return fmt.Errorf("trajectory chart %q: line %q has mismatched lengths", title, l.Label)
		}
		xys := make(plotter.XYs, len(l.X))
		for i := range l.X {
			xys[i].X = l.X[i]
			xys[i].Y = l.Y[i]
		}
		args = append(args, l.Label, xys)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("trajectory chart %q: %w", title, err)
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// Filename builds an output filename from label fragments, replacing the
// characters that the case labels and factor strings carry.
func Filename(dir, ext string, parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		r := strings.NewReplacer(" ", "_", "(", "", ")", "", "/", "-")
		cleaned = append(cleaned, r.Replace(part))
	}
	return filepath.Join(dir, strings.Join(cleaned, "_")+"."+ext)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
