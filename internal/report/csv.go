package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteTableCSV writes a table with a leading parameter column followed by
// one column per series, mirroring the grouped bar charts.
func WriteTableCSV(path string, params []string, series []Series) error {
	for _, s := range series {
		if len(s.Values) != len(params) {
			return fmt.Errorf("csv %s: series %q has %d values for %d parameters",
				path, s.Label, len(s.Values), len(params))
		}
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(series)+1)
	header = append(header, "parameter")
	for _, s := range series {
		header = append(header, s.Label)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv %s: %w", path, err)
	}

	for i, name := range params {
		row := make([]string, 0, len(series)+1)
		row = append(row, name)
		for _, s := range series {
			row = append(row, strconv.FormatFloat(s.Values[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv %s: %w", path, err)
		}
	}

	w.Flush()
	return w.Error()
}
