package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jckenny59/COS568-LI-SP25/pkg/fsutil"
	"github.com/jckenny59/COS568-LI-SP25/pkg/results"
)

// Summary is one metric's scalars arranged as variant columns × group
// rows. Cells stay absent when the pair has no data; the CSV writes them
// as empty strings so "missing" never reads back as zero.
type Summary struct {
	Variants []string
	Groups   []string

	cells map[cellKey]float64
}

type cellKey struct {
	variant string
	group   string
}

// NewSummary creates an empty summary with fixed column and row order.
func NewSummary(variants, groups []string) *Summary {
	return &Summary{
		Variants: variants,
		Groups:   groups,
		cells:    make(map[cellKey]float64, len(variants)*len(groups)),
	}
}

// Set fills one cell.
func (s *Summary) Set(variant, group string, v float64) {
	s.cells[cellKey{variant: variant, group: group}] = v
}

// Get returns one cell's value, reporting whether it is present.
func (s *Summary) Get(variant, group string) (float64, bool) {
	v, ok := s.cells[cellKey{variant: variant, group: group}]

	return v, ok
}

// WriteSummaryCSV persists the summary as a flat CSV table.
func WriteSummaryCSV(path string, s *Summary) error {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	header := append([]string{""}, s.Variants...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}

	for _, group := range s.Groups {
		row := make([]string, 0, len(s.Variants)+1)
		row = append(row, group)

		for _, variant := range s.Variants {
			if v, ok := s.Get(variant, group); ok {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing summary row %s: %w", group, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing summary: %w", err)
	}

	return fsutil.WriteFile(path, buf.Bytes())
}

// ReadSummaryCSV reads a summary table back into memory. It reproduces the
// (variant, group) → scalar mapping WriteSummaryCSV persisted, modulo
// floating-point formatting precision.
func ReadSummaryCSV(path string) (*Summary, error) {
	tab, err := results.ReadTable(path)
	if err != nil {
		return nil, err
	}

	if len(tab.Columns) < 2 {
		return nil, fmt.Errorf("summary %s has no variant columns", path)
	}

	s := NewSummary(tab.Columns[1:], nil)

	for i := 0; i < tab.NumRows(); i++ {
		row := tab.Row(i)
		group := row[0]
		s.Groups = append(s.Groups, group)

		for j, variant := range s.Variants {
			cell := row[j+1]
			if cell == "" {
				continue
			}

			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("summary %s cell (%s, %s): %w", path, group, variant, err)
			}

			s.Set(variant, group, v)
		}
	}

	return s, nil
}

// WriteCombinedCSV persists every classified row with dataset and workload
// columns appended. Source columns are unioned in first-seen order; rows
// from tables missing a column leave the cell empty.
func WriteCombinedCSV(path string, tables []*results.Table) error {
	var columns []string

	seen := make(map[string]struct{})

	for _, t := range tables {
		for _, col := range t.Columns {
			if _, ok := seen[col]; ok {
				continue
			}

			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	header := append(append([]string{}, columns...), "dataset", "workload")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing combined header: %w", err)
	}

	for _, t := range tables {
		byCol := make(map[string][]string, len(t.Columns))
		for _, col := range t.Columns {
			byCol[col] = t.Strings(col)
		}

		for i := 0; i < t.NumRows(); i++ {
			row := make([]string, 0, len(columns)+2)

			for _, col := range columns {
				if vals, ok := byCol[col]; ok {
					row = append(row, vals[i])
				} else {
					row = append(row, "")
				}
			}

			row = append(row, t.Dataset, t.Workload.String())

			if err := w.Write(row); err != nil {
				return fmt.Errorf("writing combined row: %w", err)
			}
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing combined table: %w", err)
	}

	return fsutil.WriteFile(path, buf.Bytes())
}
