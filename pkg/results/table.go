package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoData is returned when an input directory yields no table matching
// any workload pattern. It is the only fatal ingestion failure: everything
// else is skipped so a run can still produce partial output.
var ErrNoData = errors.New("no valid result data found")

// Table holds the parsed rows of one result CSV, tagged with the dataset
// and workload derived from its file name. Rows are read once and never
// mutated.
type Table struct {
	Path     string
	Dataset  string
	Workload Workload
	Columns  []string

	index map[string]int
	rows  [][]string
}

// ReadTable parses a single result CSV. Parsing is tolerant: rows whose
// field count does not match the header are dropped rather than failing
// the file. Only a missing file or an unreadable header is an error.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening result file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", filepath.Base(path), err)
	}

	t := &Table{
		Path:    path,
		Columns: header,
		index:   make(map[string]int, len(header)),
	}

	for i, col := range header {
		t.index[strings.TrimSpace(col)] = i
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			// Corrupt line, keep going with the rest of the file.
			continue
		}

		if len(row) != len(header) {
			continue
		}

		t.rows = append(t.rows, row)
	}

	return t, nil
}

// NumRows returns the number of well-formed data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether the header names the given column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]

	return ok
}

// Row returns the raw cells of row i.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Strings returns the raw values of a column, or nil if the column is
// absent.
func (t *Table) Strings(col string) []string {
	i, ok := t.index[col]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, strings.TrimSpace(row[i]))
	}

	return out
}

// Floats returns the numeric values of a column. Cells that do not parse
// become NaN so that downstream non-finite filtering removes them; a
// missing column returns ok=false instead of zero values.
func (t *Table) Floats(col string) ([]float64, bool) {
	i, ok := t.index[col]
	if !ok {
		return nil, false
	}

	out := make([]float64, 0, len(t.rows))

	for _, row := range t.rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			v = math.NaN()
		}

		out = append(out, v)
	}

	return out, true
}

// Filter returns a view containing only the rows whose col cell equals
// value. The view shares the header and metadata of the receiver. A
// missing column yields an empty view.
func (t *Table) Filter(col, value string) *Table {
	out := &Table{
		Path:     t.Path,
		Dataset:  t.Dataset,
		Workload: t.Workload,
		Columns:  t.Columns,
		index:    t.index,
	}

	i, ok := t.index[col]
	if !ok {
		return out
	}

	for _, row := range t.rows {
		if strings.TrimSpace(row[i]) == value {
			out.rows = append(out.rows, row)
		}
	}

	return out
}

// Load discovers result tables matching glob under dir, classifies each by
// file name, and returns the parsed tables in discovery order. Files that
// match no workload pattern, fail to parse, or contain no rows are logged
// and skipped; the run continues with whatever remains.
func Load(log logrus.FieldLogger, dir, glob string) ([]*Table, error) {
	pattern := filepath.Join(dir, glob)

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}

	log.WithFields(logrus.Fields{
		"dir":   dir,
		"files": len(paths),
	}).Info("Discovered result files")

	tables := make([]*Table, 0, len(paths))

	for _, path := range paths {
		base := filepath.Base(path)

		workload, ok := ClassifyName(base)
		if !ok {
			log.WithField("file", base).Info("Skipping file with no workload pattern")

			continue
		}

		t, err := ReadTable(path)
		if err != nil {
			log.WithError(err).WithField("file", base).Warn("Skipping unreadable result file")

			continue
		}

		t.Dataset = ParseDataset(base)
		t.Workload = workload

		log.WithFields(logrus.Fields{
			"file":     base,
			"rows":     t.NumRows(),
			"columns":  len(t.Columns),
			"dataset":  t.Dataset,
			"workload": workload.String(),
		}).Debug("Parsed result table")

		if t.NumRows() == 0 {
			log.WithField("file", base).Warn("Skipping empty result table")

			continue
		}

		tables = append(tables, t)
	}

	return tables, nil
}
