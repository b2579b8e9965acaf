// Package aggregate reduces classified benchmark result rows into one
// throughput and one size scalar per (variant, group) pair. Aggregation is
// a pure function over the full row set: it never mutates its inputs and
// reports unavailable pairs as typed skips instead of errors, so a single
// bad pair can never abort a run.
package aggregate

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/sirupsen/logrus"

	"github.com/jckenny59/COS568-LI-SP25/pkg/results"
)

// Column names fixed by the benchmarking harness.
const (
	colIndexName = "index_name"
	colSizeBytes = "index_size_bytes"
)

// Trial columns: three repeated benchmark runs per metric.
var (
	mixedTrialCols = []string{
		"mixed_throughput_mops1",
		"mixed_throughput_mops2",
		"mixed_throughput_mops3",
	}

	lookupTrialCols = []string{
		"lookup_throughput_mops1",
		"lookup_throughput_mops2",
		"lookup_throughput_mops3",
	}
)

// Metric labels used in skips and artifacts.
const (
	MetricThroughput = "throughput"
	MetricSize       = "index_size"
)

// Variant describes one index implementation under comparison.
type Variant struct {
	Name string

	// AdaptiveSize marks variants benchmarked under multiple internal size
	// configurations. Their size scalar is the minimum reported value;
	// everything else takes the first row's value.
	AdaptiveSize bool
}

// Group identifies one aggregation bucket. Workload is WorkloadUnknown when
// grouping by dataset alone.
type Group struct {
	Dataset  string
	Workload results.Workload
}

// String returns the label used in logs and artifact names.
func (g Group) String() string {
	if g.Workload == results.WorkloadUnknown {
		return g.Dataset
	}

	return g.Dataset + "/" + g.Workload.String()
}

// GroupFunc derives the group a table's rows contribute to.
type GroupFunc func(*results.Table) Group

// ByDataset groups tables by dataset token alone. Callers are expected to
// have pre-filtered the tables to a single workload tier.
func ByDataset(t *results.Table) Group {
	return Group{Dataset: t.Dataset}
}

// ByDatasetWorkload groups tables by (dataset, workload).
func ByDatasetWorkload(t *results.Table) Group {
	return Group{Dataset: t.Dataset, Workload: t.Workload}
}

// Scalar is a reduced metric value. Valid is false when no finite value
// could be computed; callers must never conflate that with zero.
type Scalar struct {
	Value float64
	Valid bool
}

// Record is the reduced statistic for one (variant, group) pair. At most
// one Record exists per pair, and a Record exists only if at least one of
// its scalars is valid.
type Record struct {
	Variant    string
	Group      Group
	Throughput Scalar
	Size       Scalar
}

// Skip explains why a metric for a (variant, group) pair is unavailable.
type Skip struct {
	Variant string
	Group   Group
	Metric  string
	Reason  string
}

// Records is aggregation output ordered by group discovery order, then
// variant order.
type Records []Record

// Get returns the record for a (variant, group) pair.
func (rs Records) Get(variant string, g Group) (Record, bool) {
	for _, r := range rs {
		if r.Variant == variant && r.Group == g {
			return r, true
		}
	}

	return Record{}, false
}

// Groups returns the distinct groups in first-seen order.
func (rs Records) Groups() []Group {
	seen := make(map[Group]struct{}, len(rs))
	groups := make([]Group, 0, len(rs))

	for _, r := range rs {
		if _, ok := seen[r.Group]; ok {
			continue
		}

		seen[r.Group] = struct{}{}
		groups = append(groups, r.Group)
	}

	return groups
}

// Aggregate reduces the given tables to per-pair records. For throughput it
// flattens the finite trial values of every matching row in the group and
// takes their mean; mixed workloads contribute their mixed trial columns,
// all others the lookup ones. For size it takes the minimum row value for
// adaptive variants and the first row's value otherwise. Pairs that cannot
// be reduced come back as skips.
func Aggregate(tables []*results.Table, variants []Variant, groupBy GroupFunc) (Records, []Skip) {
	grouped := make(map[Group][]*results.Table, len(tables))
	order := make([]Group, 0, len(tables))

	for _, t := range tables {
		g := groupBy(t)

		if _, ok := grouped[g]; !ok {
			order = append(order, g)
		}

		grouped[g] = append(grouped[g], t)
	}

	var (
		records Records
		skips   []Skip
	)

	for _, g := range order {
		for _, v := range variants {
			rec := Record{Variant: v.Name, Group: g}

			throughput, skip := reduceThroughput(g, grouped[g], v)
			if skip != nil {
				skips = append(skips, *skip)
			}

			rec.Throughput = throughput

			size, skip := reduceSize(g, grouped[g], v)
			if skip != nil {
				skips = append(skips, *skip)
			}

			rec.Size = size

			if rec.Throughput.Valid || rec.Size.Valid {
				records = append(records, rec)
			}
		}
	}

	return records, skips
}

// reduceThroughput flattens all finite trial values for the pair and
// reduces them to their mean.
func reduceThroughput(g Group, tables []*results.Table, v Variant) (Scalar, *Skip) {
	var (
		vals        []float64
		sawRows     bool
		missingCols bool
	)

	for _, t := range tables {
		rows := t.Filter(colIndexName, v.Name)
		if rows.NumRows() == 0 {
			continue
		}

		sawRows = true

		cols := lookupTrialCols
		if t.Workload.Mixed() {
			cols = mixedTrialCols
		}

		if !hasColumns(rows, cols) {
			missingCols = true

			continue
		}

		for _, col := range cols {
			fs, _ := rows.Floats(col)

			for _, f := range fs {
				if isFinite(f) {
					vals = append(vals, f)
				}
			}
		}
	}

	if reason := emptyReason(sawRows, missingCols, len(vals), "throughput trial columns absent"); reason != "" {
		return Scalar{}, &Skip{Variant: v.Name, Group: g, Metric: MetricThroughput, Reason: reason}
	}

	mean := stats.Mean(vals)
	if !isFinite(mean) {
		return Scalar{}, &Skip{Variant: v.Name, Group: g, Metric: MetricThroughput, Reason: "non-finite mean"}
	}

	return Scalar{Value: mean, Valid: true}, nil
}

// reduceSize selects the size scalar for the pair: minimum across rows for
// adaptive variants, first row otherwise.
func reduceSize(g Group, tables []*results.Table, v Variant) (Scalar, *Skip) {
	var (
		sizes       []float64
		sawRows     bool
		missingCols bool
	)

	for _, t := range tables {
		rows := t.Filter(colIndexName, v.Name)
		if rows.NumRows() == 0 {
			continue
		}

		sawRows = true

		fs, ok := rows.Floats(colSizeBytes)
		if !ok {
			missingCols = true

			continue
		}

		for _, f := range fs {
			if isFinite(f) {
				sizes = append(sizes, f)
			}
		}
	}

	if reason := emptyReason(sawRows, missingCols, len(sizes), "index_size_bytes column absent"); reason != "" {
		return Scalar{}, &Skip{Variant: v.Name, Group: g, Metric: MetricSize, Reason: reason}
	}

	size := sizes[0]

	if v.AdaptiveSize {
		for _, s := range sizes[1:] {
			if s < size {
				size = s
			}
		}
	}

	return Scalar{Value: size, Valid: true}, nil
}

// emptyReason maps the possible empty-value-set causes to a skip reason, or
// returns "" when values exist.
func emptyReason(sawRows, missingCols bool, n int, missingReason string) string {
	switch {
	case n > 0:
		return ""
	case !sawRows:
		return "no rows for variant"
	case missingCols:
		return missingReason
	default:
		return "no finite values"
	}
}

func hasColumns(t *results.Table, cols []string) bool {
	for _, col := range cols {
		if !t.HasColumn(col) {
			return false
		}
	}

	return true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// LogSkips reports every unavailable pair through the given logger. Skips
// are collected during aggregation and logged centrally here so the causes
// stay inspectable in tests.
func LogSkips(log logrus.FieldLogger, skips []Skip) {
	for _, s := range skips {
		log.WithFields(logrus.Fields{
			"variant": s.Variant,
			"group":   s.Group.String(),
			"metric":  s.Metric,
		}).Warn("No data for pair: " + s.Reason)
	}
}
