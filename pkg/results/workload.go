package results

import (
	"path/filepath"
	"strings"
)

// Workload identifies the operation mix a result table was produced under.
// It is derived from the file name tokens the benchmarking harness encodes
// there, never from the table contents.
type Workload int

const (
	// WorkloadUnknown means the file name matched no workload pattern.
	WorkloadUnknown Workload = iota

	// WorkloadLookupOnly is a pure lookup run (0% inserts).
	WorkloadLookupOnly

	// WorkloadInsertLookup is a bulk-insert-then-lookup run.
	WorkloadInsertLookup

	// WorkloadMixed10Insert is an interleaved run with a 10% insert ratio.
	WorkloadMixed10Insert

	// WorkloadMixed90Insert is an interleaved run with a 90% insert ratio.
	WorkloadMixed90Insert
)

// String returns the label used in output tables and artifact names.
func (w Workload) String() string {
	switch w {
	case WorkloadLookupOnly:
		return "lookup_only"
	case WorkloadInsertLookup:
		return "insert_lookup"
	case WorkloadMixed10Insert:
		return "mixed_10_insert"
	case WorkloadMixed90Insert:
		return "mixed_90_insert"
	default:
		return "unknown"
	}
}

// Mixed reports whether the workload interleaves inserts and lookups.
// Mixed runs carry mixed_throughput_mops trial columns, all others carry
// lookup_throughput_mops columns.
func (w Workload) Mixed() bool {
	return w == WorkloadMixed10Insert || w == WorkloadMixed90Insert
}

// InsertTier returns the insert percentage of a mixed workload (10 or 90),
// and 0 for non-mixed workloads.
func (w Workload) InsertTier() int {
	switch w {
	case WorkloadMixed10Insert:
		return 10
	case WorkloadMixed90Insert:
		return 90
	default:
		return 0
	}
}

// File name tokens written by the harness. The insert ratio is a fixed
// six-decimal float followed by "i"; mixed runs append "_0m_mix".
const (
	tokenMixed90    = "0.900000i_0m_mix"
	tokenMixed10    = "0.100000i_0m_mix"
	tokenLookupOnly = "0.000000i"
	tokenMix        = "mix"
)

// insertTokens are the insert-ratio fragments that mark a non-mixed
// insert+lookup run.
var insertTokens = []string{"0.900000i", "0.500000i", "0.100000i"}

// ClassifyName derives the workload tag from a result file name. Rules are
// tested in priority order and the first hit wins: the mixed tokens embed
// the same insert-ratio fragments as the plain ones, so checking them first
// is what keeps a mixed-90 file from classifying as insert_lookup. A name
// matching no rule, or carrying an insert-ratio token inside an unmatched
// "mix" name, yields (WorkloadUnknown, false) and must be excluded.
func ClassifyName(name string) (Workload, bool) {
	base := filepath.Base(name)

	switch {
	case strings.Contains(base, tokenMixed90):
		return WorkloadMixed90Insert, true
	case strings.Contains(base, tokenMixed10):
		return WorkloadMixed10Insert, true
	}

	// Any remaining "mix" name has an insert ratio we do not report on.
	if strings.Contains(base, tokenMix) {
		return WorkloadUnknown, false
	}

	for _, tok := range insertTokens {
		if strings.Contains(base, tok) {
			return WorkloadInsertLookup, true
		}
	}

	if strings.Contains(base, tokenLookupOnly) {
		return WorkloadLookupOnly, true
	}

	return WorkloadUnknown, false
}

// ParseDataset extracts the leading dataset token from a result file name,
// e.g. "books" from "books_100M_public_uint64_..._results_table.csv". Names
// without an underscore return the base name without extension.
func ParseDataset(name string) string {
	base := filepath.Base(name)

	if ds, _, ok := strings.Cut(base, "_"); ok {
		return ds
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}
