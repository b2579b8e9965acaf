package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jckenny59/COS568-LI-SP25/pkg/config"
	"github.com/jckenny59/COS568-LI-SP25/pkg/results"
)

const mixedHeader = "index_name,index_size_bytes,mixed_throughput_mops1,mixed_throughput_mops2,mixed_throughput_mops3\n"

func testReporter(t *testing.T) *Reporter {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return New(log, cfg)
}

func writeResult(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readManifest(t *testing.T, outDir string) []Artifact {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(outDir, "index.json"))
	require.NoError(t, err)

	var manifest struct {
		Artifacts []Artifact `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal(data, &manifest))

	return manifest.Artifacts
}

func TestWorkloadReportEndToEnd(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	writeResult(t, inDir,
		"books_100M_public_uint64_ops_2M_0.000000rq_0.500000nl_0.100000i_0m_mix_results_table.csv",
		mixedHeader+"LIPP,1048576,3.0,3.5,4.0\nDynamicPGM,524288,2.0,2.0,2.0\n")
	writeResult(t, inDir,
		"fb_100M_public_uint64_ops_2M_0.000000rq_0.500000nl_0.900000i_0m_mix_results_table.csv",
		mixedHeader+"HybridPGMLIPP,2097152,5.0,5.0,5.0\n")
	// Matches the glob but no workload pattern: must be skipped, not fatal.
	writeResult(t, inDir,
		"osmc_100M_public_uint64_ops_2M_results_table.csv",
		"index_name,index_size_bytes\nLIPP,100\n")

	r := testReporter(t)
	require.NoError(t, r.WorkloadReport(inDir, outDir))

	// Exactly the two populated groupings got throughput charts.
	assert.FileExists(t, filepath.Join(outDir, "throughput_books_mixed_10_insert.png"))
	assert.FileExists(t, filepath.Join(outDir, "throughput_fb_mixed_90_insert.png"))
	assert.FileExists(t, filepath.Join(outDir, "size_books_mixed_10_insert.png"))
	assert.FileExists(t, filepath.Join(outDir, "size_fb_mixed_90_insert.png"))

	assert.FileExists(t, filepath.Join(outDir, "result_analysis.csv"))
	assert.FileExists(t, filepath.Join(outDir, "summary.md"))

	var charts int

	for _, a := range readManifest(t, outDir) {
		if a.Kind == artifactChart {
			charts++
		}
	}

	assert.Equal(t, 4, charts, "the unclassified file must not produce a grouping")

	// The combined table carries the classified rows only.
	combined, err := results.ReadTable(filepath.Join(outDir, "result_analysis.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3, combined.NumRows())
}

func TestWorkloadReportNoData(t *testing.T) {
	inDir := t.TempDir()

	writeResult(t, inDir, "osmc_100M_public_uint64_ops_2M_results_table.csv",
		"index_name\nLIPP\n")

	r := testReporter(t)
	err := r.WorkloadReport(inDir, filepath.Join(t.TempDir(), "out"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, results.ErrNoData))
}

func TestDatasetReport(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	writeResult(t, inDir,
		"books_100M_public_uint64_ops_2M_0.000000rq_0.500000nl_0.100000i_0m_mix_results_table.csv",
		mixedHeader+"LIPP,10485760,3.0,3.0,3.0\nDynamicPGM,5242880,2.0,2.0,2.0\nDynamicPGM,2097152,1.0,1.0,1.0\n")
	writeResult(t, inDir,
		"fb_100M_public_uint64_ops_2M_0.000000rq_0.500000nl_0.100000i_0m_mix_results_table.csv",
		mixedHeader+"LIPP,20971520,6.0,6.0,6.0\n")
	// Dataset outside the configured allow-list: ignored.
	writeResult(t, inDir,
		"wiki_100M_public_uint64_ops_2M_0.000000rq_0.500000nl_0.100000i_0m_mix_results_table.csv",
		mixedHeader+"LIPP,1,1.0,1.0,1.0\n")

	r := testReporter(t)
	require.NoError(t, r.DatasetReport(inDir, outDir))

	assert.FileExists(t, filepath.Join(outDir, "throughput_comparison_10p.png"))
	assert.FileExists(t, filepath.Join(outDir, "size_comparison_10p.png"))
	assert.FileExists(t, filepath.Join(outDir, "summary.md"))

	// No 90% tier input, so no 90p artifacts.
	assert.NoFileExists(t, filepath.Join(outDir, "throughput_comparison_90p.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "throughput_90p.csv"))

	tput, err := ReadSummaryCSV(filepath.Join(outDir, "throughput_10p.csv"))
	require.NoError(t, err)

	v, ok := tput.Get("LIPP", "books")
	require.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-9)

	v, ok = tput.Get("LIPP", "fb")
	require.True(t, ok)
	assert.InDelta(t, 6.0, v, 1e-9)

	// DynamicPGM throughput flattens both rows' trials.
	v, ok = tput.Get("DynamicPGM", "books")
	require.True(t, ok)
	assert.InDelta(t, 1.5, v, 1e-9)

	// The unconfigured dataset contributes nothing.
	_, ok = tput.Get("LIPP", "osmc")
	assert.False(t, ok)

	size, err := ReadSummaryCSV(filepath.Join(outDir, "size_10p.csv"))
	require.NoError(t, err)

	// Adaptive variant reports its minimum size.
	v, ok = size.Get("DynamicPGM", "books")
	require.True(t, ok)
	assert.Equal(t, float64(2097152), v)

	v, ok = size.Get("LIPP", "books")
	require.True(t, ok)
	assert.Equal(t, float64(10485760), v)
}

func TestDatasetReportNoData(t *testing.T) {
	inDir := t.TempDir()

	// Classifies as insert_lookup, but the dataset report only consumes
	// mixed tables.
	writeResult(t, inDir,
		"books_100M_public_uint64_ops_2M_0.500000i_0m_results_table.csv",
		"index_name,index_size_bytes,lookup_throughput_mops1\nLIPP,1,1\n")

	r := testReporter(t)
	err := r.DatasetReport(inDir, filepath.Join(t.TempDir(), "out"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, results.ErrNoData))
}

func TestPrettyWorkload(t *testing.T) {
	assert.Equal(t, "Mixed 10 Insert", prettyWorkload(results.WorkloadMixed10Insert))
	assert.Equal(t, "Lookup Only", prettyWorkload(results.WorkloadLookupOnly))
}
