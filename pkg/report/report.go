// Package report arranges aggregated benchmark scalars into comparison
// charts, flat summary tables and a markdown digest. Output is write-only:
// nothing here is read back by the pipeline.
package report

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/plotter"

	"github.com/jckenny59/COS568-LI-SP25/pkg/aggregate"
	"github.com/jckenny59/COS568-LI-SP25/pkg/config"
	"github.com/jckenny59/COS568-LI-SP25/pkg/fsutil"
	"github.com/jckenny59/COS568-LI-SP25/pkg/results"
)

const bytesPerMB = 1 << 20

// Reporter runs the two report flavors over a directory of result tables.
type Reporter struct {
	log logrus.FieldLogger
	cfg *config.Config
}

// New creates a Reporter.
func New(log logrus.FieldLogger, cfg *config.Config) *Reporter {
	return &Reporter{log: log, cfg: cfg}
}

// variantStyle pairs a variant with its parsed display color.
type variantStyle struct {
	aggregate.Variant

	Color color.RGBA
}

func (r *Reporter) styles() ([]variantStyle, error) {
	styles := make([]variantStyle, 0, len(r.cfg.Variants))

	for _, v := range r.cfg.Variants {
		c, err := v.RGBA()
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}

		styles = append(styles, variantStyle{
			Variant: aggregate.Variant{Name: v.Name, AdaptiveSize: v.AdaptiveSize},
			Color:   c,
		})
	}

	return styles, nil
}

func variantsOf(styles []variantStyle) []aggregate.Variant {
	vs := make([]aggregate.Variant, 0, len(styles))
	for _, s := range styles {
		vs = append(vs, s.Variant)
	}

	return vs
}

func variantNames(styles []variantStyle) []string {
	names := make([]string, 0, len(styles))
	for _, s := range styles {
		names = append(names, s.Name)
	}

	return names
}

// valueFormat returns the bar label format, or "" when labels are off.
func (r *Reporter) valueFormat(format string) string {
	if r.cfg.Report.ValueLabels != nil && !*r.cfg.Report.ValueLabels {
		return ""
	}

	return format
}

// DatasetReport implements the analyze command: per-dataset comparison of
// the mixed workloads at the 10% and 90% insert tiers. For each tier it
// emits one grouped chart and one flat table per metric, then a markdown
// digest and the artifact manifest.
func (r *Reporter) DatasetReport(inputDir, outputDir string) error {
	styles, err := r.styles()
	if err != nil {
		return err
	}

	tables, err := results.Load(r.log, inputDir, r.cfg.Report.FileGlob)
	if err != nil {
		return err
	}

	datasets := make(map[string]struct{}, len(r.cfg.Datasets))
	for _, ds := range r.cfg.Datasets {
		datasets[ds] = struct{}{}
	}

	tiers := make(map[int][]*results.Table, 2)

	for _, t := range tables {
		if !t.Workload.Mixed() {
			r.log.WithField("file", filepath.Base(t.Path)).Debug("Ignoring non-mixed table for dataset report")

			continue
		}

		if _, ok := datasets[t.Dataset]; !ok {
			r.log.WithFields(logrus.Fields{
				"file":    filepath.Base(t.Path),
				"dataset": t.Dataset,
			}).Info("Ignoring table for unconfigured dataset")

			continue
		}

		tiers[t.Workload.InsertTier()] = append(tiers[t.Workload.InsertTier()], t)
	}

	if len(tiers[10])+len(tiers[90]) == 0 {
		return fmt.Errorf("%w: no mixed-workload tables in %s", results.ErrNoData, inputDir)
	}

	if err := fsutil.EnsureDir(outputDir); err != nil {
		return err
	}

	var (
		artifacts []Artifact
		sections  []mdSection
	)

	for _, tier := range []int{10, 90} {
		if len(tiers[tier]) == 0 {
			r.log.WithField("tier", tier).Warn("No tables for insert tier")

			continue
		}

		records, skips := aggregate.Aggregate(tiers[tier], variantsOf(styles), aggregate.ByDataset)
		aggregate.LogSkips(r.log, skips)

		suffix := fmt.Sprintf("%dp", tier)

		charts, err := r.writeTierCharts(outputDir, suffix, tier, records, styles)
		if err != nil {
			return err
		}

		artifacts = append(artifacts, charts...)

		tput := NewSummary(variantNames(styles), r.cfg.Datasets)
		size := NewSummary(variantNames(styles), r.cfg.Datasets)

		for _, ds := range r.cfg.Datasets {
			for _, s := range styles {
				rec, ok := records.Get(s.Name, aggregate.Group{Dataset: ds})
				if !ok {
					continue
				}

				if rec.Throughput.Valid {
					tput.Set(s.Name, ds, rec.Throughput.Value)
				}

				if rec.Size.Valid {
					size.Set(s.Name, ds, rec.Size.Value)
				}
			}
		}

		summaries := []struct {
			name    string
			summary *Summary
		}{
			{"throughput_" + suffix + ".csv", tput},
			{"size_" + suffix + ".csv", size},
		}

		for _, s := range summaries {
			if err := WriteSummaryCSV(filepath.Join(outputDir, s.name), s.summary); err != nil {
				return err
			}

			artifacts = append(artifacts, Artifact{Name: s.name, Kind: artifactTable})
		}

		sections = append(sections, mdSection{
			Heading: fmt.Sprintf("%d%% insert ratio", tier),
			Records: records,
		})
	}

	md := renderMarkdown("Learned index comparison by dataset", variantNames(styles), sections)
	if err := fsutil.WriteFile(filepath.Join(outputDir, "summary.md"), []byte(md)); err != nil {
		return err
	}

	artifacts = append(artifacts, Artifact{Name: "summary.md", Kind: artifactSummary})

	if err := writeManifest(outputDir, "analyze", artifacts); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"output_dir": outputDir,
		"artifacts":  len(artifacts),
	}).Info("Dataset report complete")

	return nil
}

// writeTierCharts emits the two grouped comparison charts for one insert
// tier: throughput in Mops/s and index size in MB, datasets on the X axis.
func (r *Reporter) writeTierCharts(outputDir, suffix string, tier int, records aggregate.Records, styles []variantStyle) ([]Artifact, error) {
	groups := make([]string, 0, len(r.cfg.Datasets))
	for _, ds := range r.cfg.Datasets {
		groups = append(groups, strings.ToUpper(ds))
	}

	var artifacts []Artifact

	metrics := []struct {
		name   string
		title  string
		yLabel string
		format string
		value  func(aggregate.Record) (float64, bool)
	}{
		{
			name:   "throughput_comparison_" + suffix + ".png",
			title:  fmt.Sprintf("Throughput Comparison (%d%% Insert Ratio)", tier),
			yLabel: "Throughput (Mops/s)",
			format: "%.2f",
			value: func(rec aggregate.Record) (float64, bool) {
				return rec.Throughput.Value, rec.Throughput.Valid
			},
		},
		{
			name:   "size_comparison_" + suffix + ".png",
			title:  fmt.Sprintf("Index Size Comparison (%d%% Insert Ratio)", tier),
			yLabel: "Size (MB)",
			format: "%.1f",
			value: func(rec aggregate.Record) (float64, bool) {
				return rec.Size.Value / bytesPerMB, rec.Size.Valid
			},
		},
	}

	for _, m := range metrics {
		var (
			series []barSeries
			any    bool
		)

		for _, s := range styles {
			values := make(plotter.Values, len(r.cfg.Datasets))

			for j, ds := range r.cfg.Datasets {
				rec, ok := records.Get(s.Name, aggregate.Group{Dataset: ds})
				if !ok {
					continue
				}

				if v, valid := m.value(rec); valid {
					values[j] = v
					any = true
				}
			}

			series = append(series, barSeries{Name: s.Name, Color: s.Color, Values: values})
		}

		if !any {
			r.log.WithField("chart", m.name).Warn("No data for chart, skipping")

			continue
		}

		path := filepath.Join(outputDir, m.name)
		if err := writeBarChart(path, m.title, m.yLabel, groups, series, r.valueFormat(m.format), true); err != nil {
			return nil, err
		}

		artifacts = append(artifacts, Artifact{Name: m.name, Kind: artifactChart})
	}

	return artifacts, nil
}

// WorkloadReport implements the workloads command: every classified table
// contributes to its (dataset, workload) grouping, and each populated
// grouping gets a throughput chart and a size chart with variants on the X
// axis. The combined raw table, markdown digest and manifest follow.
func (r *Reporter) WorkloadReport(inputDir, outputDir string) error {
	styles, err := r.styles()
	if err != nil {
		return err
	}

	tables, err := results.Load(r.log, inputDir, r.cfg.Report.FileGlob)
	if err != nil {
		return err
	}

	if len(tables) == 0 {
		return fmt.Errorf("%w: no files matched a workload pattern in %s", results.ErrNoData, inputDir)
	}

	records, skips := aggregate.Aggregate(tables, variantsOf(styles), aggregate.ByDatasetWorkload)
	aggregate.LogSkips(r.log, skips)

	if err := fsutil.EnsureDir(outputDir); err != nil {
		return err
	}

	var artifacts []Artifact

	for _, g := range records.Groups() {
		charts, err := r.writeGroupCharts(outputDir, g, records, styles)
		if err != nil {
			return err
		}

		artifacts = append(artifacts, charts...)
	}

	if err := WriteCombinedCSV(filepath.Join(outputDir, "result_analysis.csv"), tables); err != nil {
		return err
	}

	artifacts = append(artifacts, Artifact{Name: "result_analysis.csv", Kind: artifactTable})

	md := renderMarkdown(
		"Learned index comparison by workload",
		variantNames(styles),
		[]mdSection{{Heading: "By dataset and workload", Records: records}},
	)
	if err := fsutil.WriteFile(filepath.Join(outputDir, "summary.md"), []byte(md)); err != nil {
		return err
	}

	artifacts = append(artifacts, Artifact{Name: "summary.md", Kind: artifactSummary})

	if err := writeManifest(outputDir, "workloads", artifacts); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"output_dir": outputDir,
		"groupings":  len(records.Groups()),
	}).Info("Workload report complete")

	return nil
}

// writeGroupCharts emits the per-grouping charts with variants on the X
// axis. A metric with no valid scalar in the grouping produces no chart.
func (r *Reporter) writeGroupCharts(outputDir string, g aggregate.Group, records aggregate.Records, styles []variantStyle) ([]Artifact, error) {
	base := g.Dataset + "_" + g.Workload.String()

	var artifacts []Artifact

	metrics := []struct {
		name   string
		title  string
		yLabel string
		format string
		value  func(aggregate.Record) (float64, bool)
	}{
		{
			name:   "throughput_" + base + ".png",
			title:  fmt.Sprintf("Throughput - %s (%s)", prettyWorkload(g.Workload), g.Dataset),
			yLabel: "Throughput (Mops/s)",
			format: "%.2f",
			value: func(rec aggregate.Record) (float64, bool) {
				return rec.Throughput.Value, rec.Throughput.Valid
			},
		},
		{
			name:   "size_" + base + ".png",
			title:  fmt.Sprintf("Index Size - %s (%s)", prettyWorkload(g.Workload), g.Dataset),
			yLabel: "Size (MB)",
			format: "%.1f",
			value: func(rec aggregate.Record) (float64, bool) {
				return rec.Size.Value / bytesPerMB, rec.Size.Valid
			},
		},
	}

	for _, m := range metrics {
		series := make([]barSeries, 0, len(styles))
		any := false

		for i, s := range styles {
			values := make(plotter.Values, len(styles))

			if rec, ok := records.Get(s.Name, g); ok {
				if v, valid := m.value(rec); valid {
					values[i] = v
					any = true
				}
			}

			series = append(series, barSeries{Name: s.Name, Color: s.Color, Values: values})
		}

		if !any {
			r.log.WithFields(logrus.Fields{
				"group": g.String(),
				"chart": m.name,
			}).Warn("No data for chart, skipping")

			continue
		}

		path := filepath.Join(outputDir, m.name)
		if err := writeBarChart(path, m.title, m.yLabel, variantNames(styles), series, r.valueFormat(m.format), false); err != nil {
			return nil, err
		}

		artifacts = append(artifacts, Artifact{Name: m.name, Kind: artifactChart})
	}

	return artifacts, nil
}

// prettyWorkload turns a workload label into its chart-title form, e.g.
// "mixed_10_insert" into "Mixed 10 Insert".
func prettyWorkload(w results.Workload) string {
	parts := strings.Split(w.String(), "_")

	for i, p := range parts {
		if p == "" {
			continue
		}

		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}

	return strings.Join(parts, " ")
}
