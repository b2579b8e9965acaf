package main

import (
	"github.com/spf13/cobra"

	"github.com/jckenny59/COS568-LI-SP25/pkg/report"
)

var workloadsCmd = &cobra.Command{
	Use:   "workloads",
	Short: "Generate the per-workload comparison report",
	Long: `Classify every result table in the input directory by its workload tag,
aggregate per (dataset, workload) grouping, and emit a throughput chart
and a size chart for each populated grouping plus the combined raw table.`,
	RunE: runWorkloads,
}

var (
	workloadsInputDir  string
	workloadsOutputDir string
)

func init() {
	rootCmd.AddCommand(workloadsCmd)
	workloadsCmd.Flags().StringVar(&workloadsInputDir, "input-dir", "",
		"Directory of result tables (overrides config)")
	workloadsCmd.Flags().StringVar(&workloadsOutputDir, "output-dir", "",
		"Directory for generated artifacts (overrides config)")
}

func runWorkloads(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inputDir := cfg.Report.InputDir
	if workloadsInputDir != "" {
		inputDir = workloadsInputDir
	}

	outputDir := cfg.Report.OutputDir
	if workloadsOutputDir != "" {
		outputDir = workloadsOutputDir
	}

	return report.New(log, cfg).WorkloadReport(inputDir, outputDir)
}
