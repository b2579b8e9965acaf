package main

import (
	"github.com/spf13/cobra"

	"github.com/jckenny59/COS568-LI-SP25/pkg/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate the per-dataset insert-tier comparison report",
	Long: `Aggregate the mixed-workload result tables for every configured dataset
at the 10% and 90% insert tiers, and emit grouped comparison charts plus
one flat summary table per metric and tier.`,
	RunE: runAnalyze,
}

var (
	analyzeInputDir  string
	analyzeOutputDir string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeInputDir, "input-dir", "",
		"Directory of result tables (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "output-dir", "",
		"Directory for generated artifacts (overrides config)")
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inputDir := cfg.Report.InputDir
	if analyzeInputDir != "" {
		inputDir = analyzeInputDir
	}

	outputDir := cfg.Report.OutputDir
	if analyzeOutputDir != "" {
		outputDir = analyzeOutputDir
	}

	return report.New(log, cfg).DatasetReport(inputDir, outputDir)
}
