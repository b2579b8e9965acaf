package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultInputDir is the default directory holding harness result tables.
	DefaultInputDir = "./results"

	// DefaultOutputDir is the default directory for generated artifacts.
	DefaultOutputDir = "./analysis_results"

	// DefaultFileGlob matches the result tables the harness writes.
	DefaultFileGlob = "*_results_table.csv"
)

// Config is the root configuration for lireport.
type Config struct {
	Global   GlobalConfig    `yaml:"global"`
	Report   ReportConfig    `yaml:"report"`
	Datasets []string        `yaml:"datasets"`
	Variants []VariantConfig `yaml:"variants"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"`
}

// ReportConfig contains settings shared by the report commands.
type ReportConfig struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	FileGlob  string `yaml:"file_glob"`

	// ValueLabels renders the numeric value atop each bar. Defaults to true.
	ValueLabels *bool `yaml:"value_labels"`
}

// VariantConfig describes one index variant of interest. Rows whose
// index_name is not listed here are discarded before aggregation; list
// order fixes the bar display order.
type VariantConfig struct {
	Name         string `yaml:"name"`
	Color        string `yaml:"color,omitempty"`
	AdaptiveSize bool   `yaml:"adaptive_size,omitempty"`
}

// Load reads and parses a configuration file. An empty path returns the
// built-in defaults, which cover the standard harness setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults sets default values for unspecified configuration options.
func (c *Config) applyDefaults() {
	if c.Global.LogLevel == "" {
		c.Global.LogLevel = DefaultLogLevel
	}

	if c.Report.InputDir == "" {
		c.Report.InputDir = DefaultInputDir
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = DefaultOutputDir
	}

	if c.Report.FileGlob == "" {
		c.Report.FileGlob = DefaultFileGlob
	}

	if c.Report.ValueLabels == nil {
		labels := true
		c.Report.ValueLabels = &labels
	}

	if len(c.Datasets) == 0 {
		c.Datasets = []string{"books", "fb", "osmc"}
	}

	if len(c.Variants) == 0 {
		c.Variants = []VariantConfig{
			{Name: "HybridPGMLIPP", Color: "#1f77b4"},
			{Name: "DynamicPGM", Color: "#ff7f0e", AdaptiveSize: true},
			{Name: "LIPP", Color: "#2ca02c"},
		}
	}

	for i := range c.Variants {
		if c.Variants[i].Color == "" {
			c.Variants[i].Color = fallbackColors[i%len(fallbackColors)]
		}
	}
}

// fallbackColors are assigned to variants without an explicit color.
var fallbackColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b",
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Variants) == 0 {
		return fmt.Errorf("at least one variant must be configured")
	}

	if len(c.Datasets) == 0 {
		return fmt.Errorf("at least one dataset must be configured")
	}

	seen := make(map[string]struct{}, len(c.Variants))

	for i, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("variant %d: name is required", i)
		}

		if _, exists := seen[v.Name]; exists {
			return fmt.Errorf("variant %d: duplicate name %q", i, v.Name)
		}

		seen[v.Name] = struct{}{}

		if _, err := v.RGBA(); err != nil {
			return fmt.Errorf("variant %q: %w", v.Name, err)
		}
	}

	return nil
}

// RGBA parses the variant's hex color.
func (v VariantConfig) RGBA() (color.RGBA, error) {
	s := strings.TrimPrefix(v.Color, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q, expected #RRGGBB", v.Color)
	}

	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", v.Color, err)
	}

	return color.RGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xff,
	}, nil
}
