package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultLogLevel, cfg.Global.LogLevel)
	assert.Equal(t, DefaultInputDir, cfg.Report.InputDir)
	assert.Equal(t, DefaultOutputDir, cfg.Report.OutputDir)
	assert.Equal(t, DefaultFileGlob, cfg.Report.FileGlob)
	assert.True(t, *cfg.Report.ValueLabels)

	assert.Equal(t, []string{"books", "fb", "osmc"}, cfg.Datasets)

	require.Len(t, cfg.Variants, 3)
	assert.Equal(t, "HybridPGMLIPP", cfg.Variants[0].Name)
	assert.True(t, cfg.Variants[1].AdaptiveSize, "DynamicPGM reports multiple size variants")
	assert.False(t, cfg.Variants[0].AdaptiveSize)
}

func TestLoadFile(t *testing.T) {
	content := `
global:
  log_level: debug
report:
  input_dir: ./bench-out
  output_dir: ./report-out
  value_labels: false
datasets: [wiki]
variants:
  - name: BTree
    color: "#d62728"
  - name: ALEX
    adaptive_size: true
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Global.LogLevel)
	assert.Equal(t, "./bench-out", cfg.Report.InputDir)
	assert.Equal(t, "./report-out", cfg.Report.OutputDir)
	assert.False(t, *cfg.Report.ValueLabels)
	assert.Equal(t, []string{"wiki"}, cfg.Datasets)

	require.Len(t, cfg.Variants, 2)
	assert.Equal(t, "BTree", cfg.Variants[0].Name)
	// Unset colors fall back to the default palette.
	assert.NotEmpty(t, cfg.Variants[1].Color)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty variant name",
			mutate:  func(c *Config) { c.Variants[0].Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "duplicate variant name",
			mutate:  func(c *Config) { c.Variants[1].Name = c.Variants[0].Name },
			wantErr: "duplicate name",
		},
		{
			name:    "bad color",
			mutate:  func(c *Config) { c.Variants[0].Color = "#12345" },
			wantErr: "invalid color",
		},
		{
			name:    "no datasets",
			mutate:  func(c *Config) { c.Datasets = nil },
			wantErr: "at least one dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestVariantRGBA(t *testing.T) {
	c, err := VariantConfig{Color: "#1f77b4"}.RGBA()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, c)

	_, err = VariantConfig{Color: "blue"}.RGBA()
	assert.Error(t, err)
}
