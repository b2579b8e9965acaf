package report

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/plot/plotter"
)

func TestWriteBarChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")

	series := []barSeries{
		{Name: "LIPP", Color: color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, Values: plotter.Values{3.5, 6.0}},
		{Name: "DynamicPGM", Color: color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, Values: plotter.Values{1.5, 0}},
	}

	require.NoError(t, writeBarChart(path, "Throughput", "Mops/s", []string{"BOOKS", "FB"}, series, "%.2f", true))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBarLabelsSkipZeroBars(t *testing.T) {
	s := barSeries{Name: "LIPP", Values: plotter.Values{2.5, 0, 1.25}}

	labels, err := barLabels(s, 0, 1, "%.2f", false)
	require.NoError(t, err)

	// The zero-height bar stands for an absent pair and gets no label.
	require.Len(t, labels.Labels, 2)
	assert.Equal(t, []string{"2.50", "1.25"}, labels.Labels)
	assert.Equal(t, 2.5, labels.XYs[0].Y)
	assert.Equal(t, 1.25, labels.XYs[1].Y)
}
