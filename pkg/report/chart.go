package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// barSeries is one variant's bars across the chart groups, in display
// order. Values holds one entry per group; pairs without data render as
// zero-height bars at this layer only, the aggregation output keeps them
// absent.
type barSeries struct {
	Name   string
	Color  color.RGBA
	Values plotter.Values
}

var barWidth = vg.Points(20)

// writeBarChart renders a bar chart: one colored series per variant,
// nominal X ticks per group, Y axis clamped to start at zero. When grouped
// is true the series are offset side by side within each group; when false
// each series is expected to occupy its own tick (variant-axis charts) and
// stays centered on it. valueFormat, when non-empty, prints each bar's
// value above it.
func writeBarChart(path, title, yLabel string, groups []string, series []barSeries, valueFormat string, grouped bool) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	n := len(series)

	for i, s := range series {
		bars, err := plotter.NewBarChart(s.Values, barWidth)
		if err != nil {
			return fmt.Errorf("building bars for %s: %w", s.Name, err)
		}

		bars.Color = s.Color
		bars.LineStyle.Width = vg.Length(0)

		if grouped {
			bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth
		}

		p.Add(bars)
		p.Legend.Add(s.Name, bars)

		if valueFormat != "" {
			labels, err := barLabels(s, i, n, valueFormat, grouped)
			if err != nil {
				return fmt.Errorf("labeling bars for %s: %w", s.Name, err)
			}

			p.Add(labels)
		}
	}

	p.Legend.Top = true
	p.NominalX(groups...)
	p.X.Tick.Label.Rotation = 0

	width := vg.Length(2+2*len(groups)) * vg.Inch

	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}

	return nil
}

// barLabels places each bar's numeric value just above it. The horizontal
// offset mirrors the bar offsets closely enough for reading; exact
// alignment would need canvas coordinates the data layer does not have.
func barLabels(s barSeries, idx, total int, format string, grouped bool) (*plotter.Labels, error) {
	var dx float64

	if grouped {
		spread := 0.8 / float64(total)
		dx = (float64(idx) - float64(total-1)/2) * spread
	}

	xys := make(plotter.XYs, 0, len(s.Values))
	texts := make([]string, 0, len(s.Values))

	for j, v := range s.Values {
		// Zero-height bars stand in for pairs with no data and stay
		// unlabeled; printing "0.00" over them would read as a measurement.
		if v == 0 {
			continue
		}

		xys = append(xys, plotter.XY{X: float64(j) + dx, Y: v})
		texts = append(texts, fmt.Sprintf(format, v))
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}

	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
		labels.TextStyle[i].Font.Size = vg.Points(9)
	}

	return labels, nil
}
