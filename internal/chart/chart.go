// Package chart turns report selections into gonum/plot figures and encodes them.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/popclean/internal/report"
)

// Figure sizes, matching a 10x6 inch canvas (10x8 for the heatmap).
var (
	Width         = 10 * vg.Inch
	Height        = 6 * vg.Inch
	HeatmapHeight = 8 * vg.Inch
)

// One fill per ranking chart, in presentation order.
var rankingColors = map[string]color.Color{
	report.TopPopulation.Title:    color.RGBA{R: 68, G: 1, B: 84, A: 255},
	report.BottomPopulation.Title: color.RGBA{R: 203, G: 27, B: 79, A: 255},
	report.TopDensity.Title:       color.RGBA{R: 140, G: 41, B: 129, A: 255},
	report.BottomDensity.Title:    color.RGBA{R: 59, G: 76, B: 192, A: 255},
	report.TopGrowth.Title:        color.RGBA{R: 44, G: 133, B: 140, A: 255},
	report.BottomGrowth.Title:     color.RGBA{R: 232, G: 118, B: 82, A: 255},
}

var histColor = color.RGBA{R: 31, G: 119, B: 220, A: 160}

// Ranking draws a horizontal bar chart: bar length is the metric, categories are
// labels, and the first selected entry sits at the top.
func Ranking(r report.Ranking) (*plot.Plot, error) {
	if len(r.Bars) == 0 {
		return nil, report.ErrEmptySelection
	}
	n := len(r.Bars)
	vals := make(plotter.Values, n)
	labels := make([]string, n)
	for i, b := range r.Bars {
		vals[n-1-i] = b.Value
		labels[n-1-i] = b.Label
	}

	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = r.Metric
	p.Y.Label.Text = report.LabelColumn
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(vals, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = rankingColors[r.Title]
	if bars.Color == nil {
		bars.Color = histColor
	}
	p.Add(bars)
	p.NominalY(labels...)
	return p, nil
}

// Histogram draws the binned distribution with its density curve overlaid.
func Histogram(d report.Distribution) (*plot.Plot, error) {
	if len(d.Counts) == 0 {
		return nil, report.ErrEmptySelection
	}
	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = d.Column
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	bins := make([]plotter.HistogramBin, len(d.Counts))
	for i, c := range d.Counts {
		bins[i] = plotter.HistogramBin{Min: d.Edges[i], Max: d.Edges[i+1], Weight: c}
	}
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     d.BinWidth(),
		FillColor: histColor,
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(h)

	if len(d.CurveX) > 1 {
		pts := make(plotter.XYs, len(d.CurveX))
		for i := range d.CurveX {
			pts[i].X = d.CurveX[i]
			pts[i].Y = d.CurveY[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("density curve: %w", err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = color.RGBA{R: 20, G: 60, B: 160, A: 255}
		p.Add(line)
	}
	return p, nil
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Row 0 is drawn at the
// top so the layout reads like the matrix.
type corrGrid struct{ m report.CorrMatrix }

func (g corrGrid) Dims() (c, r int) { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) Z(c, r int) float64 {
	n := len(g.m.Columns)
	return g.m.Values[n-1-r][c]
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// Heatmap draws the correlation matrix on a blue-to-red diverging scale fixed at
// [-1, 1], with each cell annotated with its coefficient.
func Heatmap(m report.CorrMatrix) (*plot.Plot, error) {
	n := len(m.Columns)
	if n == 0 {
		return nil, report.ErrEmptySelection
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	var pal palette.Palette = cm.Palette(255)

	p := plot.New()
	p.Title.Text = m.Title
	hm := plotter.NewHeatMap(corrGrid{m: m}, pal)
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	p.Add(hm)

	var xy plotter.XYs
	var text []string
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := m.Values[r][c]
			xy = append(xy, plotter.XY{X: float64(c), Y: float64(n - 1 - r)})
			text = append(text, formatCoef(v))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xy, Labels: text})
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	xt := make([]plot.Tick, n)
	yt := make([]plot.Tick, n)
	for i, name := range m.Columns {
		xt[i] = plot.Tick{Value: float64(i), Label: name}
		yt[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xt)
	p.Y.Tick.Marker = plot.ConstantTicks(yt)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(n)-0.5
	return p, nil
}

func formatCoef(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}

// Encode renders p in the given format ("png", "svg", "pdf", ...).
func Encode(p *plot.Plot, w, h vg.Length, format string) ([]byte, error) {
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}
