package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaramelBytes/popclean/internal/dataset"
)

// Histogram settings for the rank distribution chart.
const (
	DefaultBins        = 50
	kdeGridPoints      = 200
	kdeMinObservations = 2
)

// Distribution is a binned histogram of one numeric column with a smoothed density
// curve scaled to the same count axis.
type Distribution struct {
	Title  string
	Column string
	Values []float64
	// Edges has len(Counts)+1 entries; the last bin is closed on both ends.
	Edges  []float64
	Counts []float64
	// CurveX/CurveY trace the kernel density estimate; empty when it cannot be fitted.
	CurveX []float64
	CurveY []float64
}

// BinWidth returns the common bin width.
func (d Distribution) BinWidth() float64 {
	if len(d.Edges) < 2 {
		return 0
	}
	return d.Edges[1] - d.Edges[0]
}

// NewDistribution bins the non-null values of col into bins equal-width buckets over
// [min, max] and overlays a Gaussian KDE using Scott's bandwidth rule.
func NewDistribution(t *dataset.Table, title, col string, bins int) (Distribution, error) {
	ci, err := t.Require(col)
	if err != nil {
		return Distribution{}, fmt.Errorf("%s: %w", title, err)
	}
	var vals []float64
	for _, r := range t.Rows {
		if v, ok := r[ci].Float(); ok && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Distribution{}, fmt.Errorf("%s: %s: %w", title, col, ErrEmptySelection)
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	d := Distribution{Title: title, Column: col, Values: vals}
	d.Edges, d.Counts = histogram(vals, bins)
	d.CurveX, d.CurveY = kde(vals, d.Edges[0], d.Edges[len(d.Edges)-1], d.BinWidth())
	return d, nil
}

func histogram(vals []float64, bins int) (edges, counts []float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi
	counts = make([]float64, bins)
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}
	return edges, counts
}

// kde evaluates a Gaussian kernel density estimate over [lo, hi] and scales it by
// n*binWidth so it sits on the histogram's count axis.
func kde(vals []float64, lo, hi, binWidth float64) (xs, ys []float64) {
	n := float64(len(vals))
	if len(vals) < kdeMinObservations {
		return nil, nil
	}
	sd := stat.StdDev(vals, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil, nil
	}
	bw := sd * math.Pow(n, -1.0/5.0)
	kernel := distuv.UnitNormal
	xs = make([]float64, kdeGridPoints)
	ys = make([]float64, kdeGridPoints)
	step := (hi - lo) / float64(kdeGridPoints-1)
	for i := range xs {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range vals {
			sum += kernel.Prob((x - v) / bw)
		}
		xs[i] = x
		ys[i] = sum / bw * binWidth
	}
	return xs, ys
}
