package report

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/popclean/internal/dataset"
)

// ErrEmptySelection is returned when a chart has nothing to plot.
var ErrEmptySelection = errors.New("empty selection")

// DefaultLimit is the number of countries shown per ranking chart.
const DefaultLimit = 10

// Order is the sort direction of a ranking.
type Order int

const (
	Descending Order = iota
	Ascending
)

// Bar is one labelled value in a ranking chart.
type Bar struct {
	Label string
	Value float64
}

// Ranking is an ordered top/bottom selection over one numeric column.
type Ranking struct {
	Title  string
	Metric string
	Order  Order
	Bars   []Bar
}

// Rank selects up to limit rows ordered by metric. The sort is stable, so ties keep
// their table order. Rows whose metric is null or infinite are never selected.
func Rank(t *dataset.Table, labelCol, metric string, order Order, limit int) ([]Bar, error) {
	li, err := t.Require(labelCol)
	if err != nil {
		return nil, err
	}
	mi, err := t.Require(metric)
	if err != nil {
		return nil, err
	}
	bars := make([]Bar, 0, t.Len())
	for _, r := range t.Rows {
		v, ok := r[mi].Float()
		if !ok || math.IsInf(v, 0) {
			continue
		}
		bars = append(bars, Bar{Label: r[li].String(), Value: v})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		if order == Ascending {
			return bars[i].Value < bars[j].Value
		}
		return bars[i].Value > bars[j].Value
	})
	if limit > 0 && len(bars) > limit {
		bars = bars[:limit]
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", metric, ErrEmptySelection)
	}
	return bars, nil
}

// RankingSpec names one of the six ranking charts.
type RankingSpec struct {
	Title  string
	Metric string
	Order  Order
}

// Build resolves the spec against t.
func (s RankingSpec) Build(t *dataset.Table, labelCol string, limit int) (Ranking, error) {
	bars, err := Rank(t, labelCol, s.Metric, s.Order, limit)
	if err != nil {
		return Ranking{}, fmt.Errorf("%s: %w", s.Title, err)
	}
	return Ranking{Title: s.Title, Metric: s.Metric, Order: s.Order, Bars: bars}, nil
}
