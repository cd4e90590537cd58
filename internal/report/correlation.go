package report

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/popclean/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
// Undefined coefficients (fewer than two paired values or zero variance) are NaN.
type CorrMatrix struct {
	Title   string
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// pairAcc accumulates sums for one column pair over rows where both are present.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (pa *pairAcc) add(x, y float64) {
	pa.n++
	pa.sumX += x
	pa.sumY += y
	pa.sumXX += x * x
	pa.sumYY += y * y
	pa.sumXY += x * y
}

func (pa *pairAcc) r() float64 {
	if pa.n < 2 {
		return math.NaN()
	}
	denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
	if denom == 0 || math.IsNaN(denom) {
		return math.NaN()
	}
	r := (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// NumericColumns lists columns whose inferred kind is numeric, in table order.
func NumericColumns(t *dataset.Table) []int {
	var out []int
	for i, c := range t.Columns {
		if c.Kind == dataset.Number {
			out = append(out, i)
		}
	}
	return out
}

// Correlate computes pairwise-complete Pearson correlations among numeric columns.
func Correlate(t *dataset.Table, title string) (CorrMatrix, error) {
	idx := NumericColumns(t)
	if len(idx) == 0 {
		return CorrMatrix{}, fmt.Errorf("%s: no numeric columns: %w", title, ErrEmptySelection)
	}
	n := len(idx)
	pairs := make([][]pairAcc, n)
	for i := range pairs {
		pairs[i] = make([]pairAcc, n)
	}
	for _, row := range t.Rows {
		for a := 0; a < n; a++ {
			x, ok := row[idx[a]].Float()
			if !ok || math.IsInf(x, 0) {
				continue
			}
			for b := a; b < n; b++ {
				y, ok := row[idx[b]].Float()
				if !ok || math.IsInf(y, 0) {
					continue
				}
				pairs[a][b].add(x, y)
			}
		}
	}
	m := CorrMatrix{Title: title, Columns: make([]string, n), Values: make([][]float64, n)}
	for a := 0; a < n; a++ {
		m.Columns[a] = t.Columns[idx[a]].Name
		m.Values[a] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r := pairs[a][b].r()
			if a == b && !math.IsNaN(r) {
				r = 1
			}
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m, nil
}
