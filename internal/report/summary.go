package report

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/popclean/internal/dataset"
)

// HeadRows is how many leading rows a summary shows.
const HeadRows = 5

// Stage labels a summary as taken before or after cleaning.
type Stage string

const (
	StageBefore Stage = "before"
	StageAfter  Stage = "after"
)

// ColumnInfo is the per-column schema line of a summary.
type ColumnInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	NonNull int    `json:"non_null"`
	Nulls   int    `json:"nulls"`
	// Stats is set for numeric columns with at least one finite value. Infinite
	// cells are not counted.
	Stats *NumStats `json:"stats,omitempty"`
}

// NumStats describes the non-null values of a numeric column.
type NumStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Summary is the textual overview shown before and after cleaning: the first rows,
// per-column null counts and an inferred schema.
type Summary struct {
	Stage   Stage        `json:"stage"`
	Name    string       `json:"name"`
	Rows    int          `json:"rows"`
	Columns []ColumnInfo `json:"columns"`
	Header  []string     `json:"header"`
	Head    [][]string   `json:"head"`
}

// Summarize builds a Summary of t.
func Summarize(stage Stage, t *dataset.Table) Summary {
	s := Summary{Stage: stage, Name: t.Name, Rows: t.Len(), Header: t.Names()}
	s.Columns = make([]ColumnInfo, len(t.Columns))
	for j, c := range t.Columns {
		ci := ColumnInfo{Name: c.Name, Kind: c.Kind.String()}
		var nums []float64
		for _, r := range t.Rows {
			if r[j].IsNull() {
				ci.Nulls++
				continue
			}
			ci.NonNull++
			if f, ok := r[j].Float(); ok && c.Kind == dataset.Number && !math.IsInf(f, 0) {
				nums = append(nums, f)
			}
		}
		if len(nums) > 0 {
			ci.Stats = numStats(nums)
		}
		s.Columns[j] = ci
	}
	for _, r := range t.Head(HeadRows) {
		rec := make([]string, len(r))
		for j, v := range r {
			if v.IsNull() {
				rec[j] = "NaN"
				continue
			}
			rec[j] = v.String()
		}
		s.Head = append(s.Head, rec)
	}
	return s
}

// TotalNulls sums null cells across all columns.
func (s Summary) TotalNulls() int {
	var n int
	for _, c := range s.Columns {
		n += c.Nulls
	}
	return n
}

func numStats(vals []float64) *NumStats {
	mean, std := stat.MeanStdDev(vals, nil)
	if len(vals) < 2 {
		std = 0
	}
	return &NumStats{Min: floats.Min(vals), Max: floats.Max(vals), Mean: mean, Std: std}
}
