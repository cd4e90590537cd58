package clean

import (
	"github.com/KaramelBytes/popclean/internal/dataset"
)

// Column names the pipeline is written against.
const (
	ColRank       = "Rank"
	ColCountry    = "Country"
	ColPopulation = "Population"
	ColArea       = "Area_km2"
	ColDensity    = "Density"
	ColGrowth     = "Growth Rate %"
	ColNotes      = "Notes"
)

// Fixed imputation rules.
const (
	CountryTypo          = "Chnia"
	CountryFix           = "China"
	OverrideCountry      = "India"
	OverridePopulationTo = 1420000000
)

// ErrMissingColumn is returned when a step needs a column the table does not have.
var ErrMissingColumn = dataset.ErrNoColumn

// StepFunc is a pure table transformation: it never mutates its input.
type StepFunc func(*dataset.Table) (*dataset.Table, error)

// Step is one named stage of the cleaning pipeline.
type Step struct {
	Name string
	Fn   StepFunc
}

// Steps returns the cleaning sequence. Order matters: the override must follow
// coercion and the area filter must follow density derivation.
func Steps() []Step {
	return []Step{
		{Name: "deduplicate", Fn: Deduplicate},
		{Name: "fix_country_typos", Fn: FixCountryTypos},
		{Name: "coerce_population", Fn: CoercePopulation},
		{Name: "override_population", Fn: OverridePopulation},
		{Name: "derive_density", Fn: DeriveDensity},
		{Name: "drop_missing_area", Fn: DropMissingArea},
		{Name: "drop_notes", Fn: DropNotes},
	}
}

// Deduplicate removes rows identical to an earlier row across every column.
func Deduplicate(t *dataset.Table) (*dataset.Table, error) {
	return t.Distinct(), nil
}

// FixCountryTypos replaces the exact value "Chnia" with "China" in the Country column.
func FixCountryTypos(t *dataset.Table) (*dataset.Table, error) {
	ci, err := t.Require(ColCountry)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	for _, r := range out.Rows {
		if r[ci].Kind == dataset.Text && r[ci].Str == CountryTypo {
			r[ci] = dataset.TextValue(CountryFix)
		}
	}
	return out, nil
}

// CoercePopulation converts Population to numbers; unparseable values become null.
func CoercePopulation(t *dataset.Table) (*dataset.Table, error) {
	pi, err := t.Require(ColPopulation)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	for _, r := range out.Rows {
		r[pi] = dataset.Coerce(r[pi])
	}
	out.Columns[pi].Kind = dataset.Number
	return out, nil
}

// OverridePopulation pins the population of every India row to a fixed figure,
// whatever the source held.
func OverridePopulation(t *dataset.Table) (*dataset.Table, error) {
	ci, err := t.Require(ColCountry)
	if err != nil {
		return nil, err
	}
	pi, err := t.Require(ColPopulation)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	for _, r := range out.Rows {
		if r[ci].Kind == dataset.Text && r[ci].Str == OverrideCountry {
			r[pi] = dataset.NumberValue(OverridePopulationTo)
		}
	}
	out.Columns[pi].Kind = dataset.Number
	return out, nil
}

// DeriveDensity fills null Density cells with Population / Area_km2. Operands are
// coerced per cell, so numeric text in a text-typed column still counts; a null or
// unparseable operand leaves the cell null.
func DeriveDensity(t *dataset.Table) (*dataset.Table, error) {
	di, err := t.Require(ColDensity)
	if err != nil {
		return nil, err
	}
	pi, err := t.Require(ColPopulation)
	if err != nil {
		return nil, err
	}
	ai, err := t.Require(ColArea)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	filled := false
	for _, r := range out.Rows {
		if !r[di].IsNull() {
			continue
		}
		pop, ok1 := dataset.Coerce(r[pi]).Float()
		area, ok2 := dataset.Coerce(r[ai]).Float()
		if !ok1 || !ok2 {
			continue
		}
		r[di] = dataset.NumberValue(pop / area)
		filled = filled || !r[di].IsNull()
	}
	if filled && out.Columns[di].Kind == dataset.Null {
		out.Columns[di].Kind = dataset.Number
	}
	return out, nil
}

// DropMissingArea removes every row whose Area_km2 is null.
func DropMissingArea(t *dataset.Table) (*dataset.Table, error) {
	ai, err := t.Require(ColArea)
	if err != nil {
		return nil, err
	}
	return t.Filter(func(r dataset.Row) bool { return !r[ai].IsNull() }), nil
}

// DropNotes removes the optional Notes column; a table without it passes through.
func DropNotes(t *dataset.Table) (*dataset.Table, error) {
	out, _ := t.DropColumn(ColNotes)
	return out, nil
}
