package report

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/popclean/internal/dataset"
)

// Columns the reporter reads.
const (
	LabelColumn      = "Country"
	PopulationColumn = "Population"
	DensityColumn    = "Density"
	GrowthColumn     = "Growth Rate %"
	RankColumn       = "Rank"
)

// The six ranking charts, in presentation order.
var (
	TopPopulation    = RankingSpec{Title: "Top 10 Most Populated Countries", Metric: PopulationColumn, Order: Descending}
	BottomPopulation = RankingSpec{Title: "Top 10 Least Populated Countries", Metric: PopulationColumn, Order: Ascending}
	TopDensity       = RankingSpec{Title: "Countries with Highest Population Density", Metric: DensityColumn, Order: Descending}
	BottomDensity    = RankingSpec{Title: "Countries with Lowest Population Density", Metric: DensityColumn, Order: Ascending}
	TopGrowth        = RankingSpec{Title: "Countries with Highest Growth Rate", Metric: GrowthColumn, Order: Descending}
	BottomGrowth     = RankingSpec{Title: "Countries with Lowest Growth Rate", Metric: GrowthColumn, Order: Ascending}
)

const (
	RankDistributionTitle = "Country Rank Distribution"
	CorrelationTitle      = "Correlation Map"
)

// ChartTitles lists the eight charts in presentation order.
var ChartTitles = []string{
	TopPopulation.Title,
	BottomPopulation.Title,
	TopDensity.Title,
	BottomDensity.Title,
	TopGrowth.Title,
	BottomGrowth.Title,
	RankDistributionTitle,
	CorrelationTitle,
}

// Slot returns the 1-based presentation position of a chart title, or 0 if the
// title is not one of the report's charts. Slots do not shift when a chart fails.
func Slot(title string) int {
	for i, t := range ChartTitles {
		if t == title {
			return i + 1
		}
	}
	return 0
}

// Presenter renders the report to one destination. Each chart has its own method so
// that a destination can lay charts out individually; selection happens in Present.
type Presenter interface {
	Summary(s Summary) error
	TopPopulation(r Ranking) error
	BottomPopulation(r Ranking) error
	TopDensity(r Ranking) error
	BottomDensity(r Ranking) error
	TopGrowth(r Ranking) error
	BottomGrowth(r Ranking) error
	RankDistribution(d Distribution) error
	CorrelationHeatmap(m CorrMatrix) error
}

// Present drives p through the before/after summaries and the eight charts in their
// fixed order. A failing chart does not stop the others; all failures are joined.
func Present(p Presenter, raw, clean *dataset.Table) error {
	var errs []error
	if raw != nil {
		if err := p.Summary(Summarize(StageBefore, raw)); err != nil {
			errs = append(errs, fmt.Errorf("summary before: %w", err))
		}
	}
	if err := p.Summary(Summarize(StageAfter, clean)); err != nil {
		errs = append(errs, fmt.Errorf("summary after: %w", err))
	}

	rankings := []struct {
		spec RankingSpec
		draw func(Ranking) error
	}{
		{TopPopulation, p.TopPopulation},
		{BottomPopulation, p.BottomPopulation},
		{TopDensity, p.TopDensity},
		{BottomDensity, p.BottomDensity},
		{TopGrowth, p.TopGrowth},
		{BottomGrowth, p.BottomGrowth},
	}
	for _, rk := range rankings {
		r, err := rk.spec.Build(clean, LabelColumn, DefaultLimit)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := rk.draw(r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Title, err))
		}
	}

	if d, err := NewDistribution(clean, RankDistributionTitle, RankColumn, DefaultBins); err != nil {
		errs = append(errs, err)
	} else if err := p.RankDistribution(d); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", d.Title, err))
	}

	if m, err := Correlate(clean, CorrelationTitle); err != nil {
		errs = append(errs, err)
	} else if err := p.CorrelationHeatmap(m); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", m.Title, err))
	}
	return errors.Join(errs...)
}
