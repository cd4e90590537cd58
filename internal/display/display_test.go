package display

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/popclean/internal/dataset"
	"github.com/KaramelBytes/popclean/internal/report"
)

const cleanCSV = `Rank,Country,Population,Area_km2,Density,Growth Rate %
1,India,1420000000,3287000,432.0,0.8
2,China,,9597000,,0.1
3,Kenya,50000000,580000,86.2,2.3
4,Peru,34000000,1285000,26.5,1.1
5,Chile,19000000,756000,25.1,0.5
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadClean(t *testing.T) *dataset.Table {
	t.Helper()
	tb, err := dataset.Read(strings.NewReader(cleanCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return tb
}

func TestSummaryPrintsTables(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	p := New(&out, dir, WithLogger(quietLogger()))
	if err := p.Summary(report.Summarize(report.StageBefore, loadClean(t))); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	md, err := os.ReadFile(filepath.Join(dir, "summary-before.md"))
	if err != nil {
		t.Fatalf("summary file: %v", err)
	}
	if !strings.Contains(string(md), "Stage: before") {
		t.Fatalf("unexpected summary file:\n%s", md)
	}
	s := out.String()
	for _, want := range []string{"Initial Data:", "India", "NaN", "Null Count", "Rows: 5, Columns: 6, Null cells: 2"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestPresentSavesEveryChart(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	p := New(&out, dir, WithLogger(quietLogger()))
	tb := loadClean(t)
	if err := report.Present(p, nil, tb); err != nil {
		t.Fatalf("Present: %v", err)
	}
	saved := p.Saved()
	if len(saved) != 8 {
		t.Fatalf("want 8 charts, got %d: %v", len(saved), saved)
	}
	if filepath.Base(saved[0]) != "01-top-10-most-populated-countries.png" {
		t.Fatalf("first chart = %s", saved[0])
	}
	if filepath.Base(saved[7]) != "08-correlation-map.png" {
		t.Fatalf("last chart = %s", saved[7])
	}
	for _, path := range saved {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing %s: %v", path, err)
		}
	}
	if strings.Contains(out.String(), "Press Enter") {
		t.Fatalf("non-interactive presenter must not prompt")
	}
}

func TestDismissWaitsPerChart(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\n\n")
	p := New(&out, t.TempDir(), WithLogger(quietLogger()), WithDismiss(in), WithFormat("svg"))
	r, err := report.TopPopulation.Build(loadClean(t), report.LabelColumn, report.DefaultLimit)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := p.TopPopulation(r); err != nil {
			t.Fatalf("TopPopulation #%d: %v", i, err)
		}
	}
	// Two lines were available; the third read hits EOF and stops further prompts.
	if got := strings.Count(out.String(), "Press Enter to continue..."); got != 3 {
		t.Fatalf("prompts = %d\n%s", got, out.String())
	}
	if err := p.TopPopulation(r); err != nil {
		t.Fatalf("after EOF: %v", err)
	}
	if got := strings.Count(out.String(), "Press Enter to continue..."); got != 3 {
		t.Fatalf("prompting should stop after EOF, prompts = %d", got)
	}
	if !strings.HasSuffix(p.Saved()[0], ".svg") {
		t.Fatalf("format option ignored: %s", p.Saved()[0])
	}
}

func TestChartNumbersStableWhenChartsFail(t *testing.T) {
	tb, err := dataset.Read(strings.NewReader(`Rank,Country,Population,Growth Rate %
1,India,1420000000,0.8
2,Kenya,50000000,2.3
3,Chile,19000000,0.5
`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	dir := t.TempDir()
	p := New(io.Discard, dir, WithLogger(quietLogger()))
	if err := report.Present(p, nil, tb); err == nil {
		t.Fatalf("density charts should fail without a Density column")
	}
	var names []string
	for _, path := range p.Saved() {
		names = append(names, filepath.Base(path))
	}
	want := []string{
		"01-top-10-most-populated-countries.png",
		"02-top-10-least-populated-countries.png",
		"05-countries-with-highest-growth-rate.png",
		"06-countries-with-lowest-growth-rate.png",
		"07-country-rank-distribution.png",
		"08-correlation-map.png",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("saved charts:\n got %v\nwant %v", names, want)
	}
}
