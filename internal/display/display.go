// Package display renders the report straight to the terminal: textual summaries as
// tables on stdout and each chart as an image file, pausing after every chart until
// the user dismisses it.
package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/popclean/internal/chart"
	"github.com/KaramelBytes/popclean/internal/report"
	"github.com/KaramelBytes/popclean/internal/utils"
)

const maxCellWidth = 24

var heading = color.New(color.FgCyan, color.Bold)

// Presenter implements report.Presenter for an interactive terminal session.
type Presenter struct {
	out    io.Writer
	dir    string
	format string
	in     *bufio.Reader
	logger *slog.Logger
	saved  []string
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithDismiss makes every chart block until a line is read from r.
func WithDismiss(r io.Reader) Option {
	return func(p *Presenter) {
		if r != nil {
			p.in = bufio.NewReader(r)
		}
	}
}

// WithLogger sets the logger used for per-chart diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Presenter) { p.logger = l }
}

// WithFormat selects the image format (png by default).
func WithFormat(ext string) Option {
	return func(p *Presenter) { p.format = ext }
}

// New writes text to out and charts into dir.
func New(out io.Writer, dir string, opts ...Option) *Presenter {
	p := &Presenter{out: out, dir: dir, format: "png", logger: slog.Default()}
	for _, o := range opts {
		o(p)
	}
	p.logger = p.logger.With(slog.String("component", "display"))
	return p
}

// Saved lists chart files written so far, in order.
func (p *Presenter) Saved() []string { return append([]string(nil), p.saved...) }

func (p *Presenter) Summary(s report.Summary) error {
	title := "Initial Data:"
	if s.Stage == report.StageAfter {
		title = "After Cleaning:"
	}
	heading.Fprintln(p.out, "\n"+title)

	head := tablewriter.NewWriter(p.out)
	head.SetAutoFormatHeaders(false)
	head.SetAutoWrapText(false)
	head.SetHeader(s.Header)
	for _, row := range s.Head {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = utils.Truncate(c, maxCellWidth)
		}
		head.Append(cells)
	}
	head.Render()

	fmt.Fprintf(p.out, "\nRows: %d, Columns: %d, Null cells: %d\n", s.Rows, len(s.Columns), s.TotalNulls())
	info := tablewriter.NewWriter(p.out)
	info.SetAutoFormatHeaders(false)
	info.SetHeader([]string{"#", "Column", "Non-Null Count", "Null Count", "Kind"})
	for i, c := range s.Columns {
		info.Append([]string{strconv.Itoa(i), c.Name, strconv.Itoa(c.NonNull), strconv.Itoa(c.Nulls), c.Kind})
	}
	info.Render()

	path := filepath.Join(p.dir, fmt.Sprintf("summary-%s.md", s.Stage))
	if err := utils.SafeWriteFile(path, []byte(s.Markdown())); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	p.logger.Debug("summary written", slog.String("stage", string(s.Stage)), slog.String("path", path))
	return nil
}

func (p *Presenter) TopPopulation(r report.Ranking) error    { return p.ranking(r) }
func (p *Presenter) BottomPopulation(r report.Ranking) error { return p.ranking(r) }
func (p *Presenter) TopDensity(r report.Ranking) error       { return p.ranking(r) }
func (p *Presenter) BottomDensity(r report.Ranking) error    { return p.ranking(r) }
func (p *Presenter) TopGrowth(r report.Ranking) error        { return p.ranking(r) }
func (p *Presenter) BottomGrowth(r report.Ranking) error     { return p.ranking(r) }

func (p *Presenter) RankDistribution(d report.Distribution) error {
	pl, err := chart.Histogram(d)
	if err != nil {
		return err
	}
	return p.show(d.Title, pl, chart.Width, chart.Height)
}

func (p *Presenter) CorrelationHeatmap(m report.CorrMatrix) error {
	pl, err := chart.Heatmap(m)
	if err != nil {
		return err
	}
	return p.show(m.Title, pl, chart.Width, chart.HeatmapHeight)
}

func (p *Presenter) ranking(r report.Ranking) error {
	pl, err := chart.Ranking(r)
	if err != nil {
		return err
	}
	return p.show(r.Title, pl, chart.Width, chart.Height)
}

// show saves the figure and, when interactive, blocks until the user presses Enter.
func (p *Presenter) show(title string, pl *plot.Plot, w, h vg.Length) error {
	path := filepath.Join(p.dir, fmt.Sprintf("%02d-%s.%s", report.Slot(title), utils.Slug(title), p.format))
	if err := chart.Save(pl, w, h, path); err != nil {
		return err
	}
	p.saved = append(p.saved, path)
	p.logger.Debug("chart rendered", slog.String("title", title), slog.String("path", path))
	heading.Fprintln(p.out, title)
	fmt.Fprintf(p.out, "✓ Saved %s\n", path)
	if p.in == nil {
		return nil
	}
	fmt.Fprint(p.out, "Press Enter to continue...")
	if _, err := p.in.ReadString('\n'); err != nil {
		p.in = nil
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("wait for dismiss: %w", err)
		}
	}
	fmt.Fprintln(p.out)
	return nil
}

var _ report.Presenter = (*Presenter)(nil)
