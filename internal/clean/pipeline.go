package clean

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/popclean/internal/dataset"
)

// StepStats records how one step changed the table shape.
type StepStats struct {
	Name    string
	RowsIn  int
	RowsOut int
	ColsIn  int
	ColsOut int
}

// Result carries the table before and after cleaning plus per-step stats.
type Result struct {
	Raw   *dataset.Table
	Clean *dataset.Table
	Stats []StepStats
}

// Pipeline applies an ordered list of steps.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// NewPipeline returns the standard cleaning pipeline. A nil logger uses slog.Default().
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{steps: Steps(), logger: logger.With(slog.String("component", "cleaner"))}
}

// Run applies every step in order. The raw table is left untouched; the first
// failing step aborts the run.
func (p *Pipeline) Run(raw *dataset.Table) (*Result, error) {
	res := &Result{Raw: raw}
	cur := raw
	for _, s := range p.steps {
		next, err := s.Fn(cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		st := StepStats{
			Name:    s.Name,
			RowsIn:  cur.Len(),
			RowsOut: next.Len(),
			ColsIn:  len(cur.Columns),
			ColsOut: len(next.Columns),
		}
		res.Stats = append(res.Stats, st)
		p.logger.Debug("step applied",
			slog.String("step", s.Name),
			slog.Int("rows_in", st.RowsIn),
			slog.Int("rows_out", st.RowsOut),
			slog.Int("cols_out", st.ColsOut))
		cur = next
	}
	res.Clean = cur
	return res, nil
}

// CleanFile loads src, cleans it and persists the result to dst, overwriting any
// existing file. Nothing is written when loading or cleaning fails.
func (p *Pipeline) CleanFile(src, dst string) (*Result, error) {
	raw, err := dataset.Load(src)
	if err != nil {
		return nil, err
	}
	p.logger.Info("loaded dataset",
		slog.String("path", src),
		slog.Int("rows", raw.Len()),
		slog.Int("columns", len(raw.Columns)))
	res, err := p.Run(raw)
	if err != nil {
		return nil, err
	}
	if err := dataset.WriteCSV(dst, res.Clean); err != nil {
		return nil, err
	}
	p.logger.Info("wrote cleaned dataset",
		slog.String("path", dst),
		slog.Int("rows", res.Clean.Len()),
		slog.Int("columns", len(res.Clean.Columns)))
	return res, nil
}
