// Package dashboard accumulates every summary and chart of a report into one session
// and serves it as a single scrollable page.
package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/popclean/internal/chart"
	"github.com/KaramelBytes/popclean/internal/dataset"
	"github.com/KaramelBytes/popclean/internal/report"
	"github.com/KaramelBytes/popclean/internal/utils"
)

// Panel is one rendered chart in the session.
type Panel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind"`
	URL   string `json:"url"`
	svg   []byte
}

// Session is an accumulating report view. It implements report.Presenter; every call
// appends to the session rather than replacing what is already there.
type Session struct {
	ID      uuid.UUID
	Created time.Time

	mu        sync.RWMutex
	summaries []report.Summary
	panels    []Panel
	failures  []string
}

// NewSession starts an empty session.
func NewSession() *Session {
	return &Session{ID: uuid.New(), Created: time.Now().UTC()}
}

func (s *Session) Summary(sum report.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, sum)
	return nil
}

func (s *Session) TopPopulation(r report.Ranking) error    { return s.ranking(r) }
func (s *Session) BottomPopulation(r report.Ranking) error { return s.ranking(r) }
func (s *Session) TopDensity(r report.Ranking) error       { return s.ranking(r) }
func (s *Session) BottomDensity(r report.Ranking) error    { return s.ranking(r) }
func (s *Session) TopGrowth(r report.Ranking) error        { return s.ranking(r) }
func (s *Session) BottomGrowth(r report.Ranking) error     { return s.ranking(r) }

func (s *Session) RankDistribution(d report.Distribution) error {
	p, err := chart.Histogram(d)
	if err != nil {
		return err
	}
	return s.add(d.Title, "histogram", p, chart.Width, chart.Height)
}

func (s *Session) CorrelationHeatmap(m report.CorrMatrix) error {
	p, err := chart.Heatmap(m)
	if err != nil {
		return err
	}
	return s.add(m.Title, "heatmap", p, chart.Width, chart.HeatmapHeight)
}

func (s *Session) ranking(r report.Ranking) error {
	p, err := chart.Ranking(r)
	if err != nil {
		return err
	}
	return s.add(r.Title, "bar", p, chart.Width, chart.Height)
}

func (s *Session) add(title, kind string, p *plot.Plot, w, h vg.Length) error {
	svg, err := chart.Encode(p, w, h, "svg")
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	base := fmt.Sprintf("%02d-%s", report.Slot(title), utils.Slug(title))
	id := base
	for n := 2; s.hasPanel(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	s.panels = append(s.panels, Panel{ID: id, Title: title, Kind: kind, URL: "/charts/" + id + ".svg", svg: svg})
	return nil
}

func (s *Session) hasPanel(id string) bool {
	for _, p := range s.panels {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Populate presents the report into s. Charts that fail are listed on the page and
// the joined error is returned; the other charts are still added.
func (s *Session) Populate(raw, clean *dataset.Table) error {
	err := report.Present(s, raw, clean)
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			s.RecordFailure(e.Error())
		}
	} else {
		s.RecordFailure(err.Error())
	}
	return err
}

// RecordFailure notes a chart that could not be produced so the page can show it.
func (s *Session) RecordFailure(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, msg)
}

// Summaries returns a copy of the accumulated summaries.
func (s *Session) Summaries() []report.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]report.Summary(nil), s.summaries...)
}

// Panels returns a copy of the accumulated chart panels.
func (s *Session) Panels() []Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Panel(nil), s.panels...)
}

// Failures returns chart errors recorded for display.
func (s *Session) Failures() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.failures...)
}

// SVG returns the encoded chart for a panel id.
func (s *Session) SVG(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.panels {
		if p.ID == id {
			return p.svg, true
		}
	}
	return nil, false
}

var _ report.Presenter = (*Session)(nil)
