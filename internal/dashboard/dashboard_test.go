package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/popclean/internal/clean"
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

func populated(t *testing.T) *Session {
	t.Helper()
	tb, err := dataset.Read(strings.NewReader(cleanCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	s := NewSession()
	if err := s.Populate(tb, tb); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSessionAccumulates(t *testing.T) {
	s := populated(t)
	if got := len(s.Summaries()); got != 2 {
		t.Fatalf("summaries = %d", got)
	}
	panels := s.Panels()
	if len(panels) != 8 {
		t.Fatalf("panels = %d", len(panels))
	}
	if panels[0].ID != "01-top-10-most-populated-countries" || panels[0].URL != "/charts/01-top-10-most-populated-countries.svg" {
		t.Fatalf("first panel = %+v", panels[0])
	}
	if panels[7].Kind != "heatmap" || panels[6].Kind != "histogram" {
		t.Fatalf("kinds = %s, %s", panels[6].Kind, panels[7].Kind)
	}
}

func TestPopulateRecordsFailures(t *testing.T) {
	tb, err := dataset.Read(strings.NewReader("Country,Population,Area_km2\nA,1,5\nB,2,7\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	s := NewSession()
	if err := s.Populate(nil, tb); err == nil {
		t.Fatalf("expected errors for missing columns")
	}
	if len(s.Failures()) == 0 {
		t.Fatalf("failures should be recorded")
	}
	// the population charts and the heatmap still render
	panels := s.Panels()
	if len(panels) != 3 {
		t.Fatalf("panels = %d", len(panels))
	}
	// ids follow the chart's slot, not how many charts came before it
	if panels[2].ID != "08-correlation-map" {
		t.Fatalf("heatmap id = %s", panels[2].ID)
	}
}

func TestRoutes(t *testing.T) {
	s := populated(t)
	h := NewServer(s, quietLogger()).Routes()

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), report.CorrelationTitle) {
		t.Fatalf("index: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "After Cleaning") {
		t.Fatalf("index should include the summaries")
	}

	rec = get(t, h, "/charts/01-top-10-most-populated-countries.svg")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("chart: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if get(t, h, "/charts/99-nope.svg").Code != http.StatusNotFound {
		t.Fatalf("unknown chart should 404")
	}

	rec = get(t, h, "/api/session")
	var info sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if info.ID != s.ID.String() || info.Charts != 8 {
		t.Fatalf("session = %+v", info)
	}

	rec = get(t, h, "/api/charts")
	var panels []Panel
	if err := json.Unmarshal(rec.Body.Bytes(), &panels); err != nil {
		t.Fatalf("decode charts: %v", err)
	}
	if len(panels) != 8 || panels[1].Title != report.BottomPopulation.Title {
		t.Fatalf("charts = %+v", panels)
	}

	rec = get(t, h, "/api/summaries")
	var sums []report.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sums); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(sums) != 2 || sums[0].Stage != report.StageBefore {
		t.Fatalf("summaries = %+v", sums)
	}

	rec = get(t, h, "/summaries/after.md")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Stage: after") {
		t.Fatalf("summary markdown: %d", rec.Code)
	}
	if get(t, h, "/summaries/during.md").Code != http.StatusNotFound {
		t.Fatalf("unknown stage should 404")
	}

	if get(t, h, "/healthz").Code != http.StatusOK {
		t.Fatalf("healthz")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(NewSession(), quietLogger()).ListenAndServe(ctx, addr) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestSummariesEncodeWithZeroArea(t *testing.T) {
	raw, err := dataset.Read(strings.NewReader(cleanCSV + "6,Monaco,39000,0,,0.5\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	res, err := clean.NewPipeline(quietLogger()).Run(raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := NewSession()
	if err := s.Populate(res.Raw, res.Clean); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	h := NewServer(s, quietLogger()).Routes()

	rec := get(t, h, "/api/summaries")
	if rec.Code != http.StatusOK {
		t.Fatalf("summaries: %d %s", rec.Code, rec.Body.String())
	}
	var sums []report.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sums); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(sums) != 2 || sums[1].Rows != 6 {
		t.Fatalf("summaries = %+v", sums)
	}
	if get(t, h, "/").Code != http.StatusOK {
		t.Fatalf("index")
	}
}
