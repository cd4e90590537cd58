package dashboard

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/KaramelBytes/popclean/internal/report"
)

// Server exposes one Session over HTTP.
type Server struct {
	session *Session
	logger  *slog.Logger
	page    *template.Template
}

// NewServer wraps s. A nil logger uses slog.Default().
func NewServer(s *Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		session: s,
		logger:  logger.With(slog.String("component", "dashboard")),
		page:    template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Routes returns the dashboard router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/healthz", s.health)
	r.Get("/charts/{id}.svg", s.chartSVG)
	r.Get("/summaries/{stage}.md", s.summaryMarkdown)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/session", s.sessionInfo)
		r.Get("/summaries", s.summaries)
		r.Get("/charts", s.charts)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", slog.String("addr", addr), slog.String("session", s.session.ID.String()))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("dashboard stopped")
	return nil
}

type pageData struct {
	SessionID string
	Created   string
	Summaries []report.Summary
	Panels    []Panel
	Failures  []string
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		SessionID: s.session.ID.String(),
		Created:   s.session.Created.Format(time.RFC3339),
		Summaries: s.session.Summaries(),
		Panels:    s.session.Panels(),
		Failures:  s.session.Failures(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page", slog.String("error", err.Error()))
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) chartSVG(w http.ResponseWriter, r *http.Request) {
	svg, ok := s.session.SVG(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(svg)
}

func (s *Server) summaryMarkdown(w http.ResponseWriter, r *http.Request) {
	stage := report.Stage(chi.URLParam(r, "stage"))
	for _, sum := range s.session.Summaries() {
		if sum.Stage == stage {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			_, _ = w.Write([]byte(sum.Markdown()))
			return
		}
	}
	http.NotFound(w, r)
}

type sessionResponse struct {
	ID       string   `json:"id"`
	Created  string   `json:"created"`
	Charts   int      `json:"charts"`
	Failures []string `json:"failures"`
}

func (s *Server) sessionInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, sessionResponse{
		ID:       s.session.ID.String(),
		Created:  s.session.Created.Format(time.RFC3339),
		Charts:   len(s.session.Panels()),
		Failures: s.session.Failures(),
	})
}

func (s *Server) summaries(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Summaries())
}

func (s *Server) charts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Panels())
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request completed",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
