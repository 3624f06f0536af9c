// Package server exposes the views over HTTP: a JSON API for the controls and
// chart specs, and a single page that drives them.
package server

import (
	"embed"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/labormap/internal/config"
	"github.com/sells-group/labormap/internal/selector"
	"github.com/sells-group/labormap/internal/view"
)

//go:embed static/index.html
var staticFS embed.FS

// Server serves one Viewer.
type Server struct {
	viewer  *view.Viewer
	limiter *rate.Limiter
	origins []string
}

// New creates a Server. A non-positive rate limit disables limiting.
func New(v *view.Viewer, cfg config.ServerConfig) *Server {
	s := &Server{viewer: v, origins: cfg.CORSOrigins}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = max(int(cfg.RateLimit), 1)
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(rateLimit(s.limiter))
		}
		r.Get("/", s.handleIndex)
		r.Route("/api", func(r chi.Router) {
			r.Get("/controls", s.handleControls)
			r.Get("/heatmap", s.handleHeatmap)
			r.Get("/scatter", s.handleScatter)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		zap.L().Error("server: read index page", zap.Error(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleControls(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.viewer.Controls())
}

type heatmapResponse struct {
	Selection selector.Selection `json:"selection"`
	Panels    []view.Panel       `json:"panels"`
}

// handleHeatmap serves GET /api/heatmap?year=&min_wage=. Both parameters are
// optional; year defaults to the first selectable year.
func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	sel := selector.Selection{Year: view.DefaultYear}

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		sel.Year = year
	}
	if v := q.Get("min_wage"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_wage")
			return
		}
		sel.ShowMinWage = show
	}

	writeJSON(w, http.StatusOK, heatmapResponse{
		Selection: sel,
		Panels:    s.viewer.Heatmaps(sel),
	})
}

// handleScatter serves GET /api/scatter?state=. An absent state selects the
// dropdown default; an unknown one yields an empty chart.
func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = s.viewer.Controls().DefaultState
	}
	writeJSON(w, http.StatusOK, s.viewer.Scatter(state))
}

func rateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
