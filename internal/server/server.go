// Package server exposes the detector over HTTP: a single-comment analyze
// endpoint, a batch filter endpoint, a health probe and Prometheus metrics.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vidsift/vidsift/internal/spamcheck"
)

// Options configures the HTTP server.
type Options struct {
	// CacheAddr is a Redis address for the verdict cache; empty disables it.
	CacheAddr string
	// CacheTTL bounds how long cached verdicts live.
	CacheTTL time.Duration
}

// Server handles analyze/filter requests with a shared detector.
type Server struct {
	detector *spamcheck.Detector
	cache    *verdictCache
}

// New wires a server around a configured detector.
func New(detector *spamcheck.Detector, opts Options) *Server {
	return &Server{
		detector: detector,
		cache:    newVerdictCache(opts.CacheAddr, opts.CacheTTL),
	}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/v1/analyze", s.handleAnalyze)
	r.Post("/v1/filter", s.handleFilter)

	return r
}

type analyzeRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type filterRequest struct {
	Comments []analyzeRequest `json:"comments"`
}

type filteredComment struct {
	Text   string  `json:"text"`
	Author string  `json:"author,omitempty"`
	Likes  int     `json:"likes"`
	Score  float64 `json:"score"`
}

type filterResponse struct {
	Kept      []filteredComment `json:"kept"`
	SpamCount int               `json:"spam_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	res := s.analyze(r, req)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	resp := filterResponse{Kept: []filteredComment{}}
	for _, c := range req.Comments {
		res := s.analyze(r, c)
		if res.IsSpam {
			resp.SpamCount++
			continue
		}
		resp.Kept = append(resp.Kept, filteredComment{
			Text:   c.Text,
			Author: c.Author,
			Likes:  c.Likes,
			Score:  res.Score,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// analyze runs one comment through the cache and detector and records
// metrics for the outcome.
func (s *Server) analyze(r *http.Request, req analyzeRequest) spamcheck.Result {
	metricAnalyzed.Inc()

	if s.cache != nil {
		if res, ok := s.cache.get(r.Context(), req.Text, req.Author, req.Likes); ok {
			countVerdict(res)
			return res
		}
	}

	res := s.detector.Analyze(req.Text, req.Author, req.Likes)
	if s.cache != nil {
		s.cache.set(r.Context(), req.Text, req.Author, req.Likes, res)
	}
	countVerdict(res)
	return res
}

func countVerdict(res spamcheck.Result) {
	if !res.IsSpam {
		return
	}
	category := "uncategorized"
	if primary, ok := res.PrimaryCategory(); ok {
		category = primary.String()
	}
	metricVerdicts.WithLabelValues(category).Inc()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
