// Package http exposes the risk advisory service over HTTP: assessment
// endpoints under /v1 plus the health, readiness, and metrics routes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orchardwatch/leaf-risk-service/internal/advisor"
	"github.com/orchardwatch/leaf-risk-service/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// AssessmentService is the advisor surface the HTTP handlers need.
type AssessmentService interface {
	ReadinessChecker
	Assess(ctx context.Context, raw domain.RawReading, source string) domain.Assessment
	AssessLocation(ctx context.Context, lat, lon float64) (domain.Assessment, error)
}

// Server exposes the assessment API plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	service    AssessmentService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /v1 assessment routes and the
// /healthz, /readyz, and /metrics operational routes.
func NewServer(addr string, service AssessmentService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(service))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/assessments", s.handleAssess)
	mux.HandleFunc("GET /v1/assessments/location", s.handleAssessLocation)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleAssess scores a reading posted by the caller. The body is a raw
// reading bag: any subset of fields, current or legacy names. The only
// client error is malformed JSON; missing fields are not an error.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawReading
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	assessment := s.service.Assess(r.Context(), raw, "manual")
	writeJSON(w, http.StatusOK, truncated(assessment, r.URL.Query().Get("top")))
}

// handleAssessLocation fetches a reading from the weather provider for
// ?lat=&lon= and assesses it.
func (s *Server) handleAssessLocation(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lon must be valid coordinates"})
		return
	}

	assessment, err := s.service.AssessLocation(r.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, advisor.ErrProviderDisabled) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no climate data available"})
			return
		}
		s.logger.Error("location assessment failed", "lat", lat, "lon", lon, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "climate provider request failed"})
		return
	}

	writeJSON(w, http.StatusOK, truncated(assessment, r.URL.Query().Get("top")))
}

// catalogEntry is the serializable view of one catalog item. Match
// predicates stay internal; only the labels are exposed.
type catalogEntry struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Conditions []string `json:"conditions"`
	Weight     float64  `json:"weight"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	items := domain.Catalog()
	entries := make([]catalogEntry, 0, len(items))
	for _, item := range items {
		labels := make([]string, 0, len(item.Checks))
		for _, c := range item.Checks {
			labels = append(labels, c.Label)
		}
		entries = append(entries, catalogEntry{
			Name:       item.Name,
			Category:   string(item.Category),
			Conditions: labels,
			Weight:     domain.WeightFor(item.Name),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

// truncated limits the ranked lists to the top N entries when the caller
// asks for ?top=N. Invalid or missing values leave the lists whole.
func truncated(a domain.Assessment, top string) domain.Assessment {
	n, err := strconv.Atoi(top)
	if err != nil || n <= 0 {
		return a
	}
	if n < len(a.Diseases) {
		a.Diseases = a.Diseases[:n]
	}
	if n < len(a.Pests) {
		a.Pests = a.Pests[:n]
	}
	return a
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
