// Package server exposes the lead generation API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/outreach"
	"github.com/instalily/leadgen/internal/pipeline"
	"github.com/instalily/leadgen/internal/store"
)

// Server wires the HTTP handlers to the pipeline and store.
type Server struct {
	cfg       *config.Config
	store     store.Store
	pipeline  *pipeline.Pipeline
	generator *outreach.Generator
	runCtx    context.Context
}

// New creates a Server. runCtx is the context background pipeline runs
// inherit; it should outlive individual requests and be cancelled on
// shutdown.
func New(runCtx context.Context, cfg *config.Config, st store.Store, p *pipeline.Pipeline, g *outreach.Generator) *Server {
	if runCtx == nil {
		runCtx = context.Background()
	}
	return &Server{cfg: cfg, store: st, pipeline: p, generator: g, runCtx: runCtx}
}

// Handler builds the router. All API routes live under /api.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	origins := s.cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-leads", s.handleGenerateLeads)
		r.Get("/task-status", s.handleTaskStatus)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/leads", s.handleListLeads)
		r.Get("/leads/{id}", s.handleGetLead)
		r.Put("/leads/{id}/status", s.handleUpdateLeadStatus)
		r.Delete("/leads/clear", s.handleClearLeads)
		r.Get("/events", s.handleListEvents)
		r.Get("/companies", s.handleListCompanies)
		r.Post("/outreach/{id}/generate", s.handleGenerateOutreach)
		r.Get("/export/leads", s.handleExportLeads)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

// writeError sends a JSON error body. Internal detail is exposed only when
// the server runs in debug mode.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := map[string]string{"error": msg}
	if err != nil {
		zap.L().Error("server: "+msg, zap.Error(err))
		if s.cfg.Server.Debug {
			body["detail"] = err.Error()
		}
	}
	writeJSON(w, status, body)
}
