// Package httpapi exposes the ledger, aggregation views and goals to the
// dashboard client over a local JSON API. It is the "form collaborator" of
// the ledger: candidate payloads are validated here, before any ledger
// operation is invoked.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/mlefebvre/patrimoine-backend/internal/usecase/goals"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/history"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/ledger"
)

// Config holds server configuration
type Config struct {
	Log      zerolog.Logger
	Port     int
	Ledger   *ledger.Service
	Goals    *goals.Service
	Recorder *history.Recorder
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

// New creates the HTTP server and mounts all routes
func New(cfg Config) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(cfg.Log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	assetHandlers := NewAssetHandlers(cfg.Ledger, cfg.Log)
	dashboardHandlers := NewDashboardHandlers(cfg.Ledger, cfg.Recorder, cfg.Log)
	goalHandlers := NewGoalHandlers(cfg.Goals, cfg.Log)

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetHandlers.HandleList)
			r.Post("/", assetHandlers.HandleAdd)
			r.Get("/grouped", assetHandlers.HandleGrouped)
			r.Patch("/{id}", assetHandlers.HandlePatch)
			r.Put("/{id}", assetHandlers.HandleReplace)
			r.Delete("/{id}", assetHandlers.HandleDelete)
		})

		r.Get("/dashboard", dashboardHandlers.HandleDashboard)

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", goalHandlers.HandleList)
			r.Post("/", goalHandlers.HandleAdd)
			r.Patch("/{id}", goalHandlers.HandlePatch)
			r.Delete("/{id}", goalHandlers.HandleDelete)
		})
	})

	return &Server{
		router: router,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: router,
		},
		log: cfg.Log.With().Str("component", "httpapi").Logger(),
	}
}

// Router returns the underlying handler, for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs one line per request with method, path, status and
// duration
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("Request handled")
		})
	}
}
