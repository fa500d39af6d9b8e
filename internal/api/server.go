// Package api implements the Tablekit HTTP server.
//
// The server exposes uploaded tabular datasets as paged, filterable,
// sortable resources. A client uploads a dataset once, receives a session
// ID, and then pages through the data with query parameters. Evaluated
// pages are cached by dataset hash and query shape.
//
// # Endpoints
//
//	POST   /api/tables            Upload a dataset, create a session
//	GET    /api/tables/{id}       Session and dataset metadata
//	GET    /api/tables/{id}/rows  Evaluate the pipeline for a query
//	DELETE /api/tables/{id}       Delete a session
//	GET    /healthz               Liveness probe
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tablekit/tablekit/pkg/cache"
	"github.com/tablekit/tablekit/pkg/session"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// SessionTTL is the lifetime of newly created sessions.
	SessionTTL time.Duration

	// MaxBodyBytes caps the size of dataset uploads.
	MaxBodyBytes int64

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// ValidateAndSetDefaults checks the configuration and fills in defaults.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = session.DefaultTTL
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 32 << 20 // 32 MiB
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return nil
}

// Server serves the table API.
type Server struct {
	cfg      Config
	logger   *log.Logger
	sessions session.Store
	cache    cache.Cache
	keyer    cache.Keyer
	datasets *Registry
}

// NewServer creates a server. A nil cache disables result caching, a nil
// keyer selects the default key strategy.
func NewServer(cfg Config, logger *log.Logger, sessions session.Store, c cache.Cache, keyer cache.Keyer) (*Server, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		cache:    c,
		keyer:    keyer,
		datasets: NewRegistry(),
	}, nil
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/tables", func(r chi.Router) {
		r.Post("/", s.handleCreateTable)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetTable)
			r.Get("/rows", s.handleGetRows)
			r.Delete("/", s.handleDeleteTable)
		})
	})

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	// Reap expired sessions periodically while serving.
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		case err := <-errCh:
			return err
		case <-ctx.Done():
			s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
