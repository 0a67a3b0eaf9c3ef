// Package server exposes schema compilation and validation over HTTP.
package server

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/jacoelho/jsonschema"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 8 << 20

// Config configures a Server.
type Config struct {
	Logger       *slog.Logger
	Addr         string
	LoadOptions  jsonschema.LoadOptions
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server caches compiled schemas by name and validates request bodies
// against them. Compiled schemas are shared read-only across requests.
type Server struct {
	logger  *slog.Logger
	router  *mux.Router
	server  *http.Server
	opts    jsonschema.LoadOptions
	schemas map[string]*jsonschema.Schema
	maxBody int64
	mu      sync.RWMutex
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		logger:  logger,
		router:  mux.NewRouter(),
		opts:    cfg.LoadOptions,
		schemas: make(map[string]*jsonschema.Schema),
		maxBody: cmp.Or(max(cfg.MaxBodyBytes, 0), DefaultMaxBodyBytes),
	}
	s.routes()
	s.server = &http.Server{
		Addr:         cmp.Or(cfg.Addr, ":8080"),
		Handler:      s.router,
		ReadTimeout:  cmp.Or(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout: cmp.Or(cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:  cmp.Or(cfg.IdleTimeout, 60*time.Second),
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestID, s.accessLog)
	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/schemas/{name}", s.putSchema).Methods(http.MethodPut)
	s.router.HandleFunc("/v1/schemas/{name}", s.deleteSchema).Methods(http.MethodDelete)
	s.router.HandleFunc("/v1/schemas/{name}/validate", s.validateNamed).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/validate", s.validateAdHoc).Methods(http.MethodPost)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", slog.String("addr", s.server.Addr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) lookup(name string) (*jsonschema.Schema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schema, ok := s.schemas[name]
	return schema, ok
}

func (s *Server) store(name string, schema *jsonschema.Schema) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.schemas[name]
	s.schemas[name] = schema
	return existed
}

func (s *Server) remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.schemas[name]
	delete(s.schemas, name)
	return existed
}
