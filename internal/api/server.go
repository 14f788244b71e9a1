// Package api serves a generated style guide over HTTP: the rendered pages
// as static files and the parsed tree as JSON.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/livingstyle/internal/config"
	"github.com/QTest-hq/livingstyle/internal/generator"
)

// ErrNotBuilt is returned while no build has succeeded yet
var ErrNotBuilt = errors.New("style guide has not been built")

// BuildFunc runs one build of the style guide
type BuildFunc func(ctx context.Context) (*generator.Result, error)

// Server represents the API server
type Server struct {
	cfg    *config.Config
	router *chi.Mux
	build  BuildFunc
	dest   string

	// buildMu serializes builds into dest and the swap of their result
	buildMu sync.Mutex

	mu      sync.RWMutex
	result  *generator.Result
	lastErr error
}

// NewServer creates a new API server for the pages written to dest
func NewServer(cfg *config.Config, dest string, build BuildFunc) (*Server, error) {
	if build == nil {
		return nil, errors.New("build function is required")
	}

	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		build:  build,
		dest:   dest,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	return s.router
}

// Rebuild runs the build and swaps in its result. Builds run one at a time;
// a caller arriving during a build waits for it. A failed build keeps the
// previous result.
func (s *Server) Rebuild(ctx context.Context) (*generator.Result, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	result, err := s.build(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	if err != nil {
		log.Error().Err(err).Msg("style guide build failed")
		return nil, err
	}
	s.result = result
	return result, nil
}

// Result returns the latest successful build
func (s *Server) Result() (*generator.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		if s.lastErr != nil {
			return nil, s.lastErr
		}
		return nil, ErrNotBuilt
	}
	return s.result, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.healthCheck)
	s.router.Get("/ready", s.readyCheck)

	// API v1
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/build", s.getBuild)
		r.Post("/build", s.createBuild)

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", s.listPages)
			r.Get("/{pageID}", s.getPage)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Get("/", s.listSections)
			r.Get("/{sectionID}", s.getSection)
		})
	})

	// Generated pages
	s.router.Handle("/*", http.FileServer(http.Dir(s.dest)))
}

// Health check handlers
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Result(); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
