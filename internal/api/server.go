// Package api exposes the candidate store over REST plus a websocket
// feed for live candidate and sync events.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alegonzalezz/ATS/internal/linkedin"
	"github.com/alegonzalezz/ATS/internal/logger"
	"github.com/alegonzalezz/ATS/internal/store"
)

// Config holds server configuration
type Config struct {
	Port int
}

// Dependencies contains all service dependencies.
type Dependencies struct {
	Store     *store.Store
	Manager   *store.BulkSyncManager
	Scheduler *linkedin.Scheduler
	Hub       *Hub
	Log       *logger.Logger
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     *Config
	listener   net.Listener
	deps       *Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config, deps *Dependencies) *Server {
	srv := &Server{
		router: chi.NewRouter(),
		config: cfg,
		deps:   deps,
	}

	srv.setupMiddleware()
	srv.setupRoutes()

	return srv
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	if s.deps.Hub != nil {
		s.router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(s.deps.Hub, w, r)
		})
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", s.listCandidates)
			r.Post("/", s.createCandidate)
			r.Post("/import", s.importCV)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getCandidate)
				r.Patch("/", s.updateCandidate)
				r.Delete("/", s.deleteCandidate)

				r.Post("/notes", s.addNote)
				r.Post("/tags", s.addTag)
				r.Delete("/tags/{tag}", s.removeTag)

				r.Post("/sync", s.syncCandidate)
			})
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/bulk", s.startBulkSync)
			r.Delete("/bulk", s.stopBulkSync)
			r.Get("/status", s.syncStatus)
			r.Post("/flush", s.flushPending)
			r.Get("/config", s.getSyncConfig)
			r.Put("/config", s.updateSyncConfig)
		})

		r.Get("/stats", s.getStats)
		r.Get("/skills", s.listSkills)
		r.Get("/tags", s.listTags)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.httpServer.Serve(listener)
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// BaseURL returns the server's base URL
func (s *Server) BaseURL() string {
	if s.listener != nil {
		return fmt.Sprintf("http://%s", s.listener.Addr().String())
	}
	return fmt.Sprintf("http://localhost:%d", s.config.Port)
}

// Router returns the underlying Chi router for external route mounting.
func (s *Server) Router() *chi.Mux {
	return s.router
}
