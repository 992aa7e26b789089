package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/devstefancho/claude-hook-logger/internal/query"
	"github.com/devstefancho/claude-hook-logger/internal/shared/middleware"
)

type Server struct {
	router          *http.ServeMux
	port            int
	queries         *query.Service
	tools           *query.Registry
	logger          zerolog.Logger
	shutdownTimeout time.Duration
}

func NewServer(port int, queries *query.Service, tools *query.Registry, logger zerolog.Logger, shutdownTimeout time.Duration) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		port:            port,
		queries:         queries,
		tools:           tools,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleDashboard)

	// API endpoints
	s.router.HandleFunc("GET /api/files", s.handleAPIFiles)
	s.router.HandleFunc("GET /api/summary", s.handleAPISummary)
	s.router.HandleFunc("GET /api/sessions", s.handleAPISessions)
	s.router.HandleFunc("GET /api/sessions/{id}", s.handleAPISessionDetail)
	s.router.HandleFunc("GET /api/recent", s.handleAPIRecent)
	s.router.HandleFunc("GET /api/usage", s.handleAPIUsage)
	s.router.HandleFunc("GET /api/search", s.handleAPISearch)

	// Tool registry
	s.router.HandleFunc("GET /api/tools", s.handleAPIListTools)
	s.router.HandleFunc("POST /api/tools/{name}", s.handleAPICallTool)
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = middleware.HTMX(h)
	h = middleware.AccessLog(s.logger)(h)
	h = middleware.RequestID(h)
	return h
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Msgf("Starting server at http://localhost:%d", s.port)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}
