// Package server provides the HTTP endpoint that triggers quiz sessions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/quiz-solver/internal/session"
	"github.com/jonathan/quiz-solver/internal/types"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight sessions get to finish on shutdown.
const shutdownTimeout = 30 * time.Second

// SessionRunner runs one quiz session to completion.
type SessionRunner interface {
	Run(ctx context.Context, id types.Identity, startURL string, deadline time.Time) (*session.Summary, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	runner          SessionRunner
	secret          string
	sessionDeadline time.Duration
}

// Config holds server configuration
type Config struct {
	Port            int
	Secret          string
	SessionDeadline time.Duration
}

// New creates a new server instance
func New(cfg Config, runner SessionRunner) (*Server, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("server secret is required")
	}
	if runner == nil {
		return nil, fmt.Errorf("session runner is required")
	}
	if cfg.SessionDeadline <= 0 {
		return nil, fmt.Errorf("session deadline must be positive")
	}

	s := &Server{
		runner:          runner,
		secret:          cfg.Secret,
		sessionDeadline: cfg.SessionDeadline,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // A session holds the request open until it ends
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", s.handleQuiz)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.withLogging(mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("[SERVER] Starting on %s", ln.Addr())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("[SERVER] Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("[SERVER] Stopped")
	return nil
}

// withLogging logs requests
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
