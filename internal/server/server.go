// Package server provides HTTP server lifecycle management with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/JaimeStill/unidelivery/internal/config"
)

// System manages the HTTP server lifecycle including startup and shutdown.
type System interface {
	Start(ctx context.Context, wg *sync.WaitGroup) error
	Stop(ctx context.Context) error
	Addr() string
}

type server struct {
	http            *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration

	mu   sync.Mutex
	addr string
}

// New creates a server system with the specified configuration, handler, and logger.
// The shutdown timeout bounds the graceful drain once the start context is cancelled.
func New(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger, shutdownTimeout time.Duration) System {
	return &server{
		http: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        handler,
			ReadTimeout:    cfg.ReadTimeoutDuration(),
			WriteTimeout:   cfg.WriteTimeoutDuration(),
			MaxHeaderBytes: cfg.MaxHeaderBytesValue(),
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		addr:            cfg.Addr(),
	}
}

// Addr returns the listening address once started, or the configured address.
func (s *server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Start binds the listener, serves requests in the background and shuts the
// server down when ctx is cancelled. wg is released once shutdown completes.
func (s *server) Start(ctx context.Context, wg *sync.WaitGroup) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.Stop(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		} else {
			s.logger.Info("server shutdown complete")
		}
	}()

	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// until ctx expires.
func (s *server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
