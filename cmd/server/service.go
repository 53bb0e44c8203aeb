package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/JaimeStill/unidelivery/internal/config"
	"github.com/JaimeStill/unidelivery/internal/server"
	"github.com/JaimeStill/unidelivery/pkg/logging"
)

// Service coordinates the lifecycle of all subsystems.
type Service struct {
	ctx        context.Context
	cancel     context.CancelFunc
	shutdownWg sync.WaitGroup
	ready      atomic.Bool

	logger *slog.Logger
	server server.System
}

// NewService creates and initializes the service with all subsystems.
func NewService(cfg *config.Config) (*Service, error) {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logging.New(&cfg.Logging)

	svc := &Service{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}

	router, table, err := buildHandler(cfg, logger, svc.ready.Load)
	if err != nil {
		cancel()
		return nil, err
	}

	svc.server = server.New(&cfg.Server, router, logger, cfg.ShutdownTimeoutDuration())

	logger.Info(
		"service initialized",
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
		"role", string(cfg.App.Role),
		"routes", table.Len(),
		"base_path", cfg.App.BasePath,
	)

	return svc, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Service) Start() error {
	s.logger.Info("starting service")

	if err := s.server.Start(s.ctx, &s.shutdownWg); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	s.ready.Store(true)
	s.logger.Info("service started", "addr", s.server.Addr())
	return nil
}

// Shutdown gracefully stops all subsystems within the provided context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating shutdown")

	s.ready.Store(false)
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("all subsystems shut down successfully")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
