package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/unidelivery/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
	log.Println("service stopped gracefully")
}

// run serves the route table selected by app.role until SIGINT or SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("config finalize failed: %w", err)
	}

	svc, err := NewService(cfg)
	if err != nil {
		return fmt.Errorf("service init failed: %w", err)
	}
	if err := svc.Start(); err != nil {
		return fmt.Errorf("service start failed: %w", err)
	}
	log.Printf("serving the %s route table under %s", cfg.App.Role, cfg.App.BasePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := svc.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
