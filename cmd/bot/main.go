// cmd/bot/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "places-bot/internal"
	"places-bot/internal/util"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create and initialize the application
	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		util.GetLogger().Error("Failed to initialize application", "error", err)
		_ = application.Shutdown(context.Background())
		os.Exit(1)
	}
	logger := application.Logger

	// Ops HTTP server: health, metrics and read-only place views
	server := &http.Server{
		Addr:         application.Config.OpsAddr,
		Handler:      application.HTTPHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 40 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info("Starting ops HTTP server", "addr", application.Config.OpsAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Ops HTTP server failed", "error", err)
			cancel()
		}
	}()

	// Chat updates
	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		application.Poller.Run(ctx, application.Dispatcher.Dispatch)
		cancel()
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("Received signal", "signal", sig.String())
	case <-ctx.Done():
		logger.Warn("A component stopped unexpectedly")
	}
	cancel()
	<-pollDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ops HTTP server shutdown failed", "error", err)
	}

	// Drain queued messages, then close DB, cache and event connections
	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("Application shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Application gracefully stopped.")
}
