package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dominium-listings/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// create the HTTP server; uploads and URL imports can take a while, so the
// write timeout covers a full batch
func (a *App) InitializeServer() {
	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}

// run the server until SIGINT or SIGTERM, then drain in-flight requests
func (a *App) StartServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.GlobalLogger.Printf("Starting server on %s (storage: %s)", a.Server.Addr, a.Config.Database.Driver)
		errCh <- a.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.GlobalLogger.Errorf("Failed to start server: %v", err)
			a.cleanup()
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	logger.GlobalLogger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		logger.GlobalLogger.Errorf("Server forced to shutdown: %v", err)
		return
	}
	logger.GlobalLogger.Println("Server exited")
}
