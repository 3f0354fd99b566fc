package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// RunHTTPServer starts the HTTP server and handles shutdown on context cancellation.
func RunHTTPServer(ctx context.Context, mux http.Handler, addr string, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Minute, // exports wait on Jira for every issue
		IdleTimeout:       60 * time.Second,
	}

	// Start the HTTP server in its own goroutine.
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	// The parent context is already canceled; give in-flight exports a fresh deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "err", err)
		return err
	}
	return nil
}
