package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 30 * time.Second

// Start listens on Host:Port and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.Host, s.Port))
	if err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}
	s.displayServerInfo()
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := s.newHTTPServer()
	serverErrors := make(chan error, 1)

	go func() {
		s.Logger.Info("Starting HTTP server", "address", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		s.cleanupRateLimiter()
		if !ok {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.Logger.Info("Shutdown requested, starting graceful shutdown")
		return s.performGracefulShutdown(server)
	}
}

func (s *Server) newHTTPServer() *http.Server {
	return &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}
}

func (s *Server) performGracefulShutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.cleanupRateLimiter()

	s.Logger.Info("Shutting down HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

func (s *Server) cleanupRateLimiter() {
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Debug("Rate limiter cleaned up")
	}
}
