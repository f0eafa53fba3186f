package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"stock-watchlist-go/internal/config"
)

// Server runs the HTTP API.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// NewServer creates a new Server listening on cfg.Port.
func NewServer(cfg *config.Server, handler http.Handler, logger *zap.Logger) *Server {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		server: server,
		logger: logger.Named("api-server"),
	}
}

// Start runs the HTTP server in a new goroutine. A failure to listen is sent on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server failed", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
