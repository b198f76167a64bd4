package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gdugdh24/devconnector-backend/internal/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents HTTP server
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.ServerConfig, router *gin.Engine, log *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:        router,
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		log: log,
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown waits for in-flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
