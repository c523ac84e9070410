// Package server defines the Server struct that composes the module's main
// dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the database (SQLite in development, a PostgreSQL pool otherwise)
//
// There is no listener here; callers (the CLI, an API layer built on top)
// borrow sessions from DB for each unit of work.
package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Wallian169/p2p-tg-bot/internal/config"
	"github.com/Wallian169/p2p-tg-bot/internal/database"
	loggerPkg "github.com/Wallian169/p2p-tg-bot/internal/logger"
)

// Server is the application container that holds shared resources.
type Server struct {
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	DB *database.Database
}

// New connects to the database selected by cfg. A connection failure is
// returned immediately; there is no retry.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Shutdown closes the database and flushes New Relic.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	s.LoggerService.Shutdown()

	return nil
}
