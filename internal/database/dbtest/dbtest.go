// Package dbtest opens throwaway development stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Wallian169/p2p-tg-bot/internal/config"
	"github.com/Wallian169/p2p-tg-bot/internal/database"
)

// Config returns a development config pointing at a fresh SQLite file in
// a per-test temporary directory.
func Config(t *testing.T) *config.Config {
	t.Helper()

	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"

	return &config.Config{
		Primary: config.Primary{Env: config.EnvDevelopment},
		Database: config.DatabaseConfig{
			Path:     filepath.Join(t.TempDir(), "test.db"),
			MaxConns: 4,
		},
		Observability: obs,
	}
}

// New opens and migrates a development store. It is closed when the test
// ends.
func New(t *testing.T) *database.Database {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	db, err := database.New(ctx, Config(t), &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}

// Session acquires a session that is closed when the test ends.
func Session(t *testing.T, db *database.Database) *database.Session {
	t.Helper()

	s, err := db.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
