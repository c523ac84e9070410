package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every recognised variable; empty values are ignored by Load.
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name:    "development uses sqlite defaults",
			envVars: map[string]string{"ENV": "dev"},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsDevelopment())
				assert.Equal(t, "./dev.db", cfg.Database.Path)
				assert.False(t, cfg.Database.Echo)
				assert.Equal(t, "development", cfg.Observability.Environment)
				assert.Equal(t, "debug", cfg.Observability.GetLogLevel())
			},
		},
		{
			name: "networked store",
			envVars: map[string]string{
				"DB_USER":     "orders",
				"DB_PASSWORD": "p@ss:word",
				"DB_HOST":     "db.internal",
				"DB_NAME":     "p2p",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, "orders", cfg.Database.User)
				assert.Equal(t, "p@ss:word", cfg.Database.Password)
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, "p2p", cfg.Database.Name)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, int32(10), cfg.Database.MaxConns)
				assert.True(t, cfg.Observability.IsProduction())
				assert.Equal(t, "info", cfg.Observability.GetLogLevel())
				assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
			},
		},
		{
			name: "custom values",
			envVars: map[string]string{
				"ENV":            "staging",
				"DB_USER":        "orders",
				"DB_PASSWORD":    "secret",
				"DB_HOST":        "localhost",
				"DB_NAME":        "p2p",
				"DB_PORT":        "6543",
				"DB_MAX_CONNS":   "3",
				"SQL_ECHO":       "TRUE",
				"LOG_LEVEL":      "warn",
				"LOG_FORMAT":     "console",
				"LOG_SLOW_QUERY": "250ms",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 6543, cfg.Database.Port)
				assert.Equal(t, int32(3), cfg.Database.MaxConns)
				assert.True(t, cfg.Database.Echo)
				assert.Equal(t, "staging", cfg.Observability.Environment)
				assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
				assert.Equal(t, "console", cfg.Observability.Logging.Format)
				assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
			},
		},
		{
			name:    "sql echo only accepts true",
			envVars: map[string]string{"ENV": "dev", "SQL_ECHO": "yes"},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Database.Echo)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_MissingDatabaseParameters(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "localhost")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"DB_USER", "DB_PASSWORD", "DB_NAME"}, cfgErr.Fields)
	assert.Contains(t, err.Error(), "missing required database parameters")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}
