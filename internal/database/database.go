// Package database contains the logic for establishing connections to the
// relational store and handing out sessions.
//
// In development (ENV=dev) the store is a local SQLite file. Everywhere else
// it is PostgreSQL reached through a pgx connection pool. Both are exposed
// through GORM so the entity and repository layers do not care which one is
// behind them.
//
// It handles:
//   - building a DSN from config
//   - creating a pgx connection pool (pgxpool) and bridging it to GORM
//   - wiring statement logging (pgx tracelog, GORM logger)
//   - optional New Relic instrumentation (nrpgx5)
//   - per-unit-of-work sessions (see session.go)
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Wallian169/p2p-tg-bot/internal/config"
	loggerConfig "github.com/Wallian169/p2p-tg-bot/internal/logger"
	"github.com/Wallian169/p2p-tg-bot/internal/models"
)

// Dialect names the store behind a Database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Database wraps the ORM handle and the resources underneath it.
//
// Pool is only set for PostgreSQL.
type Database struct {
	DB      *gorm.DB
	Pool    *pgxpool.Pool
	Dialect Dialect

	sqlDB *sql.DB
	log   *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig. This adapter runs the New
// Relic tracer and the local statement logger side by side.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is how long startup waits for the store to answer.
const DatabasePingTimeout = 10 * time.Second

// Now is the clock used for server-assigned timestamps. It is truncated to
// microseconds, the resolution of PostgreSQL timestamptz, so values read
// back compare equal to the values written.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// New opens the store selected by cfg and verifies it answers.
//
// No retry is attempted: a connection failure is returned as is.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	slow := time.Duration(0)
	if cfg.Observability != nil {
		slow = cfg.Observability.Logging.SlowQueryThreshold
	}

	// On PostgreSQL statements are echoed by the pgx tracer, so the ORM
	// logger only reports slow and failed queries there.
	echo := cfg.Database.Echo && cfg.IsDevelopment()

	gormConfig := &gorm.Config{
		Logger:  loggerConfig.NewGormLogger(*logger, echo, slow),
		NowFunc: Now,
	}

	var (
		database *Database
		err      error
	)
	if cfg.IsDevelopment() {
		database, err = openSQLite(cfg, gormConfig, logger)
	} else {
		database, err = openPostgres(ctx, cfg, gormConfig, logger, loggerService)
	}
	if err != nil {
		return nil, err
	}

	if err := models.SetupJoinTables(database.DB); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to register join tables: %w", err)
	}

	if err := database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, err
	}

	logger.Info().Str("dialect", string(database.Dialect)).Msg("connected to the database")

	return database, nil
}

// SQLiteDSN builds the DSN of the development store: foreign keys on,
// WAL journal and a busy timeout so concurrent sessions wait instead of
// failing immediately.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func openSQLite(cfg *config.Config, gormConfig *gorm.Config, logger *zerolog.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.Database.Path)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(int(cfg.Database.MaxConns))

	return &Database{
		DB:      db,
		Dialect: DialectSQLite,
		sqlDB:   sqlDB,
		log:     logger,
	}, nil
}

// PostgresDSN builds the connection string. User and password are escaped
// as userinfo so characters like ':', '@' or ' ' do not break the URL.
func PostgresDSN(cfg config.DatabaseConfig) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return dsn.String()
}

func openPostgres(ctx context.Context, cfg *config.Config, gormConfig *gorm.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(PostgresDSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}
	pgxPoolConfig.MaxConns = cfg.Database.MaxConns

	if loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	if cfg.Database.Echo {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	// database/sql view over the same pool, for GORM.
	sqlDB := stdlib.OpenDBFromPool(pool)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig)
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	return &Database{
		DB:      db,
		Pool:    pool,
		Dialect: DialectPostgres,
		sqlDB:   sqlDB,
		log:     logger,
	}, nil
}

// Ping checks the store answers within DatabasePingTimeout.
func (db *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DatabasePingTimeout)
	defer cancel()

	if err := db.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Stats reports connection usage of the underlying pool.
func (db *Database) Stats() sql.DBStats {
	return db.sqlDB.Stats()
}

// Close releases every connection.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	err := db.sqlDB.Close()
	if db.Pool != nil {
		db.Pool.Close()
	}
	return err
}
