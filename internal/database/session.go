package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrSessionClosed        = errors.New("database: session is closed")
	ErrTransactionActive    = errors.New("database: transaction already in progress")
	ErrNoTransactionStarted = errors.New("database: no transaction in progress")
)

// Session is one unit of work bound to a single pooled connection.
//
// A Session never commits on its own; the caller decides. Close rolls back a
// transaction that was begun but not committed and returns the connection
// to the pool. A Session must not be shared between goroutines.
type Session struct {
	conn   *sql.Conn
	db     *gorm.DB
	tx     *gorm.DB
	closed bool
	log    zerolog.Logger
}

// Acquire reserves a connection and returns a Session on it. The caller
// must Close it; WithSession does that automatically.
//
// Acquisition may block until the pool has a free connection; it gives up
// when ctx is done.
func (db *Database) Acquire(ctx context.Context) (*Session, error) {
	conn, err := db.sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	tx := db.DB.WithContext(ctx)
	tx.Statement.ConnPool = conn

	return &Session{
		conn: conn,
		db:   tx,
		log:  db.log.With().Str("component", "session").Logger(),
	}, nil
}

// WithSession runs fn with a fresh Session and closes it on every exit path:
// normal return, error, panic, or cancellation of ctx. The panic, if any, is
// re-raised after the session is closed.
func (db *Database) WithSession(ctx context.Context, fn func(s *Session) error) error {
	s, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("failed to close session")
		}
	}()

	return fn(s)
}

// DB returns the handle to run statements with: the open transaction if
// there is one, otherwise the session connection.
func (s *Session) DB() *gorm.DB {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// InTransaction reports whether Begin was called without Commit/Rollback.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

func (s *Session) Begin() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx != nil {
		return ErrTransactionActive
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	s.tx = tx
	return nil
}

func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransactionStarted
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Session) Rollback() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransactionStarted
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Transaction runs fn inside Begin/Commit. Any error or panic from fn rolls
// the transaction back; the panic is re-raised.
func (s *Session) Transaction(fn func() error) error {
	if err := s.Begin(); err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rerr := s.Rollback(); rerr != nil {
			s.log.Warn().Err(rerr).Msg("rollback after failed transaction")
		}
	}()

	if err := fn(); err != nil {
		return err
	}

	committed = true
	return s.Commit()
}

// Close rolls back any uncommitted transaction and releases the
// connection. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	var rollbackErr error
	if s.tx != nil {
		rollbackErr = s.Rollback()
	}
	s.closed = true

	if err := s.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return errors.Join(rollbackErr, fmt.Errorf("failed to release connection: %w", err))
	}
	return rollbackErr
}
