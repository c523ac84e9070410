package database

import (
	"context"
	"fmt"

	"github.com/Wallian169/p2p-tg-bot/internal/models"
)

// Migrate creates missing tables, columns, indexes and constraints for
// every model. It is a schema bootstrap for fresh stores (the development
// SQLite file, test databases), not a versioned migration system; it never
// drops anything.
func (db *Database) Migrate(ctx context.Context) error {
	if err := db.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrating database schema: %w", err)
	}

	tables, err := db.DB.Migrator().GetTables()
	if err != nil {
		return fmt.Errorf("listing database tables: %w", err)
	}

	db.log.Info().
		Str("dialect", string(db.Dialect)).
		Strs("tables", tables).
		Msg("database schema up to date")
	return nil
}
