// Package repository handles all interactions with the database.
//
// Repositories are bound to one database.Session and run every statement
// on it, so they take part in whatever transaction the caller opened on that
// session. They never commit or roll back.
//
// Driver errors (constraint violations included) are wrapped with context
// and otherwise passed through unchanged; use sqlerr.Classify or
// sqlerr.HandleError to interpret them. A missing row is reported as
// ErrNotFound.
package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Wallian169/p2p-tg-bot/internal/database"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// notFound reports a missing row of table. The "table:<name>" prefix lets
// sqlerr.HandleError name the entity.
func notFound(table string) error {
	return errors.Wrapf(ErrNotFound, "table:%s", table)
}

// immutableColumns can never be changed through Update.
var immutableColumns = []string{"id", "created_at"}

func sanitize(changes map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(changes))
	for k, v := range changes {
		out[k] = v
	}
	for _, col := range immutableColumns {
		delete(out, col)
	}
	return out
}

func create[T any](s *database.Session, table string, row *T) error {
	if err := s.DB().Create(row).Error; err != nil {
		return errors.Wrapf(err, "create %s", table)
	}
	return nil
}

func getByID[T any](s *database.Session, table string, id uint) (*T, error) {
	var row T
	if err := s.DB().Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(table)
		}
		return nil, errors.Wrapf(err, "get %s %d", table, id)
	}
	return &row, nil
}

func getBy[T any](s *database.Session, table, column string, value interface{}) (*T, error) {
	var row T
	if err := s.DB().Where(column+" = ?", value).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(table)
		}
		return nil, errors.Wrapf(err, "get %s by %s", table, column)
	}
	return &row, nil
}

func list[T any](s *database.Session, table string) ([]T, error) {
	var rows []T
	if err := s.DB().Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list %s", table)
	}
	return rows, nil
}

// update applies changes to row id and returns the row as stored. An empty
// change set only reads the row.
func update[T any](s *database.Session, table string, id uint, changes map[string]interface{}) (*T, error) {
	changes = sanitize(changes)
	if len(changes) == 0 {
		return getByID[T](s, table, id)
	}

	res := s.DB().Model(new(T)).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "update %s %d", table, id)
	}
	if res.RowsAffected == 0 {
		return nil, notFound(table)
	}
	return getByID[T](s, table, id)
}

func deleteByID[T any](s *database.Session, table string, id uint) error {
	res := s.DB().Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete %s %d", table, id)
	}
	if res.RowsAffected == 0 {
		return notFound(table)
	}
	return nil
}
