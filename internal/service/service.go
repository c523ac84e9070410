// Package service contains the operations callers run against the store.
//
// Every operation validates its transfer object first, so an invalid
// payload never reaches the database. Valid operations run in one session
// and one transaction, and return Read shapes. Storage errors are converted
// with sqlerr.HandleError; the driver error stays reachable through
// errors.As.
package service

import (
	"context"

	"github.com/Wallian169/p2p-tg-bot/internal/database"
	"github.com/Wallian169/p2p-tg-bot/internal/repository"
	"github.com/Wallian169/p2p-tg-bot/internal/server"
	"github.com/Wallian169/p2p-tg-bot/internal/sqlerr"
)

// inTransaction runs fn with repositories bound to a fresh session inside
// one transaction.
func inTransaction(ctx context.Context, s *server.Server, fn func(repos *repository.Repositories) error) error {
	err := s.DB.WithSession(ctx, func(sess *database.Session) error {
		return sess.Transaction(func() error {
			return fn(repository.New(sess))
		})
	})
	return sqlerr.HandleError(err)
}

// read runs fn on a fresh session without an explicit transaction.
func read(ctx context.Context, s *server.Server, fn func(repos *repository.Repositories) error) error {
	err := s.DB.WithSession(ctx, func(sess *database.Session) error {
		return fn(repository.New(sess))
	})
	return sqlerr.HandleError(err)
}
