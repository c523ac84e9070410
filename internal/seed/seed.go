// Package seed inserts the reference data every installation needs:
// the tradable currencies and the payment methods.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Wallian169/p2p-tg-bot/internal/database"
	"github.com/Wallian169/p2p-tg-bot/internal/models"
	"github.com/Wallian169/p2p-tg-bot/internal/repository"
)

var defaultCurrencies = []models.Currency{
	{Name: "US Dollar", Symbol: "$"},
	{Name: "Euro", Symbol: "€"},
	{Name: "Tether", Symbol: "₮"},
}

var defaultPaymentMethods = []models.PaymentMethod{
	{Name: "Bank transfer"},
	{Name: "Cash"},
	{Name: "Card"},
}

// Result counts the rows inserted by Run.
type Result struct {
	Currencies     int
	PaymentMethods int
}

// Run inserts the default currencies and payment methods that are missing,
// matched by name, in one transaction. Running it twice inserts nothing the
// second time.
func Run(ctx context.Context, db *database.Database, logger *zerolog.Logger) (Result, error) {
	var res Result

	err := db.WithSession(ctx, func(s *database.Session) error {
		return s.Transaction(func() error {
			repos := repository.New(s)

			for _, c := range defaultCurrencies {
				_, err := repos.Currencies.GetByName(c.Name)
				if err == nil {
					continue
				}
				if !errors.Is(err, repository.ErrNotFound) {
					return err
				}

				currency := c
				if err := repos.Currencies.Create(&currency); err != nil {
					return err
				}
				res.Currencies++
			}

			for _, pm := range defaultPaymentMethods {
				_, err := repos.PaymentMethods.GetByName(pm.Name)
				if err == nil {
					continue
				}
				if !errors.Is(err, repository.ErrNotFound) {
					return err
				}

				method := pm
				if err := repos.PaymentMethods.Create(&method); err != nil {
					return err
				}
				res.PaymentMethods++
			}
			return nil
		})
	})
	if err != nil {
		return Result{}, err
	}

	if res.Currencies == 0 && res.PaymentMethods == 0 {
		logger.Info().Msg("seed already applied, skipping")
	} else {
		logger.Info().
			Int("currencies", res.Currencies).
			Int("payment_methods", res.PaymentMethods).
			Msg("seed applied")
	}

	return res, nil
}
