package repository_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wallian169/p2p-tg-bot/internal/database/dbtest"
	"github.com/Wallian169/p2p-tg-bot/internal/models"
	"github.com/Wallian169/p2p-tg-bot/internal/repository"
	"github.com/Wallian169/p2p-tg-bot/internal/sqlerr"
)

func TestUniqueness(t *testing.T) {
	repos := repository.New(dbtest.Session(t, dbtest.New(t)))

	tests := []struct {
		name   string
		insert func() error
	}{
		{
			name: "currency name",
			insert: func() error {
				return repos.Currencies.Create(&models.Currency{Name: "US Dollar", Symbol: "$"})
			},
		},
		{
			name: "user uuid",
			insert: func() error {
				return repos.Users.Create(&models.User{UUID: "u-1", Username: "alice"})
			},
		},
		{
			name: "payment method name",
			insert: func() error {
				return repos.PaymentMethods.Create(&models.PaymentMethod{Name: "Cash"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.insert())

			err := tt.insert()
			require.Error(t, err)
			assert.Equal(t, sqlerr.UniqueViolation, sqlerr.Classify(err))
		})
	}
}

func TestUsers_GeneratedUUID(t *testing.T) {
	repos := repository.New(dbtest.Session(t, dbtest.New(t)))

	u := &models.User{Username: "carol"}
	require.NoError(t, repos.Users.Create(u))
	assert.Len(t, u.UUID, 36)

	found, err := repos.Users.GetByUUID(u.UUID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repos.Users.GetByUUID("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCurrencies_CRUD(t *testing.T) {
	repos := repository.New(dbtest.Session(t, dbtest.New(t)))

	usd := &models.Currency{Name: "US Dollar", Symbol: "$"}
	require.NoError(t, repos.Currencies.Create(usd))
	require.NoError(t, repos.Currencies.Create(&models.Currency{Name: "Euro", Symbol: "€"}))

	found, err := repos.Currencies.GetByName("Euro")
	require.NoError(t, err)
	assert.Equal(t, "€", found.Symbol)

	icon := "icons/usd.svg"
	updated, err := repos.Currencies.Update(usd.ID, map[string]interface{}{"icon": &icon})
	require.NoError(t, err)
	require.NotNil(t, updated.Icon)
	assert.Equal(t, icon, *updated.Icon)

	all, err := repos.Currencies.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "US Dollar", all[0].Name)

	_, err = repos.Currencies.Update(999, map[string]interface{}{"symbol": "?"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repos.Currencies.Delete(found.ID))
	_, err = repos.Currencies.GetByID(found.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCurrencies_DeleteInUse(t *testing.T) {
	repos := repository.New(dbtest.Session(t, dbtest.New(t)))

	usd := &models.Currency{Name: "US Dollar", Symbol: "$"}
	require.NoError(t, repos.Currencies.Create(usd))
	alice := &models.User{Username: "alice"}
	require.NoError(t, repos.Users.Create(alice))
	require.NoError(t, repos.Orders.Create(&models.Order{
		OwnerID:    alice.ID,
		CurrencyID: usd.ID,
		Action:     models.OrderActionSell,
		Amount:     decimal.NewFromInt(7),
	}))

	err := repos.Currencies.Delete(usd.ID)
	require.Error(t, err)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.Classify(err))
}

func TestPictures_CRUD(t *testing.T) {
	repos := repository.New(dbtest.Session(t, dbtest.New(t)))

	p := &models.Picture{Path: "avatars/alice.png"}
	require.NoError(t, repos.Pictures.Create(p))

	updated, err := repos.Pictures.Update(p.ID, map[string]interface{}{"path": "avatars/alice@2x.png"})
	require.NoError(t, err)
	assert.Equal(t, "avatars/alice@2x.png", updated.Path)

	require.NoError(t, repos.Pictures.Delete(p.ID))
	assert.ErrorIs(t, repos.Pictures.Delete(p.ID), repository.ErrNotFound)
}
