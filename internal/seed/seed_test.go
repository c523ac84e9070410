package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wallian169/p2p-tg-bot/internal/database/dbtest"
	"github.com/Wallian169/p2p-tg-bot/internal/models"
	"github.com/Wallian169/p2p-tg-bot/internal/seed"
)

func TestRun_Idempotent(t *testing.T) {
	db := dbtest.New(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	res, err := seed.Run(ctx, db, &logger)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Currencies: 3, PaymentMethods: 3}, res)

	res, err = seed.Run(ctx, db, &logger)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, res)

	var currencies []models.Currency
	require.NoError(t, db.DB.Order("id").Find(&currencies).Error)
	require.Len(t, currencies, 3)
	assert.Equal(t, "US Dollar", currencies[0].Name)
	assert.Equal(t, "₮", currencies[2].Symbol)
}

func TestRun_KeepsExistingRows(t *testing.T) {
	db := dbtest.New(t)
	logger := zerolog.Nop()

	require.NoError(t, db.DB.Create(&models.PaymentMethod{Name: "Cash"}).Error)

	res, err := seed.Run(context.Background(), db, &logger)
	require.NoError(t, err)
	assert.Equal(t, 2, res.PaymentMethods)

	var n int64
	require.NoError(t, db.DB.Model(&models.PaymentMethod{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}
