package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wallian169/p2p-tg-bot/internal/database/dbtest"
	"github.com/Wallian169/p2p-tg-bot/internal/errs"
	"github.com/Wallian169/p2p-tg-bot/internal/models"
	"github.com/Wallian169/p2p-tg-bot/internal/schema"
	"github.com/Wallian169/p2p-tg-bot/internal/server"
	"github.com/Wallian169/p2p-tg-bot/internal/service"
	"github.com/Wallian169/p2p-tg-bot/internal/sqlerr"
)

func newServices(t *testing.T) (*service.Services, *server.Server) {
	t.Helper()

	logger := zerolog.Nop()
	srv := &server.Server{
		Config: dbtest.Config(t),
		Logger: &logger,
		DB:     dbtest.New(t),
	}
	return service.NewServices(srv), srv
}

func countOrders(t *testing.T, srv *server.Server) int64 {
	t.Helper()

	var n int64
	require.NoError(t, srv.DB.DB.Model(&models.Order{}).Count(&n).Error)
	return n
}

func seedOwnerAndCurrency(t *testing.T, svc *service.Services) (schema.UserRead, schema.CurrencyRead) {
	t.Helper()
	ctx := context.Background()

	usd, err := svc.Currencies.Create(ctx, schema.CurrencyCreate{Name: "US Dollar", Symbol: "$"})
	require.NoError(t, err)
	alice, err := svc.Users.Create(ctx, schema.UserCreate{UUID: "u-1", Username: "alice"})
	require.NoError(t, err)
	return alice, usd
}

func TestOrders_ZeroAmountIsRejectedBeforeWrite(t *testing.T) {
	svc, srv := newServices(t)
	alice, usd := seedOwnerAndCurrency(t, svc)

	_, err := svc.Orders.Create(context.Background(), schema.OrderCreate{
		OwnerID:    alice.ID,
		CurrencyID: usd.ID,
		Action:     models.OrderActionBuy,
		Amount:     decimal.RequireFromString("0.00"),
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	msg, ok := httpErr.Field("amount")
	require.True(t, ok)
	assert.Equal(t, "amount must be greater than zero", msg)

	assert.Zero(t, countOrders(t, srv))
	assert.Zero(t, srv.DB.Stats().InUse)
}

func TestOrders_UnstorableAmountIsRejectedBeforeWrite(t *testing.T) {
	svc, srv := newServices(t)
	alice, usd := seedOwnerAndCurrency(t, svc)

	for _, amount := range []string{"0.004", "100000000", "1e12"} {
		t.Run(amount, func(t *testing.T) {
			_, err := svc.Orders.Create(context.Background(), schema.OrderCreate{
				OwnerID:    alice.ID,
				CurrencyID: usd.ID,
				Action:     models.OrderActionSell,
				Amount:     decimal.RequireFromString(amount),
			})

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			_, ok := httpErr.Field("amount")
			assert.True(t, ok)
		})
	}

	assert.Zero(t, countOrders(t, srv))
	assert.Zero(t, srv.DB.Stats().InUse)
}

func TestOrders_Lifecycle(t *testing.T) {
	svc, srv := newServices(t)
	ctx := context.Background()
	alice, usd := seedOwnerAndCurrency(t, svc)

	cash, err := svc.PaymentMethods.Create(ctx, schema.PaymentMethodCreate{Name: "Cash"})
	require.NoError(t, err)

	created, err := svc.Orders.Create(ctx, schema.OrderCreate{
		OwnerID:          alice.ID,
		CurrencyID:       usd.ID,
		Action:           models.OrderActionBuy,
		Amount:           decimal.RequireFromString("10.50"),
		PaymentMethodIDs: []uint{cash.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Owner.Username)
	assert.Equal(t, "$", created.Currency.Symbol)
	assert.Equal(t, []schema.PaymentMethodRead{cash}, created.PaymentMethods)
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

	updated, err := svc.Orders.Update(ctx, created.ID, schema.OrderUpdate{
		Amount: schema.Some(decimal.RequireFromString("20.00")),
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(20)))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = svc.Orders.Update(ctx, created.ID, schema.OrderUpdate{
		Amount: schema.Some(decimal.RequireFromString("-1")),
	})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	got, err := svc.Orders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(20)))

	err = svc.Orders.AttachPaymentMethod(ctx, created.ID, cash.ID)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.Classify(err))

	list, err := svc.Orders.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Orders.Delete(ctx, created.ID))
	_, err = svc.Orders.Get(ctx, created.ID)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Order not found", httpErr.Message)

	assert.Zero(t, countOrders(t, srv))
	assert.Zero(t, srv.DB.Stats().InUse)
}

func TestOrders_MissingOwner(t *testing.T) {
	svc, srv := newServices(t)
	_, usd := seedOwnerAndCurrency(t, svc)

	_, err := svc.Orders.Create(context.Background(), schema.OrderCreate{
		OwnerID:    999,
		CurrencyID: usd.ID,
		Action:     models.OrderActionSell,
		Amount:     decimal.NewFromInt(1),
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.Classify(err))
	assert.Zero(t, countOrders(t, srv))
}

func TestCurrencies_Duplicate(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	_, err := svc.Currencies.Create(ctx, schema.CurrencyCreate{Name: "Euro", Symbol: "€"})
	require.NoError(t, err)

	_, err = svc.Currencies.Create(ctx, schema.CurrencyCreate{Name: "Euro", Symbol: "€"})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "CURRENCY_ALREADY_EXISTS", httpErr.Code)

	list, err := svc.Currencies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
