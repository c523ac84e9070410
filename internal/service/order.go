package service

import (
	"context"

	"github.com/Wallian169/p2p-tg-bot/internal/repository"
	"github.com/Wallian169/p2p-tg-bot/internal/schema"
	"github.com/Wallian169/p2p-tg-bot/internal/server"
	"github.com/Wallian169/p2p-tg-bot/internal/validation"
)

type OrderService struct {
	server *server.Server
}

func NewOrderService(s *server.Server) *OrderService {
	return &OrderService{server: s}
}

// Create places an order and attaches its payment methods in one
// transaction.
func (s *OrderService) Create(ctx context.Context, in schema.OrderCreate) (schema.OrderRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.OrderRead{}, err
	}

	var out schema.OrderRead
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		order := in.ToModel()
		if err := repos.Orders.Create(order, in.PaymentMethodIDs...); err != nil {
			return err
		}

		stored, err := repos.Orders.GetByID(order.ID)
		if err != nil {
			return err
		}
		out, err = schema.NewOrderRead(stored)
		return err
	})
	if err != nil {
		return schema.OrderRead{}, err
	}

	s.server.Logger.Info().
		Uint("order_id", out.ID).
		Uint("owner_id", out.OwnerID).
		Str("action", out.Action.String()).
		Str("amount", out.Amount.String()).
		Msg("order created")

	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (schema.OrderRead, error) {
	var out schema.OrderRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		order, err := repos.Orders.GetByID(id)
		if err != nil {
			return err
		}
		out, err = schema.NewOrderRead(order)
		return err
	})
	return out, err
}

func (s *OrderService) ListByOwner(ctx context.Context, ownerID uint) ([]schema.OrderRead, error) {
	var out []schema.OrderRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		orders, err := repos.Orders.ListByOwner(ownerID)
		if err != nil {
			return err
		}

		out = make([]schema.OrderRead, 0, len(orders))
		for i := range orders {
			r, err := schema.NewOrderRead(&orders[i])
			if err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// Update applies a partial update. Fields absent from in are left as they
// are.
func (s *OrderService) Update(ctx context.Context, id uint, in schema.OrderUpdate) (schema.OrderRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.OrderRead{}, err
	}

	var out schema.OrderRead
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		order, err := repos.Orders.Update(id, in.Changes())
		if err != nil {
			return err
		}
		out, err = schema.NewOrderRead(order)
		return err
	})
	if err != nil {
		return schema.OrderRead{}, err
	}

	s.server.Logger.Debug().Uint("order_id", id).Msg("order updated")
	return out, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		return repos.Orders.Delete(id)
	})
	if err != nil {
		return err
	}

	s.server.Logger.Info().Uint("order_id", id).Msg("order deleted")
	return nil
}

func (s *OrderService) AttachPaymentMethod(ctx context.Context, orderID, paymentMethodID uint) error {
	return inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		if _, err := repos.Orders.GetByID(orderID); err != nil {
			return err
		}
		return repos.Orders.AttachPaymentMethod(orderID, paymentMethodID)
	})
}

func (s *OrderService) DetachPaymentMethod(ctx context.Context, orderID, paymentMethodID uint) error {
	return inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		return repos.Orders.DetachPaymentMethod(orderID, paymentMethodID)
	})
}
