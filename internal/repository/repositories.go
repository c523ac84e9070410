package repository

import (
	"github.com/Wallian169/p2p-tg-bot/internal/database"
)

// Repositories groups every repository bound to one session.
type Repositories struct {
	Currencies     *CurrencyRepository
	Users          *UserRepository
	Pictures       *PictureRepository
	PaymentMethods *PaymentMethodRepository
	Orders         *OrderRepository
}

// New binds all repositories to s.
func New(s *database.Session) *Repositories {
	return &Repositories{
		Currencies:     NewCurrencyRepository(s),
		Users:          NewUserRepository(s),
		Pictures:       NewPictureRepository(s),
		PaymentMethods: NewPaymentMethodRepository(s),
		Orders:         NewOrderRepository(s),
	}
}
