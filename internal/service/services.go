package service

import (
	"github.com/Wallian169/p2p-tg-bot/internal/server"
)

type Services struct {
	Orders         *OrderService
	Currencies     *CurrencyService
	Users          *UserService
	PaymentMethods *PaymentMethodService
	Pictures       *PictureService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Orders:         NewOrderService(s),
		Currencies:     NewCurrencyService(s),
		Users:          NewUserService(s),
		PaymentMethods: NewPaymentMethodService(s),
		Pictures:       NewPictureService(s),
	}
}
