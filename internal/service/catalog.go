package service

import (
	"context"

	"github.com/Wallian169/p2p-tg-bot/internal/repository"
	"github.com/Wallian169/p2p-tg-bot/internal/schema"
	"github.com/Wallian169/p2p-tg-bot/internal/server"
	"github.com/Wallian169/p2p-tg-bot/internal/validation"
)

type CurrencyService struct {
	server *server.Server
}

func NewCurrencyService(s *server.Server) *CurrencyService {
	return &CurrencyService{server: s}
}

func (s *CurrencyService) Create(ctx context.Context, in schema.CurrencyCreate) (schema.CurrencyRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.CurrencyRead{}, err
	}

	currency := in.ToModel()
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		return repos.Currencies.Create(currency)
	})
	if err != nil {
		return schema.CurrencyRead{}, err
	}
	return schema.NewCurrencyRead(currency), nil
}

func (s *CurrencyService) Get(ctx context.Context, id uint) (schema.CurrencyRead, error) {
	var out schema.CurrencyRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		c, err := repos.Currencies.GetByID(id)
		if err != nil {
			return err
		}
		out = schema.NewCurrencyRead(c)
		return nil
	})
	return out, err
}

func (s *CurrencyService) List(ctx context.Context) ([]schema.CurrencyRead, error) {
	var out []schema.CurrencyRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		currencies, err := repos.Currencies.List()
		if err != nil {
			return err
		}
		out = make([]schema.CurrencyRead, 0, len(currencies))
		for i := range currencies {
			out = append(out, schema.NewCurrencyRead(&currencies[i]))
		}
		return nil
	})
	return out, err
}

func (s *CurrencyService) Update(ctx context.Context, id uint, in schema.CurrencyUpdate) (schema.CurrencyRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.CurrencyRead{}, err
	}

	var out schema.CurrencyRead
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		c, err := repos.Currencies.Update(id, in.Changes())
		if err != nil {
			return err
		}
		out = schema.NewCurrencyRead(c)
		return nil
	})
	return out, err
}

type UserService struct {
	server *server.Server
}

func NewUserService(s *server.Server) *UserService {
	return &UserService{server: s}
}

func (s *UserService) Create(ctx context.Context, in schema.UserCreate) (schema.UserRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.UserRead{}, err
	}

	user := in.ToModel()
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		return repos.Users.Create(user)
	})
	if err != nil {
		return schema.UserRead{}, err
	}
	return schema.NewUserRead(user), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (schema.UserRead, error) {
	var out schema.UserRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		u, err := repos.Users.GetByID(id)
		if err != nil {
			return err
		}
		out = schema.NewUserRead(u)
		return nil
	})
	return out, err
}

func (s *UserService) GetByUUID(ctx context.Context, uuid string) (schema.UserRead, error) {
	var out schema.UserRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		u, err := repos.Users.GetByUUID(uuid)
		if err != nil {
			return err
		}
		out = schema.NewUserRead(u)
		return nil
	})
	return out, err
}

func (s *UserService) Update(ctx context.Context, id uint, in schema.UserUpdate) (schema.UserRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.UserRead{}, err
	}

	var out schema.UserRead
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		u, err := repos.Users.Update(id, in.Changes())
		if err != nil {
			return err
		}
		out = schema.NewUserRead(u)
		return nil
	})
	return out, err
}

type PaymentMethodService struct {
	server *server.Server
}

func NewPaymentMethodService(s *server.Server) *PaymentMethodService {
	return &PaymentMethodService{server: s}
}

func (s *PaymentMethodService) Create(ctx context.Context, in schema.PaymentMethodCreate) (schema.PaymentMethodRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.PaymentMethodRead{}, err
	}

	method := in.ToModel()
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		return repos.PaymentMethods.Create(method)
	})
	if err != nil {
		return schema.PaymentMethodRead{}, err
	}
	return schema.NewPaymentMethodRead(method), nil
}

func (s *PaymentMethodService) List(ctx context.Context) ([]schema.PaymentMethodRead, error) {
	var out []schema.PaymentMethodRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		methods, err := repos.PaymentMethods.List()
		if err != nil {
			return err
		}
		out = make([]schema.PaymentMethodRead, 0, len(methods))
		for i := range methods {
			out = append(out, schema.NewPaymentMethodRead(&methods[i]))
		}
		return nil
	})
	return out, err
}

type PictureService struct {
	server *server.Server
}

func NewPictureService(s *server.Server) *PictureService {
	return &PictureService{server: s}
}

func (s *PictureService) Create(ctx context.Context, in schema.PictureCreate) (schema.PictureRead, error) {
	if err := validation.Validate(in); err != nil {
		return schema.PictureRead{}, err
	}

	picture := in.ToModel()
	err := inTransaction(ctx, s.server, func(repos *repository.Repositories) error {
		return repos.Pictures.Create(picture)
	})
	if err != nil {
		return schema.PictureRead{}, err
	}
	return schema.NewPictureRead(picture), nil
}

func (s *PictureService) Get(ctx context.Context, id uint) (schema.PictureRead, error) {
	var out schema.PictureRead
	err := read(ctx, s.server, func(repos *repository.Repositories) error {
		p, err := repos.Pictures.GetByID(id)
		if err != nil {
			return err
		}
		out = schema.NewPictureRead(p)
		return nil
	})
	return out, err
}
