package schema

import (
	"github.com/Wallian169/p2p-tg-bot/internal/models"
	"github.com/Wallian169/p2p-tg-bot/internal/validation"
)

// ---- Currency ----

type CurrencyCreate struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Symbol string  `json:"symbol" validate:"required,max=10"`
	Icon   *string `json:"icon" validate:"omitempty,max=255"`
}

func (c CurrencyCreate) Validate() error {
	return validation.Struct(c)
}

func (c CurrencyCreate) ToModel() *models.Currency {
	return &models.Currency{Name: c.Name, Symbol: c.Symbol, Icon: c.Icon}
}

type CurrencyUpdate struct {
	Name   Optional[string]  `json:"name"`
	Symbol Optional[string]  `json:"symbol"`
	Icon   Optional[*string] `json:"icon"`
}

func (c CurrencyUpdate) Validate() error {
	var errs validation.CustomValidationErrors
	if v, ok := c.Name.Value(); ok {
		errs = append(errs, validation.VarErrors("name", v, "required,max=100")...)
	}
	if v, ok := c.Symbol.Value(); ok {
		errs = append(errs, validation.VarErrors("symbol", v, "required,max=10")...)
	}
	if v, ok := c.Icon.Value(); ok && v != nil {
		errs = append(errs, validation.VarErrors("icon", *v, "max=255")...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Changes returns the columns to update, keyed by column name.
func (c CurrencyUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if v, ok := c.Name.Value(); ok {
		changes["name"] = v
	}
	if v, ok := c.Symbol.Value(); ok {
		changes["symbol"] = v
	}
	if v, ok := c.Icon.Value(); ok {
		changes["icon"] = v
	}
	return changes
}

type CurrencyRead struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Icon   *string `json:"icon"`
}

func NewCurrencyRead(c *models.Currency) CurrencyRead {
	return CurrencyRead{
		ID:     c.ID,
		Name:   c.Name,
		Symbol: c.Symbol,
		Icon:   c.Icon,
	}
}

// ---- User ----

// UserCreate registers a user. UUID is generated when left empty.
type UserCreate struct {
	UUID     string  `json:"uuid" validate:"omitempty,max=100"`
	Username string  `json:"username" validate:"required,max=32"`
	Picture  *string `json:"picture" validate:"omitempty,max=255"`
}

func (u UserCreate) Validate() error {
	return validation.Struct(u)
}

func (u UserCreate) ToModel() *models.User {
	return &models.User{UUID: u.UUID, Username: u.Username, Picture: u.Picture}
}

// UserUpdate cannot change the UUID; it is the stable external identifier.
type UserUpdate struct {
	Username Optional[string]  `json:"username"`
	Picture  Optional[*string] `json:"picture"`
}

func (u UserUpdate) Validate() error {
	var errs validation.CustomValidationErrors
	if v, ok := u.Username.Value(); ok {
		errs = append(errs, validation.VarErrors("username", v, "required,max=32")...)
	}
	if v, ok := u.Picture.Value(); ok && v != nil {
		errs = append(errs, validation.VarErrors("picture", *v, "max=255")...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (u UserUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if v, ok := u.Username.Value(); ok {
		changes["username"] = v
	}
	if v, ok := u.Picture.Value(); ok {
		changes["picture"] = v
	}
	return changes
}

type UserRead struct {
	ID       uint    `json:"id"`
	UUID     string  `json:"uuid"`
	Username string  `json:"username"`
	Picture  *string `json:"picture"`
}

func NewUserRead(u *models.User) UserRead {
	return UserRead{
		ID:       u.ID,
		UUID:     u.UUID,
		Username: u.Username,
		Picture:  u.Picture,
	}
}

// ---- PaymentMethod ----

type PaymentMethodCreate struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (p PaymentMethodCreate) Validate() error {
	return validation.Struct(p)
}

func (p PaymentMethodCreate) ToModel() *models.PaymentMethod {
	return &models.PaymentMethod{Name: p.Name}
}

type PaymentMethodUpdate struct {
	Name Optional[string] `json:"name"`
}

func (p PaymentMethodUpdate) Validate() error {
	if v, ok := p.Name.Value(); ok {
		if errs := validation.VarErrors("name", v, "required,max=100"); len(errs) > 0 {
			return errs
		}
	}
	return nil
}

func (p PaymentMethodUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if v, ok := p.Name.Value(); ok {
		changes["name"] = v
	}
	return changes
}

type PaymentMethodRead struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewPaymentMethodRead(p *models.PaymentMethod) PaymentMethodRead {
	return PaymentMethodRead{ID: p.ID, Name: p.Name}
}

// ---- Picture ----

type PictureCreate struct {
	Path string `json:"path" validate:"required,max=255"`
}

func (p PictureCreate) Validate() error {
	return validation.Struct(p)
}

func (p PictureCreate) ToModel() *models.Picture {
	return &models.Picture{Path: p.Path}
}

type PictureUpdate struct {
	Path Optional[string] `json:"path"`
}

func (p PictureUpdate) Validate() error {
	if v, ok := p.Path.Value(); ok {
		if errs := validation.VarErrors("path", v, "required,max=255"); len(errs) > 0 {
			return errs
		}
	}
	return nil
}

func (p PictureUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if v, ok := p.Path.Value(); ok {
		changes["path"] = v
	}
	return changes
}

type PictureRead struct {
	ID   uint   `json:"id"`
	Path string `json:"path"`
}

func NewPictureRead(p *models.Picture) PictureRead {
	return PictureRead{ID: p.ID, Path: p.Path}
}
