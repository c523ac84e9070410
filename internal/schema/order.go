package schema

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Wallian169/p2p-tg-bot/internal/models"
	"github.com/Wallian169/p2p-tg-bot/internal/validation"
)

// MaxDescriptionLength caps Order.Description, in characters.
const MaxDescriptionLength = 200

// OrderCreate is the payload for placing an order. PaymentMethodIDs are
// attached after the order row is inserted.
type OrderCreate struct {
	OwnerID          uint               `json:"owner_id" validate:"required"`
	CurrencyID       uint               `json:"currency_id" validate:"required"`
	Action           models.OrderAction `json:"action" validate:"required,oneof=BUY SELL"`
	Amount           decimal.Decimal    `json:"amount" validate:"decimal_gt0,decimal_amount"`
	Description      *string            `json:"description" validate:"omitempty,max=200"`
	PaymentMethodIDs []uint             `json:"payment_method_ids" validate:"omitempty,unique,dive,required"`
}

func (o OrderCreate) Validate() error {
	return validation.Struct(o)
}

func (o OrderCreate) ToModel() *models.Order {
	return &models.Order{
		OwnerID:     o.OwnerID,
		CurrencyID:  o.CurrencyID,
		Action:      o.Action,
		Amount:      o.Amount,
		Description: o.Description,
	}
}

// OrderUpdate changes any subset of the mutable order fields. The owner
// and creation time never change.
type OrderUpdate struct {
	Action      Optional[models.OrderAction] `json:"action"`
	CurrencyID  Optional[uint]               `json:"currency_id"`
	Amount      Optional[decimal.Decimal]    `json:"amount"`
	Description Optional[*string]            `json:"description"`
}

// Validate applies the create rules to every field that is present.
func (o OrderUpdate) Validate() error {
	var errs validation.CustomValidationErrors

	if v, ok := o.Action.Value(); ok {
		errs = append(errs, validation.VarErrors("action", string(v), "required,oneof=BUY SELL")...)
	}
	if v, ok := o.CurrencyID.Value(); ok {
		errs = append(errs, validation.VarErrors("currency_id", v, "required")...)
	}
	if v, ok := o.Amount.Value(); ok {
		errs = append(errs, validation.VarErrors("amount", v, "decimal_gt0,decimal_amount")...)
	}
	if v, ok := o.Description.Value(); ok && v != nil {
		errs = append(errs, validation.VarErrors("description", *v, fmt.Sprintf("max=%d", MaxDescriptionLength))...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Changes returns the columns to update. It is empty when no field is
// present.
func (o OrderUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if v, ok := o.Action.Value(); ok {
		changes["action"] = v
	}
	if v, ok := o.CurrencyID.Value(); ok {
		changes["currency_id"] = v
	}
	if v, ok := o.Amount.Value(); ok {
		changes["amount"] = v
	}
	if v, ok := o.Description.Value(); ok {
		changes["description"] = v
	}
	return changes
}

// OrderRead is the full order representation with its owner, currency and
// payment methods embedded.
type OrderRead struct {
	ID             uint                `json:"id"`
	OwnerID        uint                `json:"owner_id"`
	Owner          UserRead            `json:"owner"`
	Action         models.OrderAction  `json:"action"`
	CurrencyID     uint                `json:"currency_id"`
	Currency       CurrencyRead        `json:"currency"`
	Amount         decimal.Decimal     `json:"amount"`
	Description    *string             `json:"description"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	PaymentMethods []PaymentMethodRead `json:"payment_methods"`
}

// NewOrderRead maps a persisted order. The owner and currency must have
// been loaded with it (see models.WithOrderRelations).
func NewOrderRead(o *models.Order) (OrderRead, error) {
	if o.Owner.ID == 0 || o.Owner.ID != o.OwnerID {
		return OrderRead{}, fmt.Errorf("order %d owner: %w", o.ID, ErrRelationNotLoaded)
	}
	if o.Currency.ID == 0 || o.Currency.ID != o.CurrencyID {
		return OrderRead{}, fmt.Errorf("order %d currency: %w", o.ID, ErrRelationNotLoaded)
	}

	methods := make([]PaymentMethodRead, 0, len(o.PaymentMethods))
	for i := range o.PaymentMethods {
		methods = append(methods, NewPaymentMethodRead(&o.PaymentMethods[i]))
	}

	return OrderRead{
		ID:             o.ID,
		OwnerID:        o.OwnerID,
		Owner:          NewUserRead(&o.Owner),
		Action:         o.Action,
		CurrencyID:     o.CurrencyID,
		Currency:       NewCurrencyRead(&o.Currency),
		Amount:         o.Amount,
		Description:    o.Description,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		PaymentMethods: methods,
	}, nil
}
