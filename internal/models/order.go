package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderAction is the side of an order.
type OrderAction string

const (
	OrderActionBuy  OrderAction = "BUY"
	OrderActionSell OrderAction = "SELL"
)

// OrderActions lists every valid action.
var OrderActions = []OrderAction{OrderActionBuy, OrderActionSell}

// ParseOrderAction accepts exactly "BUY" or "SELL".
func ParseOrderAction(s string) (OrderAction, error) {
	a := OrderAction(s)
	if !a.Valid() {
		return "", fmt.Errorf("invalid order action %q", s)
	}
	return a, nil
}

func (a OrderAction) Valid() bool {
	switch a {
	case OrderActionBuy, OrderActionSell:
		return true
	default:
		return false
	}
}

func (a OrderAction) String() string {
	return string(a)
}

// Value refuses to write anything outside the closed set.
func (a OrderAction) Value() (driver.Value, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid order action %q", string(a))
	}
	return string(a), nil
}

func (a *OrderAction) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderAction", src)
	}

	parsed, err := ParseOrderAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Order is a buy or sell order placed by a user in one currency.
//
// CreatedAt is write-once. UpdatedAt is refreshed on every update, see
// repository.OrderRepository.Update.
type Order struct {
	ID          uint            `gorm:"primaryKey"`
	OwnerID     uint            `gorm:"not null;index"`
	Owner       User            `gorm:"foreignKey:OwnerID"`
	Action      OrderAction     `gorm:"type:varchar(4);not null;check:chk_orders_action,action IN ('BUY','SELL')"`
	CurrencyID  uint            `gorm:"not null;index"`
	Currency    Currency        `gorm:"foreignKey:CurrencyID"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Description *string         `gorm:"size:200"`
	CreatedAt   time.Time       `gorm:"<-:create;not null;autoCreateTime;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime;default:CURRENT_TIMESTAMP"`

	PaymentMethods []PaymentMethod `gorm:"many2many:order_payment_methods"`
}

// OrderPaymentMethod is the join row between an order and a payment
// method. The composite primary key forbids attaching a method twice.
type OrderPaymentMethod struct {
	OrderID         uint `gorm:"primaryKey;autoIncrement:false"`
	PaymentMethodID uint `gorm:"primaryKey;autoIncrement:false"`
}
