package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Picture references a stored image asset. Other tables point at pictures
// by path only; there is no foreign key.
type Picture struct {
	ID   uint   `gorm:"primaryKey"`
	Path string `gorm:"size:255;not null"`
}

// Currency is a tradable currency. Icon is a picture path.
type Currency struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:100;not null;uniqueIndex:unique_currencies_name"`
	Symbol string `gorm:"size:10;not null"`
	Icon   *string
}

// User owns orders. UUID is the stable external identifier.
type User struct {
	ID       uint    `gorm:"primaryKey"`
	UUID     string  `gorm:"column:uuid;size:100;not null;uniqueIndex:unique_users_uuid"`
	Picture  *string `gorm:"column:picture"`
	Username string  `gorm:"size:32;not null"`
}

// BeforeCreate assigns a random UUID when none was supplied.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}

// PaymentMethod is a way of settling an order (bank transfer, cash, ...).
type PaymentMethod struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;uniqueIndex:unique_payment_methods_name"`
}
