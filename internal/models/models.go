// Package models declares the persistent entity layer: tables, columns,
// keys, foreign keys and uniqueness constraints, expressed as GORM structs.
//
// Storage enforces primary keys, foreign keys, NOT NULL, uniqueness of
// users.uuid, currencies.name and payment_methods.name, the composite key of
// order_payment_methods and the closed set of order actions. Amount
// positivity is not enforced here; see internal/schema.
package models

import "gorm.io/gorm"

// OrderPreloads names the relations loaded whenever an Order is fetched.
var OrderPreloads = []string{"Owner", "Currency", "PaymentMethods"}

// All returns every model in dependency order, for schema bootstrap.
// The order_payment_methods join table is migrated through Order.
func All() []interface{} {
	return []interface{}{
		&Picture{},
		&Currency{},
		&User{},
		&PaymentMethod{},
		&Order{},
	}
}

// SetupJoinTables registers OrderPaymentMethod as the join model of
// Order.PaymentMethods. It must run before migrating or querying orders.
func SetupJoinTables(db *gorm.DB) error {
	return db.SetupJoinTable(&Order{}, "PaymentMethods", &OrderPaymentMethod{})
}

// WithOrderRelations eager-loads the owner and currency through joins and
// the payment methods through a second query.
func WithOrderRelations(db *gorm.DB) *gorm.DB {
	return db.
		Joins("Owner").
		Joins("Currency").
		Preload("PaymentMethods", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("payment_methods.id")
		})
}
