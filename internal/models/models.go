// Package models holds the gorm records persisted by the invoice builder.
package models

import (
	"github.com/google/uuid"
)

// SingletonID is the primary key of the one-row settings tables.
const SingletonID uint = 1

// All returns every persisted model in migration order.
func All() []any {
	return []any{
		&Invoice{},
		&Client{},
		&BusinessSettings{},
		&InvoiceSettings{},
		&TaxPreset{},
		&PaymentSettings{},
	}
}

func newID() string { return uuid.NewString() }
