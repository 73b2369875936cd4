package models

import "time"

// Supplier represents a vendor that sells farm inputs on credit.
type Supplier struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
}

// SupplierPayment represents cash paid to a supplier, optionally linked to
// specific expense invoices it settles. Linking is deliberately permissive:
// a payment may reference invoices whose total exceeds its amount, and one
// invoice may be referenced by several payments.
type SupplierPayment struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	SupplierID  string    `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Amount      float64   `gorm:"type:numeric;not null" json:"amount"`
	Description string    `json:"description"`

	LinkedExpenseIDs []string `gorm:"serializer:json" json:"linked_expense_ids,omitempty"`

	// Relationships
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}
