package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeRevenue TransactionType = "revenue"
	TransactionTypeExpense TransactionType = "expense"
)

// PriceItem is one quantity/price line of a revenue invoice.
type PriceItem struct {
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Transaction represents a revenue invoice or an expense receipt attached to
// a crop cycle. Revenue transactions may carry price items, in which case the
// amount equals the item total minus any discount. Expense transactions may
// reference a supplier (credit purchases) and a fertilization program.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CropCycleID string          `gorm:"type:uuid;not null;index" json:"crop_cycle_id"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `json:"description"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    string          `gorm:"not null" json:"category"`
	Amount      float64         `gorm:"type:numeric;not null" json:"amount"`

	Quantity   *float64    `gorm:"type:numeric" json:"quantity,omitempty"`
	PriceItems []PriceItem `gorm:"serializer:json" json:"price_items,omitempty"`
	Discount   *float64    `gorm:"type:numeric" json:"discount,omitempty"`

	SupplierID             *string `gorm:"type:uuid" json:"supplier_id,omitempty"`
	FertilizationProgramID *string `gorm:"type:uuid" json:"fertilization_program_id,omitempty"`

	// Relationships
	CropCycle CropCycle `gorm:"foreignKey:CropCycleID" json:"crop_cycle,omitempty"`
	Supplier  *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}
