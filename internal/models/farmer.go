package models

import "time"

// Farmer represents a farmer who works crop cycles for a share of revenue.
type Farmer struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`

	// Relationships
	CropCycles []CropCycle `gorm:"foreignKey:FarmerID" json:"crop_cycles,omitempty"`
}

// FarmerWithdrawal represents cash drawn by a farmer against the share
// accrued on a specific crop cycle.
type FarmerWithdrawal struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CropCycleID string    `gorm:"type:uuid;not null;index" json:"crop_cycle_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Amount      float64   `gorm:"type:numeric;not null" json:"amount"`
	Description string    `json:"description"`

	// Relationships
	CropCycle CropCycle `gorm:"foreignKey:CropCycleID" json:"crop_cycle,omitempty"`
}
