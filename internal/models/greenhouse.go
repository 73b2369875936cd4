package models

import "time"

// Greenhouse represents a physical greenhouse with a one-off capital cost.
// The initial cost is treated as sunk capital: it feeds lifetime profit and
// ROI figures but never the per-cycle treasury.
type Greenhouse struct {
	Base
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	CreationDate time.Time `gorm:"not null" json:"creation_date"`
	InitialCost  float64   `gorm:"type:numeric;not null;default:0" json:"initial_cost"`

	// Relationships
	CropCycles []CropCycle `gorm:"foreignKey:GreenhouseID" json:"crop_cycles,omitempty"`
}
