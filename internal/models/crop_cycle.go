package models

import "time"

// CropCycleStatus represents the lifecycle state of a crop cycle
type CropCycleStatus string

const (
	CropCycleStatusActive   CropCycleStatus = "active"
	CropCycleStatusClosed   CropCycleStatus = "closed"
	CropCycleStatusArchived CropCycleStatus = "archived"
)

// CropCycle represents one planting-to-harvest cultivation period tracked
// independently for profit and loss.
//
// FarmerID and FarmerSharePercentage are set together or not at all; the
// service layer enforces that invariant on create and update.
type CropCycle struct {
	Base
	UserID              string          `gorm:"type:uuid;not null;index" json:"user_id"`
	GreenhouseID        string          `gorm:"type:uuid;not null;index" json:"greenhouse_id"`
	Name                string          `gorm:"not null" json:"name"`
	StartDate           time.Time       `gorm:"not null" json:"start_date"`
	Status              CropCycleStatus `gorm:"not null;default:'active'" json:"status"`
	SeedType            string          `json:"seed_type"`
	PlantCount          int             `gorm:"not null" json:"plant_count"`
	ProductionStartDate *time.Time      `json:"production_start_date,omitempty"`

	FarmerID              *string  `gorm:"type:uuid" json:"farmer_id,omitempty"`
	FarmerSharePercentage *float64 `gorm:"type:numeric" json:"farmer_share_percentage,omitempty"`

	// Relationships
	Greenhouse   Greenhouse    `gorm:"foreignKey:GreenhouseID" json:"greenhouse,omitempty"`
	Farmer       *Farmer       `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:CropCycleID" json:"transactions,omitempty"`
}

// HasFarmer reports whether the cycle has an assigned farmer with a share.
func (c *CropCycle) HasFarmer() bool {
	return c.FarmerID != nil && *c.FarmerID != "" && c.FarmerSharePercentage != nil
}
