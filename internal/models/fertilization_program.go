package models

import "time"

// FertilizationProgram represents a cultivation sub-period of a crop cycle
// used to attribute expenses and revenue to a feeding schedule.
type FertilizationProgram struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CropCycleID string    `gorm:"type:uuid;not null;index" json:"crop_cycle_id"`
	Name        string    `gorm:"not null" json:"name"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`

	// Relationships
	CropCycle CropCycle `gorm:"foreignKey:CropCycleID" json:"crop_cycle,omitempty"`
}
