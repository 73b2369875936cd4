package models

import "time"

// Advance represents a personal cash draw against the aggregate treasury.
// Advances are not tied to a crop cycle and are deducted only from the
// cross-cycle treasury view, never from a cycle fund.
type Advance struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Amount      float64   `gorm:"type:numeric;not null" json:"amount"`
	Description string    `json:"description"`
}
