package models

import (
	"time"

	"mashtal/internal/uuid"

	"gorm.io/gorm"
)

// Base carries the columns shared by every table: a UUIDv7 primary key,
// timestamps and a soft-delete marker.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate fills the id for new records. Records restored from a backup
// arrive with their original id already set and keep it.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
