package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Greenhouses []Greenhouse `gorm:"foreignKey:UserID" json:"greenhouses,omitempty"`
	CropCycles  []CropCycle  `gorm:"foreignKey:UserID" json:"crop_cycles,omitempty"`
	Farmers     []Farmer     `gorm:"foreignKey:UserID" json:"farmers,omitempty"`
	Suppliers   []Supplier   `gorm:"foreignKey:UserID" json:"suppliers,omitempty"`
}
