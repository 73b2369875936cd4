package models

// Theme represents the UI theme preference persisted for a user.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Settings holds a user's feature toggles and theme. One row per user.
// Disabling a system hides its surface and removes its figures from every
// aggregate the engine computes, not just from the UI.
type Settings struct {
	Base
	UserID string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Theme  Theme  `gorm:"not null;default:'system'" json:"theme"`

	IsFarmerSystemEnabled               bool `gorm:"default:true" json:"is_farmer_system_enabled"`
	IsSupplierSystemEnabled             bool `gorm:"default:true" json:"is_supplier_system_enabled"`
	IsAgriculturalProgramsSystemEnabled bool `gorm:"default:true" json:"is_agricultural_programs_system_enabled"`
	IsTreasurySystemEnabled             bool `gorm:"default:true" json:"is_treasury_system_enabled"`
	IsAdvancesSystemEnabled             bool `gorm:"default:true" json:"is_advances_system_enabled"`

	ExpenseCategories []ExpenseCategory `gorm:"foreignKey:SettingsID" json:"expense_categories,omitempty"`
}

// ExpenseCategory is a configurable expense category. Foundational categories
// (seed purchases and the like) are excluded from treasury-balance deduction
// because they are treated as sunk capital rather than operating cash flow.
type ExpenseCategory struct {
	Base
	SettingsID     string `gorm:"type:uuid;not null;index" json:"settings_id"`
	Name           string `gorm:"not null" json:"name"`
	IsFoundational bool   `gorm:"default:false" json:"is_foundational"`
	Position       int    `gorm:"not null;default:0" json:"position"`
}
