package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
)

// defaultExpenseCategories seeds a new settings record. Foundational
// categories are sunk capital and stay out of the treasury deductions.
var defaultExpenseCategories = []models.ExpenseCategory{
	{Name: "seeds", IsFoundational: true, Position: 0},
	{Name: "infrastructure", IsFoundational: true, Position: 1},
	{Name: "fertilizer", Position: 2},
	{Name: "pesticides", Position: 3},
	{Name: "labor", Position: 4},
	{Name: "water", Position: 5},
	{Name: "electricity", Position: 6},
	{Name: "maintenance", Position: 7},
	{Name: "other", Position: 8},
}

// settingsService handles settings and expense-category business logic.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the user's settings, creating the record with defaults
// on first access.
func (s *settingsService) GetSettings(userID string) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Preload("ExpenseCategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Copy the defaults so GORM's generated IDs never leak into the shared slice.
	categories := make([]models.ExpenseCategory, len(defaultExpenseCategories))
	copy(categories, defaultExpenseCategories)

	settings = models.Settings{
		UserID:                              userID,
		Theme:                               models.ThemeSystem,
		IsFarmerSystemEnabled:               true,
		IsSupplierSystemEnabled:             true,
		IsAgriculturalProgramsSystemEnabled: true,
		IsTreasurySystemEnabled:             true,
		IsAdvancesSystemEnabled:             true,
		ExpenseCategories:                   categories,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateSettings applies the provided settings fields
func (s *settingsService) UpdateSettings(userID string, update SettingsUpdate) (*models.Settings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Theme != nil {
		updates["theme"] = *update.Theme
	}
	if update.IsFarmerSystemEnabled != nil {
		updates["is_farmer_system_enabled"] = *update.IsFarmerSystemEnabled
	}
	if update.IsSupplierSystemEnabled != nil {
		updates["is_supplier_system_enabled"] = *update.IsSupplierSystemEnabled
	}
	if update.IsAgriculturalProgramsSystemEnabled != nil {
		updates["is_agricultural_programs_system_enabled"] = *update.IsAgriculturalProgramsSystemEnabled
	}
	if update.IsTreasurySystemEnabled != nil {
		updates["is_treasury_system_enabled"] = *update.IsTreasurySystemEnabled
	}
	if update.IsAdvancesSystemEnabled != nil {
		updates["is_advances_system_enabled"] = *update.IsAdvancesSystemEnabled
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetSettings(userID)
}

// AddExpenseCategory appends a new expense category to the user's list
func (s *settingsService) AddExpenseCategory(userID, name string, isFoundational bool) (*models.ExpenseCategory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	maxPosition := -1
	for _, c := range settings.ExpenseCategories {
		if c.Name == name {
			return nil, apperrors.ErrDuplicateCategory
		}
		if c.Position > maxPosition {
			maxPosition = c.Position
		}
	}

	category := &models.ExpenseCategory{
		SettingsID:     settings.ID,
		Name:           name,
		IsFoundational: isFoundational,
		Position:       maxPosition + 1,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// getExpenseCategory resolves a category by id within the user's settings.
func (s *settingsService) getExpenseCategory(userID, categoryID string) (*models.ExpenseCategory, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	var category models.ExpenseCategory
	if err := s.db.Where("id = ? AND settings_id = ?", categoryID, settings.ID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateExpenseCategory renames a category or changes its foundational flag.
// Renaming does not rewrite historical transactions; their category strings
// keep the old name.
func (s *settingsService) UpdateExpenseCategory(userID, categoryID, name string, isFoundational *bool) (*models.ExpenseCategory, error) {
	category, err := s.getExpenseCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" && name != category.Name {
		var count int64
		if err := s.db.Model(&models.ExpenseCategory{}).
			Where("settings_id = ? AND name = ?", category.SettingsID, name).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name"] = name
	}
	if isFoundational != nil {
		updates["is_foundational"] = *isFoundational
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteExpenseCategory removes a category. A category still used by
// expense transactions cannot be deleted.
func (s *settingsService) DeleteExpenseCategory(userID, categoryID string) error {
	category, err := s.getExpenseCategory(userID, categoryID)
	if err != nil {
		return err
	}

	var refCount int64
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND category = ?", userID, models.TransactionTypeExpense, category.Name).
		Count(&refCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ReorderExpenseCategories rewrites the positions of the user's categories.
// The id list must cover exactly the existing categories.
func (s *settingsService) ReorderExpenseCategories(userID string, orderedIDs []string) error {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return err
	}

	if len(orderedIDs) != len(settings.ExpenseCategories) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "order must list every category exactly once")
	}
	known := make(map[string]bool, len(settings.ExpenseCategories))
	for _, c := range settings.ExpenseCategories {
		known[c.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] || seen[id] {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "order must list every category exactly once")
		}
		seen[id] = true
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			if err := tx.Model(&models.ExpenseCategory{}).
				Where("id = ? AND settings_id = ?", id, settings.ID).
				Update("position", position).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}
