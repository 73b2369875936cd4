package services

import (
	"gorm.io/gorm"

	"mashtal/internal/engine"
	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
)

// backupService exports and restores a user's complete data set.
type backupService struct {
	db              *gorm.DB
	settingsService SettingsServicer
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(db *gorm.DB, settingsService SettingsServicer) BackupServicer {
	return &backupService{
		db:              db,
		settingsService: settingsService,
	}
}

// Export returns every collection of the user as one snapshot payload.
func (s *backupService) Export(userID string) (*engine.Snapshot, error) {
	settings, err := s.settingsService.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	snapshot := &engine.Snapshot{Settings: *settings}

	dests := []interface{}{
		&snapshot.Greenhouses,
		&snapshot.CropCycles,
		&snapshot.Transactions,
		&snapshot.Farmers,
		&snapshot.FarmerWithdrawals,
		&snapshot.Suppliers,
		&snapshot.SupplierPayments,
		&snapshot.FertilizationPrograms,
		&snapshot.Advances,
	}
	for _, dest := range dests {
		if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(dest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return snapshot, nil
}

// Import replaces the user's entire data set with the snapshot. The restore
// runs in one transaction: either everything is replaced or nothing is.
// Empty collections in the payload simply clear the corresponding records.
func (s *backupService) Import(userID string, snapshot *engine.Snapshot) error {
	if snapshot == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "backup payload is required")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Hard-delete the user's records so restored IDs cannot collide
		// with soft-deleted rows.
		wipe := []interface{}{
			&models.Transaction{},
			&models.FarmerWithdrawal{},
			&models.SupplierPayment{},
			&models.FertilizationProgram{},
			&models.Advance{},
			&models.CropCycle{},
			&models.Greenhouse{},
			&models.Farmer{},
			&models.Supplier{},
		}
		for _, model := range wipe {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		var oldSettings models.Settings
		if err := tx.Where("user_id = ?", userID).First(&oldSettings).Error; err == nil {
			if err := tx.Unscoped().Where("settings_id = ?", oldSettings.ID).Delete(&models.ExpenseCategory{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := tx.Unscoped().Delete(&oldSettings).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		settings := snapshot.Settings
		settings.ID = ""
		settings.UserID = userID
		for i := range settings.ExpenseCategories {
			settings.ExpenseCategories[i].ID = ""
			settings.ExpenseCategories[i].SettingsID = ""
		}
		if err := tx.Create(&settings).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for i := range snapshot.Greenhouses {
			snapshot.Greenhouses[i].UserID = userID
		}
		for i := range snapshot.CropCycles {
			snapshot.CropCycles[i].UserID = userID
		}
		for i := range snapshot.Transactions {
			snapshot.Transactions[i].UserID = userID
		}
		for i := range snapshot.Farmers {
			snapshot.Farmers[i].UserID = userID
		}
		for i := range snapshot.FarmerWithdrawals {
			snapshot.FarmerWithdrawals[i].UserID = userID
		}
		for i := range snapshot.Suppliers {
			snapshot.Suppliers[i].UserID = userID
		}
		for i := range snapshot.SupplierPayments {
			snapshot.SupplierPayments[i].UserID = userID
		}
		for i := range snapshot.FertilizationPrograms {
			snapshot.FertilizationPrograms[i].UserID = userID
		}
		for i := range snapshot.Advances {
			snapshot.Advances[i].UserID = userID
		}

		// Parents before children so restored records always reference
		// rows that already exist.
		if err := createAll(tx, snapshot.Greenhouses); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.Farmers); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.Suppliers); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.CropCycles); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.FertilizationPrograms); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.Transactions); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.FarmerWithdrawals); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.SupplierPayments); err != nil {
			return err
		}
		if err := createAll(tx, snapshot.Advances); err != nil {
			return err
		}
		return nil
	})
}

// createAll inserts a collection row by row, skipping empty collections.
func createAll[T any](tx *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	if err := tx.Create(&records).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
