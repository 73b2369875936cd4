package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// cycleService handles crop-cycle-related business logic.
type cycleService struct {
	db                *gorm.DB
	greenhouseService GreenhouseServicer
}

// NewCropCycleService creates a new CropCycleServicer.
func NewCropCycleService(db *gorm.DB, greenhouseService GreenhouseServicer) CropCycleServicer {
	return &cycleService{
		db:                db,
		greenhouseService: greenhouseService,
	}
}

// validateFarmerAssignment enforces that a farmer reference and a share
// percentage are always set together, the farmer exists and belongs to the
// user, and the percentage is within 0-100.
func (s *cycleService) validateFarmerAssignment(userID string, farmerID *string, sharePercentage *float64) error {
	if farmerID == nil && sharePercentage == nil {
		return nil
	}
	if farmerID == nil || *farmerID == "" {
		return apperrors.ErrFarmerShareOrphan
	}
	if sharePercentage == nil {
		return apperrors.ErrFarmerShareMissing
	}
	if *sharePercentage < 0 || *sharePercentage > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "share percentage must be between 0 and 100")
	}

	var count int64
	if err := s.db.Model(&models.Farmer{}).Where("id = ? AND user_id = ?", *farmerID, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrFarmerNotFound
	}
	return nil
}

// CreateCropCycle creates a new crop cycle in a greenhouse
func (s *cycleService) CreateCropCycle(
	userID string,
	greenhouseID string,
	name string,
	startDate time.Time,
	seedType string,
	plantCount int,
	farmerID *string,
	sharePercentage *float64,
) (*models.CropCycle, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cycle name is required")
	}
	if plantCount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "plant count cannot be negative")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	// Verify the greenhouse exists and belongs to the user
	if _, err := s.greenhouseService.GetGreenhouseByID(userID, greenhouseID); err != nil {
		return nil, err
	}

	if err := s.validateFarmerAssignment(userID, farmerID, sharePercentage); err != nil {
		return nil, err
	}

	cycle := &models.CropCycle{
		UserID:                userID,
		GreenhouseID:          greenhouseID,
		Name:                  name,
		StartDate:             startDate,
		Status:                models.CropCycleStatusActive,
		SeedType:              seedType,
		PlantCount:            plantCount,
		FarmerID:              farmerID,
		FarmerSharePercentage: sharePercentage,
	}

	if err := s.db.Create(cycle).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return cycle, nil
}

// GetUserCropCycles retrieves a paginated list of cycles, optionally filtered by status.
func (s *cycleService) GetUserCropCycles(userID string, page pagination.PageRequest, status *models.CropCycleStatus) (*pagination.PageResponse[models.CropCycle], error) {
	page.Defaults()

	base := s.db.Model(&models.CropCycle{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cycles []models.CropCycle
	if err := base.Scopes(pagination.Paginate(page)).Order("start_date DESC").Find(&cycles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(cycles, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCropCycleByID retrieves a crop cycle by ID for a specific user
func (s *cycleService) GetCropCycleByID(userID, cycleID string) (*models.CropCycle, error) {
	var cycle models.CropCycle
	if err := s.db.Where("id = ? AND user_id = ?", cycleID, userID).First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCropCycleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cycle, nil
}

// UpdateCropCycle updates an existing crop cycle
func (s *cycleService) UpdateCropCycle(userID, cycleID string, update CropCycleUpdate) (*models.CropCycle, error) {
	cycle, err := s.GetCropCycleByID(userID, cycleID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != "" {
		updates["name"] = update.Name
	}
	if update.SeedType != "" {
		updates["seed_type"] = update.SeedType
	}
	if update.StartDate != nil {
		updates["start_date"] = *update.StartDate
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.PlantCount != nil {
		if *update.PlantCount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "plant count cannot be negative")
		}
		updates["plant_count"] = *update.PlantCount
	}
	if update.ProductionStartDate != nil {
		updates["production_start_date"] = *update.ProductionStartDate
	}

	switch {
	case update.ClearFarmer:
		updates["farmer_id"] = nil
		updates["farmer_share_percentage"] = nil
	case update.FarmerID != nil || update.FarmerSharePercentage != nil:
		if err := s.validateFarmerAssignment(userID, update.FarmerID, update.FarmerSharePercentage); err != nil {
			return nil, err
		}
		updates["farmer_id"] = *update.FarmerID
		updates["farmer_share_percentage"] = *update.FarmerSharePercentage
	}

	if len(updates) > 0 {
		if err := s.db.Model(cycle).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return cycle, nil
}

// DeleteCropCycle soft-deletes a crop cycle and its dependent records. The
// transactions, withdrawals and programs of a deleted cycle would otherwise
// dangle and pollute the aggregates.
func (s *cycleService) DeleteCropCycle(userID, cycleID string) error {
	cycle, err := s.GetCropCycleByID(userID, cycleID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("crop_cycle_id = ?", cycleID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("crop_cycle_id = ?", cycleID).Delete(&models.FarmerWithdrawal{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("crop_cycle_id = ?", cycleID).Delete(&models.FertilizationProgram{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(cycle).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
