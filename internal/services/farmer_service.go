package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// farmerService handles farmer and withdrawal business logic.
type farmerService struct {
	db           *gorm.DB
	cycleService CropCycleServicer
}

// NewFarmerService creates a new FarmerServicer.
func NewFarmerService(db *gorm.DB, cycleService CropCycleServicer) FarmerServicer {
	return &farmerService{
		db:           db,
		cycleService: cycleService,
	}
}

// CreateFarmer creates a new farmer
func (s *farmerService) CreateFarmer(userID, name string) (*models.Farmer, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "farmer name is required")
	}

	farmer := &models.Farmer{
		UserID: userID,
		Name:   name,
	}

	if err := s.db.Create(farmer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return farmer, nil
}

// GetUserFarmers retrieves a paginated list of farmers for a user.
func (s *farmerService) GetUserFarmers(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Farmer], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Farmer{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var farmers []models.Farmer
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&farmers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(farmers, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetFarmerByID retrieves a farmer by ID for a specific user
func (s *farmerService) GetFarmerByID(userID, farmerID string) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := s.db.Where("id = ? AND user_id = ?", farmerID, userID).First(&farmer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFarmerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &farmer, nil
}

// UpdateFarmer renames a farmer
func (s *farmerService) UpdateFarmer(userID, farmerID, name string) (*models.Farmer, error) {
	farmer, err := s.GetFarmerByID(userID, farmerID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if err := s.db.Model(farmer).Update("name", name).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return farmer, nil
}

// DeleteFarmer soft-deletes a farmer. A farmer still assigned to a crop
// cycle cannot be deleted.
func (s *farmerService) DeleteFarmer(userID, farmerID string) error {
	farmer, err := s.GetFarmerByID(userID, farmerID)
	if err != nil {
		return err
	}

	var cycleCount int64
	if err := s.db.Model(&models.CropCycle{}).Where("farmer_id = ?", farmerID).Count(&cycleCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if cycleCount > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "farmer is still assigned to a crop cycle")
	}

	if err := s.db.Delete(farmer).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateWithdrawal records a farmer withdrawal against a crop cycle
func (s *farmerService) CreateWithdrawal(userID, cycleID string, date time.Time, amount float64, description string) (*models.FarmerWithdrawal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "withdrawal amount must be greater than zero")
	}

	// The cycle must exist, belong to the user, and have an assigned farmer.
	cycle, err := s.cycleService.GetCropCycleByID(userID, cycleID)
	if err != nil {
		return nil, err
	}
	if !cycle.HasFarmer() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cycle has no assigned farmer")
	}

	if date.IsZero() {
		date = time.Now()
	}

	withdrawal := &models.FarmerWithdrawal{
		UserID:      userID,
		CropCycleID: cycleID,
		Date:        date,
		Amount:      amount,
		Description: description,
	}

	if err := s.db.Create(withdrawal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return withdrawal, nil
}

// GetCycleWithdrawals retrieves a paginated list of withdrawals on one cycle, newest first.
func (s *farmerService) GetCycleWithdrawals(userID, cycleID string, page pagination.PageRequest) (*pagination.PageResponse[models.FarmerWithdrawal], error) {
	if _, err := s.cycleService.GetCropCycleByID(userID, cycleID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.FarmerWithdrawal{}).Where("user_id = ? AND crop_cycle_id = ?", userID, cycleID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var withdrawals []models.FarmerWithdrawal
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&withdrawals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(withdrawals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteWithdrawal soft-deletes a withdrawal
func (s *farmerService) DeleteWithdrawal(userID, withdrawalID string) error {
	var withdrawal models.FarmerWithdrawal
	if err := s.db.Where("id = ? AND user_id = ?", withdrawalID, userID).First(&withdrawal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrWithdrawalNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&withdrawal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
