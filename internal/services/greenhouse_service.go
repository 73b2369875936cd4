package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// greenhouseService handles greenhouse-related business logic.
type greenhouseService struct {
	db *gorm.DB
}

// NewGreenhouseService creates a new GreenhouseServicer.
func NewGreenhouseService(db *gorm.DB) GreenhouseServicer {
	return &greenhouseService{db: db}
}

// CreateGreenhouse creates a new greenhouse
func (s *greenhouseService) CreateGreenhouse(userID, name string, creationDate time.Time, initialCost float64) (*models.Greenhouse, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "greenhouse name is required")
	}
	if initialCost < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial cost cannot be negative")
	}
	if creationDate.IsZero() {
		creationDate = time.Now()
	}

	greenhouse := &models.Greenhouse{
		UserID:       userID,
		Name:         name,
		CreationDate: creationDate,
		InitialCost:  initialCost,
	}

	if err := s.db.Create(greenhouse).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return greenhouse, nil
}

// GetUserGreenhouses retrieves a paginated list of greenhouses for a user.
func (s *greenhouseService) GetUserGreenhouses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Greenhouse], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Greenhouse{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var greenhouses []models.Greenhouse
	if err := base.Scopes(pagination.Paginate(page)).Order("creation_date DESC").Find(&greenhouses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(greenhouses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGreenhouseByID retrieves a greenhouse by ID for a specific user
func (s *greenhouseService) GetGreenhouseByID(userID, greenhouseID string) (*models.Greenhouse, error) {
	var greenhouse models.Greenhouse
	if err := s.db.Where("id = ? AND user_id = ?", greenhouseID, userID).First(&greenhouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGreenhouseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &greenhouse, nil
}

// UpdateGreenhouse updates an existing greenhouse
func (s *greenhouseService) UpdateGreenhouse(userID, greenhouseID, name string, creationDate *time.Time, initialCost *float64) (*models.Greenhouse, error) {
	greenhouse, err := s.GetGreenhouseByID(userID, greenhouseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if creationDate != nil {
		updates["creation_date"] = *creationDate
	}
	if initialCost != nil {
		if *initialCost < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial cost cannot be negative")
		}
		updates["initial_cost"] = *initialCost
	}

	if len(updates) > 0 {
		if err := s.db.Model(greenhouse).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return greenhouse, nil
}

// DeleteGreenhouse soft-deletes a greenhouse. A greenhouse that still has
// crop cycles cannot be deleted.
func (s *greenhouseService) DeleteGreenhouse(userID, greenhouseID string) error {
	greenhouse, err := s.GetGreenhouseByID(userID, greenhouseID)
	if err != nil {
		return err
	}

	var cycleCount int64
	if err := s.db.Model(&models.CropCycle{}).Where("greenhouse_id = ?", greenhouseID).Count(&cycleCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if cycleCount > 0 {
		return apperrors.ErrGreenhouseInUse
	}

	if err := s.db.Delete(greenhouse).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
