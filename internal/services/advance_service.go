package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// advanceService handles treasury advance business logic.
type advanceService struct {
	db *gorm.DB
}

// NewAdvanceService creates a new AdvanceServicer.
func NewAdvanceService(db *gorm.DB) AdvanceServicer {
	return &advanceService{db: db}
}

// CreateAdvance records an advance taken from the treasury
func (s *advanceService) CreateAdvance(userID string, date time.Time, amount float64, description string) (*models.Advance, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "advance amount must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now()
	}

	advance := &models.Advance{
		UserID:      userID,
		Date:        date,
		Amount:      amount,
		Description: description,
	}

	if err := s.db.Create(advance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return advance, nil
}

// GetUserAdvances retrieves a paginated list of advances for a user, newest first.
func (s *advanceService) GetUserAdvances(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Advance], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Advance{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var advances []models.Advance
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&advances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(advances, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteAdvance soft-deletes an advance
func (s *advanceService) DeleteAdvance(userID, advanceID string) error {
	var advance models.Advance
	if err := s.db.Where("id = ? AND user_id = ?", advanceID, userID).First(&advance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAdvanceNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&advance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
