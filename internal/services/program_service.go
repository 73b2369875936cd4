package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// programService handles fertilization-program business logic.
type programService struct {
	db           *gorm.DB
	cycleService CropCycleServicer
}

// NewProgramService creates a new ProgramServicer.
func NewProgramService(db *gorm.DB, cycleService CropCycleServicer) ProgramServicer {
	return &programService{
		db:           db,
		cycleService: cycleService,
	}
}

// CreateProgram creates a new fertilization program on a crop cycle
func (s *programService) CreateProgram(userID, cycleID, name string, startDate, endDate time.Time) (*models.FertilizationProgram, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "program name is required")
	}
	if endDate.Before(startDate) {
		return nil, apperrors.ErrProgramDateOrder
	}

	if _, err := s.cycleService.GetCropCycleByID(userID, cycleID); err != nil {
		return nil, err
	}

	program := &models.FertilizationProgram{
		UserID:      userID,
		CropCycleID: cycleID,
		Name:        name,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := s.db.Create(program).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return program, nil
}

// GetCyclePrograms retrieves a paginated list of programs on one cycle.
func (s *programService) GetCyclePrograms(userID, cycleID string, page pagination.PageRequest) (*pagination.PageResponse[models.FertilizationProgram], error) {
	if _, err := s.cycleService.GetCropCycleByID(userID, cycleID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.FertilizationProgram{}).Where("user_id = ? AND crop_cycle_id = ?", userID, cycleID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var programs []models.FertilizationProgram
	if err := base.Scopes(pagination.Paginate(page)).Order("start_date DESC").Find(&programs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(programs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProgramByID retrieves a program by ID for a specific user
func (s *programService) GetProgramByID(userID, programID string) (*models.FertilizationProgram, error) {
	var program models.FertilizationProgram
	if err := s.db.Where("id = ? AND user_id = ?", programID, userID).First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &program, nil
}

// UpdateProgram updates an existing program. The date order is re-checked
// against the resulting pair of dates.
func (s *programService) UpdateProgram(userID, programID, name string, startDate, endDate *time.Time) (*models.FertilizationProgram, error) {
	program, err := s.GetProgramByID(userID, programID)
	if err != nil {
		return nil, err
	}

	newStart := program.StartDate
	newEnd := program.EndDate
	if startDate != nil {
		newStart = *startDate
	}
	if endDate != nil {
		newEnd = *endDate
	}
	if newEnd.Before(newStart) {
		return nil, apperrors.ErrProgramDateOrder
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if startDate != nil {
		updates["start_date"] = *startDate
	}
	if endDate != nil {
		updates["end_date"] = *endDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(program).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return program, nil
}

// DeleteProgram soft-deletes a program. Transactions keep their program
// reference for historical records; the aggregates ignore unresolvable ones.
func (s *programService) DeleteProgram(userID, programID string) error {
	program, err := s.GetProgramByID(userID, programID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(program).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
