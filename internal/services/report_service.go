package services

import (
	"time"

	"gorm.io/gorm"

	"mashtal/internal/engine"
	apperrors "mashtal/internal/errors"
)

// reportService loads a user's records into an engine snapshot and computes
// the derived read models from it. Every report is a pure function of the
// snapshot, so one load serves any number of figures consistently.
type reportService struct {
	db              *gorm.DB
	settingsService SettingsServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, settingsService SettingsServicer) ReportServicer {
	return &reportService{
		db:              db,
		settingsService: settingsService,
	}
}

// loadSnapshot reads all of the user's collections in one pass.
func (s *reportService) loadSnapshot(userID string) (*engine.Snapshot, error) {
	settings, err := s.settingsService.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	snapshot := &engine.Snapshot{Settings: *settings}

	loads := []struct {
		dest interface{}
	}{
		{&snapshot.Greenhouses},
		{&snapshot.CropCycles},
		{&snapshot.Transactions},
		{&snapshot.Farmers},
		{&snapshot.FarmerWithdrawals},
		{&snapshot.Suppliers},
		{&snapshot.SupplierPayments},
		{&snapshot.FertilizationPrograms},
		{&snapshot.Advances},
	}
	for _, l := range loads {
		if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(l.dest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return snapshot, nil
}

// Dashboard computes the landing-page aggregates for a user.
func (s *reportService) Dashboard(userID string, now time.Time) (*engine.Dashboard, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	dashboard := snapshot.Dashboard(now)
	return &dashboard, nil
}

// Alerts evaluates the alert rules for a user.
func (s *reportService) Alerts(userID string, now time.Time) ([]engine.Alert, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	return snapshot.Alerts(now), nil
}

// CycleOverview computes the summary, metrics and treasury fund of one cycle.
func (s *reportService) CycleOverview(userID, cycleID string, now time.Time) (*CycleOverview, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	if !s.cycleExists(snapshot, cycleID) {
		return nil, apperrors.ErrCropCycleNotFound
	}

	return &CycleOverview{
		Summary:  snapshot.CycleSummary(cycleID),
		Metrics:  snapshot.CycleMetrics(cycleID, now),
		Treasury: snapshot.TreasuryDetail(cycleID),
	}, nil
}

// GreenhouseReport computes the lifetime report of one greenhouse.
func (s *reportService) GreenhouseReport(userID, greenhouseID string) (*engine.GreenhouseReport, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	for _, g := range snapshot.Greenhouses {
		if g.ID == greenhouseID {
			report := snapshot.GreenhouseReport(greenhouseID)
			return &report, nil
		}
	}
	return nil, apperrors.ErrGreenhouseNotFound
}

// FarmerAccounts computes every farmer's account. ErrForbidden when the
// farmer system is disabled.
func (s *reportService) FarmerAccounts(userID string) ([]engine.FarmerAccount, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	if !snapshot.Settings.IsFarmerSystemEnabled {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "the farmer system is disabled")
	}
	return snapshot.FarmerAccounts(), nil
}

// SupplierStatement computes the invoice/payment ledger of one supplier.
func (s *reportService) SupplierStatement(userID, supplierID string) (*engine.SupplierStatement, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	for _, sup := range snapshot.Suppliers {
		if sup.ID == supplierID {
			statement := snapshot.SupplierStatement(supplierID)
			return &statement, nil
		}
	}
	return nil, apperrors.ErrSupplierNotFound
}

// ProgramSummary computes the figures of one fertilization program.
func (s *reportService) ProgramSummary(userID, programID string) (*engine.ProgramSummary, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	for _, p := range snapshot.FertilizationPrograms {
		if p.ID == programID {
			summary := snapshot.ProgramSummary(programID)
			return &summary, nil
		}
	}
	return nil, apperrors.ErrProgramNotFound
}

// TreasuryOverview computes the aggregate treasury view.
func (s *reportService) TreasuryOverview(userID string) (*engine.TreasuryOverview, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	overview := snapshot.TreasuryOverview()
	return &overview, nil
}

// TreasuryDetail computes the fund breakdown of one cycle.
func (s *reportService) TreasuryDetail(userID, cycleID string) (*engine.TreasuryDetail, error) {
	snapshot, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	if !s.cycleExists(snapshot, cycleID) {
		return nil, apperrors.ErrCropCycleNotFound
	}
	detail := snapshot.TreasuryDetail(cycleID)
	return &detail, nil
}

func (s *reportService) cycleExists(snapshot *engine.Snapshot, cycleID string) bool {
	for _, c := range snapshot.CropCycles {
		if c.ID == cycleID {
			return true
		}
	}
	return false
}
