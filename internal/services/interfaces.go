package services

import (
	"time"

	"mashtal/internal/engine"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	TouchLastLogin(id string) error
}

// GreenhouseServicer defines the contract for greenhouse-related business logic.
type GreenhouseServicer interface {
	CreateGreenhouse(userID, name string, creationDate time.Time, initialCost float64) (*models.Greenhouse, error)
	GetUserGreenhouses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Greenhouse], error)
	GetGreenhouseByID(userID, greenhouseID string) (*models.Greenhouse, error)
	UpdateGreenhouse(userID, greenhouseID, name string, creationDate *time.Time, initialCost *float64) (*models.Greenhouse, error)
	DeleteGreenhouse(userID, greenhouseID string) error
}

// CropCycleUpdate holds the optional fields of a crop cycle update. Nil
// pointers leave the stored value untouched; the farmer fields are applied
// together so the farmer/share pairing stays consistent.
type CropCycleUpdate struct {
	Name                  string
	SeedType              string
	StartDate             *time.Time
	Status                *models.CropCycleStatus
	PlantCount            *int
	ProductionStartDate   *time.Time
	ClearFarmer           bool
	FarmerID              *string
	FarmerSharePercentage *float64
}

// CropCycleServicer defines the contract for crop-cycle-related business logic.
type CropCycleServicer interface {
	CreateCropCycle(userID, greenhouseID, name string, startDate time.Time, seedType string, plantCount int, farmerID *string, sharePercentage *float64) (*models.CropCycle, error)
	GetUserCropCycles(userID string, page pagination.PageRequest, status *models.CropCycleStatus) (*pagination.PageResponse[models.CropCycle], error)
	GetCropCycleByID(userID, cycleID string) (*models.CropCycle, error)
	UpdateCropCycle(userID, cycleID string, update CropCycleUpdate) (*models.CropCycle, error)
	DeleteCropCycle(userID, cycleID string) error
}

// TransactionInput holds the fields of a transaction create or update. When
// PriceItems is non-empty the amount is derived from it and Amount is ignored.
type TransactionInput struct {
	CropCycleID            string
	Date                   time.Time
	Description            string
	Type                   models.TransactionType
	Category               string
	Amount                 float64
	Quantity               *float64
	PriceItems             []models.PriceItem
	Discount               *float64
	SupplierID             *string
	FertilizationProgramID *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	GetCycleTransactions(userID, cycleID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// FarmerServicer defines the contract for farmer and withdrawal business logic.
type FarmerServicer interface {
	CreateFarmer(userID, name string) (*models.Farmer, error)
	GetUserFarmers(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Farmer], error)
	GetFarmerByID(userID, farmerID string) (*models.Farmer, error)
	UpdateFarmer(userID, farmerID, name string) (*models.Farmer, error)
	DeleteFarmer(userID, farmerID string) error
	CreateWithdrawal(userID, cycleID string, date time.Time, amount float64, description string) (*models.FarmerWithdrawal, error)
	GetCycleWithdrawals(userID, cycleID string, page pagination.PageRequest) (*pagination.PageResponse[models.FarmerWithdrawal], error)
	DeleteWithdrawal(userID, withdrawalID string) error
}

// SupplierServicer defines the contract for supplier and payment business logic.
type SupplierServicer interface {
	CreateSupplier(userID, name string) (*models.Supplier, error)
	GetUserSuppliers(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Supplier], error)
	GetSupplierByID(userID, supplierID string) (*models.Supplier, error)
	UpdateSupplier(userID, supplierID, name string) (*models.Supplier, error)
	DeleteSupplier(userID, supplierID string) error
	CreatePayment(userID, supplierID string, date time.Time, amount float64, description string, linkedExpenseIDs []string) (*models.SupplierPayment, error)
	GetSupplierPayments(userID, supplierID string, page pagination.PageRequest) (*pagination.PageResponse[models.SupplierPayment], error)
	DeletePayment(userID, paymentID string) error
}

// ProgramServicer defines the contract for fertilization-program business logic.
type ProgramServicer interface {
	CreateProgram(userID, cycleID, name string, startDate, endDate time.Time) (*models.FertilizationProgram, error)
	GetCyclePrograms(userID, cycleID string, page pagination.PageRequest) (*pagination.PageResponse[models.FertilizationProgram], error)
	GetProgramByID(userID, programID string) (*models.FertilizationProgram, error)
	UpdateProgram(userID, programID, name string, startDate, endDate *time.Time) (*models.FertilizationProgram, error)
	DeleteProgram(userID, programID string) error
}

// AdvanceServicer defines the contract for treasury advance business logic.
type AdvanceServicer interface {
	CreateAdvance(userID string, date time.Time, amount float64, description string) (*models.Advance, error)
	GetUserAdvances(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Advance], error)
	DeleteAdvance(userID, advanceID string) error
}

// SettingsUpdate holds the optional settings fields of an update. Nil
// pointers leave the stored value untouched.
type SettingsUpdate struct {
	Theme                               *models.Theme
	IsFarmerSystemEnabled               *bool
	IsSupplierSystemEnabled             *bool
	IsAgriculturalProgramsSystemEnabled *bool
	IsTreasurySystemEnabled             *bool
	IsAdvancesSystemEnabled             *bool
}

// SettingsServicer defines the contract for settings and expense-category
// business logic. Settings are created lazily with defaults on first access.
type SettingsServicer interface {
	GetSettings(userID string) (*models.Settings, error)
	UpdateSettings(userID string, update SettingsUpdate) (*models.Settings, error)
	AddExpenseCategory(userID, name string, isFoundational bool) (*models.ExpenseCategory, error)
	UpdateExpenseCategory(userID, categoryID, name string, isFoundational *bool) (*models.ExpenseCategory, error)
	DeleteExpenseCategory(userID, categoryID string) error
	ReorderExpenseCategories(userID string, orderedIDs []string) error
}

// CycleOverview pairs a cycle's financial summary with its production
// metrics and treasury fund.
type CycleOverview struct {
	Summary  engine.CycleSummary   `json:"summary"`
	Metrics  engine.CycleMetrics   `json:"metrics"`
	Treasury engine.TreasuryDetail `json:"treasury"`
}

// ReportServicer computes the derived read models. Implementations load the
// user's records into an engine snapshot and delegate to it.
type ReportServicer interface {
	Dashboard(userID string, now time.Time) (*engine.Dashboard, error)
	Alerts(userID string, now time.Time) ([]engine.Alert, error)
	CycleOverview(userID, cycleID string, now time.Time) (*CycleOverview, error)
	GreenhouseReport(userID, greenhouseID string) (*engine.GreenhouseReport, error)
	FarmerAccounts(userID string) ([]engine.FarmerAccount, error)
	SupplierStatement(userID, supplierID string) (*engine.SupplierStatement, error)
	ProgramSummary(userID, programID string) (*engine.ProgramSummary, error)
	TreasuryOverview(userID string) (*engine.TreasuryOverview, error)
	TreasuryDetail(userID, cycleID string) (*engine.TreasuryDetail, error)
}

// BackupServicer exports and restores a user's complete data set.
type BackupServicer interface {
	Export(userID string) (*engine.Snapshot, error)
	Import(userID string, snapshot *engine.Snapshot) error
}
