package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"mashtal/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date parses a YYYY-MM-DD string, failing the test on garbage input.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", s, err)
	}
	return parsed
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGreenhouse creates a greenhouse with the given initial cost.
func CreateTestGreenhouse(t *testing.T, db *gorm.DB, userID string, initialCost float64) *models.Greenhouse {
	t.Helper()

	greenhouse := &models.Greenhouse{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Greenhouse %d", nextID()),
		CreationDate: Date(t, "2023-01-15"),
		InitialCost:  initialCost,
	}
	if err := db.Create(greenhouse).Error; err != nil {
		t.Fatalf("failed to create test greenhouse: %v", err)
	}
	return greenhouse
}

// CreateTestCropCycle creates an active crop cycle without a farmer.
func CreateTestCropCycle(t *testing.T, db *gorm.DB, userID, greenhouseID string) *models.CropCycle {
	t.Helper()

	cycle := &models.CropCycle{
		UserID:       userID,
		GreenhouseID: greenhouseID,
		Name:         fmt.Sprintf("Test Cycle %d", nextID()),
		StartDate:    Date(t, "2023-10-01"),
		Status:       models.CropCycleStatusActive,
		SeedType:     "tomato",
		PlantCount:   600,
	}
	if err := db.Create(cycle).Error; err != nil {
		t.Fatalf("failed to create test crop cycle: %v", err)
	}
	return cycle
}

// CreateTestCropCycleWithFarmer creates an active cycle assigned to a farmer.
func CreateTestCropCycleWithFarmer(t *testing.T, db *gorm.DB, userID, greenhouseID, farmerID string, sharePercentage float64) *models.CropCycle {
	t.Helper()

	cycle := &models.CropCycle{
		UserID:                userID,
		GreenhouseID:          greenhouseID,
		Name:                  fmt.Sprintf("Test Cycle %d", nextID()),
		StartDate:             Date(t, "2023-10-01"),
		Status:                models.CropCycleStatusActive,
		SeedType:              "tomato",
		PlantCount:            600,
		FarmerID:              &farmerID,
		FarmerSharePercentage: &sharePercentage,
	}
	if err := db.Create(cycle).Error; err != nil {
		t.Fatalf("failed to create test crop cycle: %v", err)
	}
	return cycle
}

// CreateTestFarmer creates a farmer.
func CreateTestFarmer(t *testing.T, db *gorm.DB, userID string) *models.Farmer {
	t.Helper()

	farmer := &models.Farmer{
		UserID: userID,
		Name:   fmt.Sprintf("Test Farmer %d", nextID()),
	}
	if err := db.Create(farmer).Error; err != nil {
		t.Fatalf("failed to create test farmer: %v", err)
	}
	return farmer
}

// CreateTestSupplier creates a supplier.
func CreateTestSupplier(t *testing.T, db *gorm.DB, userID string) *models.Supplier {
	t.Helper()

	supplier := &models.Supplier{
		UserID: userID,
		Name:   fmt.Sprintf("Test Supplier %d", nextID()),
	}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("failed to create test supplier: %v", err)
	}
	return supplier
}

// CreateTestTransaction creates a transaction with the given type, category and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, cycleID string, txType models.TransactionType, category string, amount float64) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		UserID:      userID,
		CropCycleID: cycleID,
		Date:        Date(t, "2024-01-10"),
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Type:        txType,
		Category:    category,
		Amount:      amount,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestSettings creates a settings record with all systems enabled and
// the given expense categories.
func CreateTestSettings(t *testing.T, db *gorm.DB, userID string, categories ...models.ExpenseCategory) *models.Settings {
	t.Helper()

	settings := &models.Settings{
		UserID:                              userID,
		Theme:                               models.ThemeSystem,
		IsFarmerSystemEnabled:               true,
		IsSupplierSystemEnabled:             true,
		IsAgriculturalProgramsSystemEnabled: true,
		IsTreasurySystemEnabled:             true,
		IsAdvancesSystemEnabled:             true,
		ExpenseCategories:                   categories,
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return settings
}
