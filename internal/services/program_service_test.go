package services

import (
	"testing"

	"gorm.io/gorm"

	"mashtal/internal/models"
	"mashtal/internal/pagination"
	"mashtal/internal/testutil"
)

func newTestProgramService(db *gorm.DB) ProgramServicer {
	return NewProgramService(db, NewCropCycleService(db, NewGreenhouseService(db)))
}

func TestCreateProgram(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestProgramService(db)
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		program, err := svc.CreateProgram(user.ID, cycle.ID, "Vegetative Feed", testutil.Date(t, "2024-01-01"), testutil.Date(t, "2024-02-01"))
		testutil.AssertNoError(t, err)

		if program.ID == "" {
			t.Fatal("expected non-empty program ID")
		}
		if program.Name != "Vegetative Feed" {
			t.Errorf("expected name Vegetative Feed, got %s", program.Name)
		}
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestProgramService(db)
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		_, err := svc.CreateProgram(user.ID, cycle.ID, "Backwards", testutil.Date(t, "2024-02-01"), testutil.Date(t, "2024-01-01"))
		testutil.AssertAppError(t, err, "PROGRAM_DATE_ORDER")
	})

	t.Run("same_day_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestProgramService(db)
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		_, err := svc.CreateProgram(user.ID, cycle.ID, "One Day", testutil.Date(t, "2024-01-01"), testutil.Date(t, "2024-01-01"))
		testutil.AssertNoError(t, err)
	})

	t.Run("unknown_cycle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestProgramService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateProgram(user.ID, "missing", "Feed", testutil.Date(t, "2024-01-01"), testutil.Date(t, "2024-02-01"))
		testutil.AssertAppError(t, err, "CROP_CYCLE_NOT_FOUND")
	})
}

func TestUpdateProgram(t *testing.T) {
	t.Run("rechecks_date_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestProgramService(db)
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		program, err := svc.CreateProgram(user.ID, cycle.ID, "Feed", testutil.Date(t, "2024-01-01"), testutil.Date(t, "2024-02-01"))
		testutil.AssertNoError(t, err)

		// Moving the end before the stored start must fail.
		badEnd := testutil.Date(t, "2023-12-01")
		_, err = svc.UpdateProgram(user.ID, program.ID, "", nil, &badEnd)
		testutil.AssertAppError(t, err, "PROGRAM_DATE_ORDER")

		// Moving both dates together is fine.
		newStart := testutil.Date(t, "2024-03-01")
		newEnd := testutil.Date(t, "2024-04-01")
		updated, err := svc.UpdateProgram(user.ID, program.ID, "Flowering Feed", &newStart, &newEnd)
		testutil.AssertNoError(t, err)

		if updated.Name != "Flowering Feed" {
			t.Errorf("expected renamed program, got %s", updated.Name)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestProgramService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProgram(user.ID, "missing", "Feed", nil, nil)
		testutil.AssertAppError(t, err, "PROGRAM_NOT_FOUND")
	})
}

func TestGetCyclePrograms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestProgramService(db)
	user := testutil.CreateTestUser(t, db)
	greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
	cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)
	other := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

	_, err := svc.CreateProgram(user.ID, cycle.ID, "Feed A", testutil.Date(t, "2024-01-01"), testutil.Date(t, "2024-02-01"))
	testutil.AssertNoError(t, err)
	_, err = svc.CreateProgram(user.ID, other.ID, "Feed B", testutil.Date(t, "2024-01-01"), testutil.Date(t, "2024-02-01"))
	testutil.AssertNoError(t, err)

	result, err := svc.GetCyclePrograms(user.ID, cycle.ID, pagination.PageRequest{Page: 1, PageSize: 20})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 1 {
		t.Errorf("expected 1 program for the cycle, got %d", result.TotalItems)
	}
}

func TestDeleteProgram(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestProgramService(db)
	txSvc := newTestTransactionService(db)
	user := testutil.CreateTestUser(t, db)
	greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
	cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

	program, err := svc.CreateProgram(user.ID, cycle.ID, "Feed", testutil.Date(t, "2024-01-01"), testutil.Date(t, "2024-02-01"))
	testutil.AssertNoError(t, err)

	// A transaction attributed to the program survives its deletion.
	transaction, err := txSvc.CreateTransaction(user.ID, TransactionInput{
		CropCycleID:            cycle.ID,
		Date:                   testutil.Date(t, "2024-01-15"),
		Type:                   models.TransactionTypeExpense,
		Category:               "fertilizer",
		Amount:                 1200,
		FertilizationProgramID: &program.ID,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteProgram(user.ID, program.ID))

	reloaded, err := txSvc.GetTransactionByID(user.ID, transaction.ID)
	testutil.AssertNoError(t, err)
	if reloaded.FertilizationProgramID == nil || *reloaded.FertilizationProgramID != program.ID {
		t.Error("expected transaction to keep its program reference")
	}
}
