package services

import (
	"testing"

	"mashtal/internal/models"
	"mashtal/internal/pagination"
	"mashtal/internal/testutil"
)

func TestCreateCropCycle(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)

		cycle, err := svc.CreateCropCycle(user.ID, greenhouse.ID, "Winter Tomato", testutil.Date(t, "2023-10-01"), "tomato", 600, nil, nil)
		testutil.AssertNoError(t, err)

		if cycle.ID == "" {
			t.Fatal("expected non-empty cycle ID")
		}
		if cycle.Status != models.CropCycleStatusActive {
			t.Errorf("expected status active, got %s", cycle.Status)
		}
		if cycle.PlantCount != 600 {
			t.Errorf("expected plant count 600, got %d", cycle.PlantCount)
		}
	})

	t.Run("with_farmer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		farmer := testutil.CreateTestFarmer(t, db, user.ID)

		share := 25.0
		cycle, err := svc.CreateCropCycle(user.ID, greenhouse.ID, "Winter Tomato", testutil.Date(t, "2023-10-01"), "tomato", 600, &farmer.ID, &share)
		testutil.AssertNoError(t, err)

		if !cycle.HasFarmer() {
			t.Fatal("expected cycle to have a farmer")
		}
		if *cycle.FarmerSharePercentage != 25 {
			t.Errorf("expected share 25, got %f", *cycle.FarmerSharePercentage)
		}
	})

	t.Run("farmer_without_share", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		farmer := testutil.CreateTestFarmer(t, db, user.ID)

		_, err := svc.CreateCropCycle(user.ID, greenhouse.ID, "Winter Tomato", testutil.Date(t, "2023-10-01"), "tomato", 600, &farmer.ID, nil)
		testutil.AssertAppError(t, err, "FARMER_SHARE_MISSING")
	})

	t.Run("share_without_farmer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)

		share := 25.0
		_, err := svc.CreateCropCycle(user.ID, greenhouse.ID, "Winter Tomato", testutil.Date(t, "2023-10-01"), "tomato", 600, nil, &share)
		testutil.AssertAppError(t, err, "FARMER_SHARE_ORPHAN")
	})

	t.Run("share_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		farmer := testutil.CreateTestFarmer(t, db, user.ID)

		share := 150.0
		_, err := svc.CreateCropCycle(user.ID, greenhouse.ID, "Winter Tomato", testutil.Date(t, "2023-10-01"), "tomato", 600, &farmer.ID, &share)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_farmer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)

		farmerID := "missing-farmer"
		share := 25.0
		_, err := svc.CreateCropCycle(user.ID, greenhouse.ID, "Winter Tomato", testutil.Date(t, "2023-10-01"), "tomato", 600, &farmerID, &share)
		testutil.AssertAppError(t, err, "FARMER_NOT_FOUND")
	})

	t.Run("unknown_greenhouse", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCropCycle(user.ID, "missing", "Winter Tomato", testutil.Date(t, "2023-10-01"), "tomato", 600, nil, nil)
		testutil.AssertAppError(t, err, "GREENHOUSE_NOT_FOUND")
	})
}

func TestGetUserCropCycles(t *testing.T) {
	t.Run("status_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)

		testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)
		closed := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)
		db.Model(closed).Update("status", models.CropCycleStatusClosed)

		status := models.CropCycleStatusClosed
		result, err := svc.GetUserCropCycles(user.ID, pagination.PageRequest{Page: 1, PageSize: 20}, &status)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 closed cycle, got %d", result.TotalItems)
		}

		all, err := svc.GetUserCropCycles(user.ID, pagination.PageRequest{Page: 1, PageSize: 20}, nil)
		testutil.AssertNoError(t, err)
		if all.TotalItems != 2 {
			t.Errorf("expected 2 cycles without filter, got %d", all.TotalItems)
		}
	})
}

func TestUpdateCropCycle(t *testing.T) {
	t.Run("clear_farmer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		farmer := testutil.CreateTestFarmer(t, db, user.ID)
		cycle := testutil.CreateTestCropCycleWithFarmer(t, db, user.ID, greenhouse.ID, farmer.ID, 25)

		_, err := svc.UpdateCropCycle(user.ID, cycle.ID, CropCycleUpdate{ClearFarmer: true})
		testutil.AssertNoError(t, err)

		reloaded, err := svc.GetCropCycleByID(user.ID, cycle.ID)
		testutil.AssertNoError(t, err)
		if reloaded.HasFarmer() {
			t.Error("expected farmer assignment to be cleared")
		}
		if reloaded.FarmerSharePercentage != nil {
			t.Error("expected share percentage to be cleared with the farmer")
		}
	})

	t.Run("reassign_farmer_validates_pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		farmer := testutil.CreateTestFarmer(t, db, user.ID)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		_, err := svc.UpdateCropCycle(user.ID, cycle.ID, CropCycleUpdate{FarmerID: &farmer.ID})
		testutil.AssertAppError(t, err, "FARMER_SHARE_MISSING")

		share := 30.0
		_, err = svc.UpdateCropCycle(user.ID, cycle.ID, CropCycleUpdate{FarmerID: &farmer.ID, FarmerSharePercentage: &share})
		testutil.AssertNoError(t, err)

		reloaded, err := svc.GetCropCycleByID(user.ID, cycle.ID)
		testutil.AssertNoError(t, err)
		if !reloaded.HasFarmer() || *reloaded.FarmerSharePercentage != 30 {
			t.Error("expected farmer assignment with share 30")
		}
	})

	t.Run("close_cycle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		status := models.CropCycleStatusClosed
		_, err := svc.UpdateCropCycle(user.ID, cycle.ID, CropCycleUpdate{Status: &status})
		testutil.AssertNoError(t, err)

		reloaded, err := svc.GetCropCycleByID(user.ID, cycle.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Status != models.CropCycleStatusClosed {
			t.Errorf("expected status closed, got %s", reloaded.Status)
		}
	})
}

func TestDeleteCropCycle(t *testing.T) {
	t.Run("cascades_dependent_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)
		testutil.CreateTestTransaction(t, db, user.ID, cycle.ID, models.TransactionTypeRevenue, "harvest", 5000)

		testutil.AssertNoError(t, svc.DeleteCropCycle(user.ID, cycle.ID))

		_, err := svc.GetCropCycleByID(user.ID, cycle.ID)
		testutil.AssertAppError(t, err, "CROP_CYCLE_NOT_FOUND")

		var txCount int64
		db.Model(&models.Transaction{}).Where("crop_cycle_id = ?", cycle.ID).Count(&txCount)
		if txCount != 0 {
			t.Errorf("expected cycle transactions to be deleted, found %d", txCount)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCropCycleService(db, NewGreenhouseService(db))
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteCropCycle(user.ID, "missing")
		testutil.AssertAppError(t, err, "CROP_CYCLE_NOT_FOUND")
	})
}
