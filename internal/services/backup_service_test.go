package services

import (
	"testing"

	"gorm.io/gorm"

	"mashtal/internal/models"
	"mashtal/internal/testutil"
)

func newTestBackupService(db *gorm.DB) BackupServicer {
	return NewBackupService(db, NewSettingsService(db))
}

func TestExport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestBackupService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 150000)
	cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)
	testutil.CreateTestTransaction(t, db, user.ID, cycle.ID, models.TransactionTypeRevenue, "harvest", 15000)
	testutil.CreateTestGreenhouse(t, db, other.ID, 1)

	snapshot, err := svc.Export(user.ID)
	testutil.AssertNoError(t, err)

	if len(snapshot.Greenhouses) != 1 {
		t.Errorf("expected 1 greenhouse, got %d", len(snapshot.Greenhouses))
	}
	if len(snapshot.CropCycles) != 1 {
		t.Errorf("expected 1 cycle, got %d", len(snapshot.CropCycles))
	}
	if len(snapshot.Transactions) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(snapshot.Transactions))
	}
	if snapshot.Settings.UserID != user.ID {
		t.Error("expected the user's settings in the export")
	}
}

func TestImport(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBackupService(db)
		user := testutil.CreateTestUser(t, db)

		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 150000)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)
		testutil.CreateTestTransaction(t, db, user.ID, cycle.ID, models.TransactionTypeRevenue, "harvest", 15000)

		snapshot, err := svc.Export(user.ID)
		testutil.AssertNoError(t, err)

		// Mutate the live data, then restore the snapshot.
		testutil.CreateTestTransaction(t, db, user.ID, cycle.ID, models.TransactionTypeRevenue, "harvest", 99999)

		testutil.AssertNoError(t, svc.Import(user.ID, snapshot))

		restored, err := svc.Export(user.ID)
		testutil.AssertNoError(t, err)

		if len(restored.Transactions) != 1 {
			t.Fatalf("expected restore to discard the extra transaction, got %d", len(restored.Transactions))
		}
		if restored.Transactions[0].Amount != 15000 {
			t.Errorf("expected restored amount 15000, got %f", restored.Transactions[0].Amount)
		}
		// Cross-references survive because record IDs are preserved.
		if restored.Transactions[0].CropCycleID != cycle.ID {
			t.Error("expected restored transaction to keep its cycle reference")
		}
		if restored.CropCycles[0].GreenhouseID != greenhouse.ID {
			t.Error("expected restored cycle to keep its greenhouse reference")
		}
	})

	t.Run("leaves_other_users_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBackupService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		otherGreenhouse := testutil.CreateTestGreenhouse(t, db, other.ID, 0)

		snapshot, err := svc.Export(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.Import(user.ID, snapshot))

		var count int64
		db.Model(&models.Greenhouse{}).Where("user_id = ?", other.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected the other user's greenhouse to survive, got %d", count)
		}

		var survivor models.Greenhouse
		db.First(&survivor, "id = ?", otherGreenhouse.ID)
		if survivor.UserID != other.ID {
			t.Error("expected the other user's greenhouse owner to be unchanged")
		}
	})

	t.Run("nil_payload", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBackupService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.Import(user.ID, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
