package services

import (
	"testing"

	"mashtal/internal/models"
	"mashtal/internal/testutil"
)

func TestGetSettings(t *testing.T) {
	t.Run("creates_defaults_on_first_access", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		if settings.Theme != models.ThemeSystem {
			t.Errorf("expected default theme system, got %s", settings.Theme)
		}
		if !settings.IsFarmerSystemEnabled || !settings.IsTreasurySystemEnabled {
			t.Error("expected all systems enabled by default")
		}
		if len(settings.ExpenseCategories) != 9 {
			t.Fatalf("expected 9 default categories, got %d", len(settings.ExpenseCategories))
		}
		if settings.ExpenseCategories[0].Name != "seeds" || !settings.ExpenseCategories[0].IsFoundational {
			t.Error("expected seeds as the first, foundational category")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)
		second, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Error("expected the same settings record on repeated access")
		}
		if len(second.ExpenseCategories) != 9 {
			t.Errorf("expected categories not to be re-seeded, got %d", len(second.ExpenseCategories))
		}
	})
}

func TestUpdateSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db)
	user := testutil.CreateTestUser(t, db)

	theme := models.ThemeDark
	disabled := false
	settings, err := svc.UpdateSettings(user.ID, SettingsUpdate{
		Theme:                 &theme,
		IsFarmerSystemEnabled: &disabled,
	})
	testutil.AssertNoError(t, err)

	if settings.Theme != models.ThemeDark {
		t.Errorf("expected theme dark, got %s", settings.Theme)
	}
	if settings.IsFarmerSystemEnabled {
		t.Error("expected farmer system disabled")
	}
	if !settings.IsSupplierSystemEnabled {
		t.Error("expected untouched toggles to keep their value")
	}
}

func TestAddExpenseCategory(t *testing.T) {
	t.Run("appended_at_end", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.AddExpenseCategory(user.ID, "packaging", false)
		testutil.AssertNoError(t, err)

		if category.Position != 9 {
			t.Errorf("expected position 9 after the defaults, got %d", category.Position)
		}

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)
		if len(settings.ExpenseCategories) != 10 {
			t.Errorf("expected 10 categories, got %d", len(settings.ExpenseCategories))
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpenseCategory(user.ID, "fertilizer", false)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpenseCategory(user.ID, "", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateExpenseCategory(t *testing.T) {
	t.Run("rename_keeps_old_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		var fertilizer *models.ExpenseCategory
		for i := range settings.ExpenseCategories {
			if settings.ExpenseCategories[i].Name == "fertilizer" {
				fertilizer = &settings.ExpenseCategories[i]
			}
		}
		if fertilizer == nil {
			t.Fatal("expected a fertilizer default category")
		}

		expense := testutil.CreateTestTransaction(t, db, user.ID, cycle.ID, models.TransactionTypeExpense, "fertilizer", 4000)

		_, err = svc.UpdateExpenseCategory(user.ID, fertilizer.ID, "plant feed", nil)
		testutil.AssertNoError(t, err)

		var reloaded models.Transaction
		db.First(&reloaded, "id = ?", expense.ID)
		if reloaded.Category != "fertilizer" {
			t.Errorf("expected historical transaction to keep its category, got %s", reloaded.Category)
		}
	})

	t.Run("rename_to_existing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateExpenseCategory(user.ID, settings.ExpenseCategories[0].ID, "labor", nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateExpenseCategory(user.ID, "missing", "renamed", nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteExpenseCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.AddExpenseCategory(user.ID, "packaging", false)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteExpenseCategory(user.ID, category.ID))

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)
		if len(settings.ExpenseCategories) != 9 {
			t.Errorf("expected 9 categories after delete, got %d", len(settings.ExpenseCategories))
		}
	})

	t.Run("blocked_while_in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)
		greenhouse := testutil.CreateTestGreenhouse(t, db, user.ID, 0)
		cycle := testutil.CreateTestCropCycle(t, db, user.ID, greenhouse.ID)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		var labor *models.ExpenseCategory
		for i := range settings.ExpenseCategories {
			if settings.ExpenseCategories[i].Name == "labor" {
				labor = &settings.ExpenseCategories[i]
			}
		}
		if labor == nil {
			t.Fatal("expected a labor default category")
		}

		testutil.CreateTestTransaction(t, db, user.ID, cycle.ID, models.TransactionTypeExpense, "labor", 7000)

		err = svc.DeleteExpenseCategory(user.ID, labor.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})
}

func TestReorderExpenseCategories(t *testing.T) {
	t.Run("rewrites_positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		// Reverse the current order.
		ids := make([]string, 0, len(settings.ExpenseCategories))
		for i := len(settings.ExpenseCategories) - 1; i >= 0; i-- {
			ids = append(ids, settings.ExpenseCategories[i].ID)
		}

		testutil.AssertNoError(t, svc.ReorderExpenseCategories(user.ID, ids))

		reloaded, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)
		if reloaded.ExpenseCategories[0].Name != "other" {
			t.Errorf("expected other first after reversal, got %s", reloaded.ExpenseCategories[0].Name)
		}
		if reloaded.ExpenseCategories[8].Name != "seeds" {
			t.Errorf("expected seeds last after reversal, got %s", reloaded.ExpenseCategories[8].Name)
		}
	})

	t.Run("incomplete_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		err = svc.ReorderExpenseCategories(user.ID, []string{settings.ExpenseCategories[0].ID})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)
		user := testutil.CreateTestUser(t, db)

		settings, err := svc.GetSettings(user.ID)
		testutil.AssertNoError(t, err)

		ids := make([]string, len(settings.ExpenseCategories))
		for i := range ids {
			ids[i] = settings.ExpenseCategories[0].ID
		}
		err = svc.ReorderExpenseCategories(user.ID, ids)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
