package engine

import (
	"reflect"
	"testing"
	"time"

	"mashtal/internal/models"
)

func alertIDs(alerts []Alert) []string {
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
	}
	return ids
}

func findAlert(t *testing.T, alerts []Alert, id string) Alert {
	t.Helper()
	for _, a := range alerts {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("alert %q not found in %v", id, alertIDs(alerts))
	return Alert{}
}

func TestAlertsHighCost(t *testing.T) {
	now := day("2024-03-01")

	buildSnap := func(revenue, expense float64) *Snapshot {
		return &Snapshot{
			CropCycles: []models.CropCycle{
				{Base: models.Base{ID: "cycle-1"}, Name: "Cucumbers", StartDate: day("2024-02-15"), Status: models.CropCycleStatusActive},
			},
			Transactions: []models.Transaction{
				{Base: models.Base{ID: "r"}, CropCycleID: "cycle-1", Date: day("2024-02-20"), Type: models.TransactionTypeRevenue, Category: "other", Amount: revenue},
				{Base: models.Base{ID: "e"}, CropCycleID: "cycle-1", Date: day("2024-02-21"), Type: models.TransactionTypeExpense, Category: "labor", Amount: expense},
			},
			Settings: defaultSettings(),
		}
	}

	t.Run("fires_above_threshold", func(t *testing.T) {
		alerts := buildSnap(10000, 9000).Alerts(now)
		alert := findAlert(t, alerts, "cost-cycle-1")
		if alert.Type != AlertHighCost {
			t.Errorf("expected type %s, got %s", AlertHighCost, alert.Type)
		}
		if alert.RelatedID != "cycle-1" {
			t.Errorf("expected related id cycle-1, got %s", alert.RelatedID)
		}
	})

	t.Run("silent_at_exact_threshold", func(t *testing.T) {
		if alerts := buildSnap(10000, 8000).Alerts(now); len(alerts) != 0 {
			t.Errorf("expected no alerts at 80%% exactly, got %v", alertIDs(alerts))
		}
	})

	t.Run("silent_without_revenue", func(t *testing.T) {
		snap := buildSnap(0, 9000)
		for _, a := range snap.Alerts(now) {
			if a.Type == AlertHighCost {
				t.Error("cost rule must not fire on zero revenue")
			}
		}
	})

	t.Run("ignores_closed_cycles", func(t *testing.T) {
		snap := buildSnap(10000, 9000)
		snap.CropCycles[0].Status = models.CropCycleStatusClosed

		if alerts := snap.Alerts(now); len(alerts) != 0 {
			t.Errorf("expected no alerts for closed cycle, got %v", alertIDs(alerts))
		}
	})
}

func TestAlertsStagnantCycle(t *testing.T) {
	now := day("2024-03-01")

	buildSnap := func(start time.Time) *Snapshot {
		return &Snapshot{
			CropCycles: []models.CropCycle{
				{Base: models.Base{ID: "cycle-1"}, Name: "Peppers", StartDate: start, Status: models.CropCycleStatusActive},
			},
			Settings: defaultSettings(),
		}
	}

	t.Run("fires_after_45_days_without_revenue", func(t *testing.T) {
		alerts := buildSnap(day("2024-01-16")).Alerts(now)
		alert := findAlert(t, alerts, "stagnant-cycle-1")
		if alert.Type != AlertStagnantCycle {
			t.Errorf("expected type %s, got %s", AlertStagnantCycle, alert.Type)
		}
	})

	t.Run("silent_at_exactly_30_days", func(t *testing.T) {
		if alerts := buildSnap(day("2024-01-31")).Alerts(now); len(alerts) != 0 {
			t.Errorf("expected no alerts at the 30-day boundary, got %v", alertIDs(alerts))
		}
	})

	t.Run("any_revenue_clears_it", func(t *testing.T) {
		snap := buildSnap(day("2024-01-01"))
		snap.Transactions = []models.Transaction{
			{Base: models.Base{ID: "r"}, CropCycleID: "cycle-1", Date: day("2024-01-05"), Type: models.TransactionTypeRevenue, Category: "other", Amount: 1},
		}

		if alerts := snap.Alerts(now); len(alerts) != 0 {
			t.Errorf("expected no alerts, got %v", alertIDs(alerts))
		}
	})

	t.Run("expenses_alone_do_not_clear_it", func(t *testing.T) {
		snap := buildSnap(day("2024-01-01"))
		snap.Transactions = []models.Transaction{
			{Base: models.Base{ID: "e"}, CropCycleID: "cycle-1", Date: day("2024-01-05"), Type: models.TransactionTypeExpense, Category: "labor", Amount: 500},
		}

		findAlert(t, snap.Alerts(now), "stagnant-cycle-1")
	})
}

func TestAlertsNegativeBalance(t *testing.T) {
	now := day("2024-03-01")

	buildSnap := func() *Snapshot {
		snap := tomatoSnapshot()
		// Share is 9250; withdraw beyond it.
		snap.FarmerWithdrawals = []models.FarmerWithdrawal{
			{Base: models.Base{ID: "w1"}, CropCycleID: "cycle-1", Date: day("2024-02-25"), Amount: 12000},
		}
		return snap
	}

	t.Run("fires_when_overdrawn", func(t *testing.T) {
		alerts := buildSnap().Alerts(now)
		alert := findAlert(t, alerts, "balance-farmer-1")
		if alert.Type != AlertNegativeBalance {
			t.Errorf("expected type %s, got %s", AlertNegativeBalance, alert.Type)
		}
		if alert.RelatedID != "farmer-1" {
			t.Errorf("expected related id farmer-1, got %s", alert.RelatedID)
		}
	})

	t.Run("silent_at_zero_balance", func(t *testing.T) {
		snap := buildSnap()
		snap.FarmerWithdrawals[0].Amount = 9250

		for _, a := range snap.Alerts(now) {
			if a.Type == AlertNegativeBalance {
				t.Error("balance rule must not fire at exactly zero")
			}
		}
	})

	t.Run("suppressed_when_farmer_system_disabled", func(t *testing.T) {
		snap := buildSnap()
		snap.Settings.IsFarmerSystemEnabled = false

		for _, a := range snap.Alerts(now) {
			if a.Type == AlertNegativeBalance {
				t.Error("balance rule must not fire with the farmer system disabled")
			}
		}
	})
}

func TestAlertsCombined(t *testing.T) {
	now := day("2024-03-01")

	t.Run("one_cycle_can_trip_both_cycle_rules_independently", func(t *testing.T) {
		// Old cycle with expenses only: stagnant fires, cost does not.
		snap := &Snapshot{
			CropCycles: []models.CropCycle{
				{Base: models.Base{ID: "cycle-1"}, Name: "Eggplant", StartDate: day("2024-01-01"), Status: models.CropCycleStatusActive},
			},
			Transactions: []models.Transaction{
				{Base: models.Base{ID: "e"}, CropCycleID: "cycle-1", Date: day("2024-01-10"), Type: models.TransactionTypeExpense, Category: "labor", Amount: 5000},
			},
			Settings: defaultSettings(),
		}

		got := alertIDs(snap.Alerts(now))
		if !reflect.DeepEqual(got, []string{"stagnant-cycle-1"}) {
			t.Errorf("expected only the stagnation alert, got %v", got)
		}
	})

	t.Run("stable_ids_across_reevaluation", func(t *testing.T) {
		snap := tomatoSnapshot()
		snap.Transactions = append(snap.Transactions, models.Transaction{
			Base: models.Base{ID: "big"}, CropCycleID: "cycle-1", Date: day("2024-02-25"),
			Type: models.TransactionTypeExpense, Category: "labor", Amount: 30000,
		})

		first := snap.Alerts(now)
		second := snap.Alerts(now)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("re-evaluation differs: %v vs %v", alertIDs(first), alertIDs(second))
		}
	})

	t.Run("empty_snapshot_has_no_alerts", func(t *testing.T) {
		snap := &Snapshot{Settings: defaultSettings()}
		if alerts := snap.Alerts(now); len(alerts) != 0 {
			t.Errorf("expected no alerts, got %v", alertIDs(alerts))
		}
	})
}
