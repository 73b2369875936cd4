package engine

import (
	"reflect"
	"testing"

	"mashtal/internal/models"
)

// dashSnapshot has one active and one closed cycle so status filtering is
// visible in every aggregate.
func dashSnapshot() *Snapshot {
	snap := tomatoSnapshot()
	snap.CropCycles = append(snap.CropCycles, models.CropCycle{
		Base: models.Base{ID: "cycle-old"}, GreenhouseID: "gh-1", Name: "Spring Cucumbers",
		StartDate: day("2023-03-01"), Status: models.CropCycleStatusClosed, PlantCount: 400,
	})
	snap.Transactions = append(snap.Transactions,
		models.Transaction{Base: models.Base{ID: "old-r"}, CropCycleID: "cycle-old", Date: day("2023-06-01"), Type: models.TransactionTypeRevenue, Category: "other", Amount: 20000},
		models.Transaction{Base: models.Base{ID: "old-e"}, CropCycleID: "cycle-old", Date: day("2023-05-01"), Type: models.TransactionTypeExpense, Category: "labor", Amount: 8000},
	)
	return snap
}

func TestDashboard(t *testing.T) {
	now := day("2024-03-01")

	t.Run("totals_cover_active_cycles_only", func(t *testing.T) {
		d := dashSnapshot().Dashboard(now)
		if d.TotalRevenue != 37000 {
			t.Errorf("expected revenue 37000, got %v", d.TotalRevenue)
		}
		if d.TotalExpenses != 14700 {
			t.Errorf("expected expenses 14700, got %v", d.TotalExpenses)
		}
		if d.OwnerNetProfit != 37000-14700-9250 {
			t.Errorf("expected profit %v, got %v", 37000-14700-9250, d.OwnerNetProfit)
		}
		if d.ActiveCycleCount != 1 {
			t.Errorf("expected 1 active cycle, got %d", d.ActiveCycleCount)
		}
	})

	t.Run("daily_series_span_seven_days", func(t *testing.T) {
		snap := dashSnapshot()
		snap.Transactions = append(snap.Transactions,
			models.Transaction{Base: models.Base{ID: "d1"}, CropCycleID: "cycle-1", Date: day("2024-02-28"), Type: models.TransactionTypeRevenue, Category: "other", Amount: 4000},
			models.Transaction{Base: models.Base{ID: "d2"}, CropCycleID: "cycle-1", Date: day("2024-02-28"), Type: models.TransactionTypeExpense, Category: "labor", Amount: 1000},
		)

		d := snap.Dashboard(now)
		if len(d.RevenueSeries) != 7 || len(d.ExpenseSeries) != 7 || len(d.ProfitSeries) != 7 {
			t.Fatalf("expected 7-point series, got %d/%d/%d",
				len(d.RevenueSeries), len(d.ExpenseSeries), len(d.ProfitSeries))
		}
		if d.RevenueSeries[0].Date != "2024-02-24" || d.RevenueSeries[6].Date != "2024-03-01" {
			t.Errorf("unexpected window %s..%s", d.RevenueSeries[0].Date, d.RevenueSeries[6].Date)
		}

		// 2024-02-28 is index 4: 4000 revenue carries a 25% farmer share.
		point := d.ProfitSeries[4]
		if point.Value != 4000-1000-1000 {
			t.Errorf("expected profit point 2000, got %v", point.Value)
		}
	})

	t.Run("old_transactions_outside_window", func(t *testing.T) {
		d := dashSnapshot().Dashboard(now)
		for _, p := range d.RevenueSeries {
			if p.Value != 0 {
				t.Errorf("expected empty series, got %v on %s", p.Value, p.Date)
			}
		}
	})

	t.Run("expense_breakdown_sorted_descending", func(t *testing.T) {
		d := dashSnapshot().Dashboard(now)
		want := []CategoryTotal{
			{Name: "labor", Value: 7000},
			{Name: "fertilizer", Value: 5200},
			{Name: "seeds", Value: 2500},
		}
		if !reflect.DeepEqual(d.ExpenseByCategory, want) {
			t.Errorf("expected %v, got %v", want, d.ExpenseByCategory)
		}
	})

	t.Run("kpis_present_when_positive", func(t *testing.T) {
		d := dashSnapshot().Dashboard(now)
		if d.StarCycle == nil || d.StarCycle.ID != "cycle-1" {
			t.Fatalf("expected cycle-1 as star cycle, got %+v", d.StarCycle)
		}
		if d.StarCycle.Value != 37000-14700-9250 {
			t.Errorf("expected star value %v, got %v", 37000-14700-9250, d.StarCycle.Value)
		}
		if d.TopGreenhouse == nil || d.TopGreenhouse.ID != "gh-1" {
			t.Fatalf("expected gh-1 as top greenhouse, got %+v", d.TopGreenhouse)
		}
		if d.TopExpenseCategory == nil || d.TopExpenseCategory.Name != "labor" {
			t.Fatalf("expected labor as top expense, got %+v", d.TopExpenseCategory)
		}
	})

	t.Run("kpis_suppressed_without_positive_figures", func(t *testing.T) {
		snap := dashSnapshot()
		var expensesOnly []models.Transaction
		for _, tx := range snap.Transactions {
			if tx.Type == models.TransactionTypeExpense {
				expensesOnly = append(expensesOnly, tx)
			}
		}
		snap.Transactions = expensesOnly

		d := snap.Dashboard(now)
		if d.StarCycle != nil {
			t.Errorf("expected no star cycle at a loss, got %+v", d.StarCycle)
		}
		if d.TopGreenhouse != nil {
			t.Errorf("expected no top greenhouse at a loss, got %+v", d.TopGreenhouse)
		}
	})

	t.Run("last_closed_cycle", func(t *testing.T) {
		d := dashSnapshot().Dashboard(now)
		if d.LastClosedCycle == nil {
			t.Fatal("expected a closed-cycle summary")
		}
		if d.LastClosedCycle.CycleID != "cycle-old" {
			t.Errorf("expected cycle-old, got %s", d.LastClosedCycle.CycleID)
		}
		if d.LastClosedCycle.Profit != 20000-8000 {
			t.Errorf("expected profit 12000, got %v", d.LastClosedCycle.Profit)
		}
	})

	t.Run("empty_closed_cycle_ranked_by_start_date", func(t *testing.T) {
		snap := dashSnapshot()
		snap.CropCycles = append(snap.CropCycles, models.CropCycle{
			Base: models.Base{ID: "cycle-empty"}, GreenhouseID: "gh-1", Name: "Autumn Peppers",
			StartDate: day("2024-01-15"), Status: models.CropCycleStatusClosed, PlantCount: 300,
		})

		d := snap.Dashboard(now)
		if d.LastClosedCycle == nil {
			t.Fatal("expected a closed-cycle summary")
		}
		if d.LastClosedCycle.CycleID != "cycle-empty" {
			t.Errorf("expected cycle-empty, got %s", d.LastClosedCycle.CycleID)
		}
		if d.LastClosedCycle.Revenue != 0 || d.LastClosedCycle.Expense != 0 {
			t.Errorf("expected zero figures, got %+v", d.LastClosedCycle)
		}
	})

	t.Run("no_closed_cycle", func(t *testing.T) {
		d := tomatoSnapshot().Dashboard(now)
		if d.LastClosedCycle != nil {
			t.Errorf("expected nil closed-cycle summary, got %+v", d.LastClosedCycle)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		snap := dashSnapshot()
		first := snap.Dashboard(now)
		second := snap.Dashboard(now)
		if !reflect.DeepEqual(first, second) {
			t.Error("repeated dashboard computations differ")
		}
	})
}
