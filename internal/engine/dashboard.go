package engine

import (
	"math"
	"sort"
	"time"

	"mashtal/internal/models"
)

// KPIEntry names the entity behind a headline figure.
type KPIEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DailyPoint is one day of a sparkline series.
type DailyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// CategoryTotal is one expense category with its summed amount.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ClosedCycleSummary is the wrap-up card for the most recently finished cycle.
type ClosedCycleSummary struct {
	CycleID string  `json:"cycle_id"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
}

// Dashboard aggregates the headline figures over all active cycles.
type Dashboard struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalExpenses    float64 `json:"total_expenses"`
	OwnerNetProfit   float64 `json:"owner_net_profit"`
	ActiveCycleCount int     `json:"active_cycle_count"`

	StarCycle          *KPIEntry `json:"star_cycle,omitempty"`
	TopGreenhouse      *KPIEntry `json:"top_greenhouse,omitempty"`
	TopExpenseCategory *KPIEntry `json:"top_expense_category,omitempty"`

	RevenueSeries []DailyPoint `json:"revenue_series"`
	ExpenseSeries []DailyPoint `json:"expense_series"`
	ProfitSeries  []DailyPoint `json:"profit_series"`

	ExpenseByCategory []CategoryTotal     `json:"expense_by_category"`
	LastClosedCycle   *ClosedCycleSummary `json:"last_closed_cycle,omitempty"`
}

// Dashboard computes the landing-page aggregates as of now. Only active
// cycles contribute; the daily series cover the trailing seven days
// including today.
func (s *Snapshot) Dashboard(now time.Time) Dashboard {
	var d Dashboard

	activeCycles := make([]models.CropCycle, 0, len(s.CropCycles))
	activeIDs := make(map[string]bool)
	for _, c := range s.CropCycles {
		if c.Status == models.CropCycleStatusActive {
			activeCycles = append(activeCycles, c)
			activeIDs[c.ID] = true
		}
	}
	d.ActiveCycleCount = len(activeCycles)

	activeTxs := make([]models.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if activeIDs[t.CropCycleID] {
			activeTxs = append(activeTxs, t)
		}
	}

	d.TotalRevenue = sumByType(activeTxs, models.TransactionTypeRevenue)
	d.TotalExpenses = sumByType(activeTxs, models.TransactionTypeExpense)
	var totalFarmerShare float64
	for i := range activeCycles {
		cycle := &activeCycles[i]
		revenue := sumByType(s.cycleTransactions(cycle.ID), models.TransactionTypeRevenue)
		totalFarmerShare += s.farmerShare(cycle, revenue)
	}
	d.OwnerNetProfit = d.TotalRevenue - d.TotalExpenses - totalFarmerShare

	d.RevenueSeries, d.ExpenseSeries, d.ProfitSeries = s.dailySeries(activeTxs, now)
	d.ExpenseByCategory = expenseByCategory(activeTxs)
	d.StarCycle, d.TopGreenhouse, d.TopExpenseCategory = s.kpis(activeCycles, d.ExpenseByCategory)
	d.LastClosedCycle = s.lastClosedCycle()
	return d
}

// dailySeries buckets active-cycle transactions into the trailing seven days.
// The farmer share accrued on each day's revenue is deducted from that day's
// profit point.
func (s *Snapshot) dailySeries(activeTxs []models.Transaction, now time.Time) (revenue, expense, profit []DailyPoint) {
	const window = 7
	days := make([]string, 0, window)
	revenueByDay := make(map[string]float64, window)
	expenseByDay := make(map[string]float64, window)
	shareByDay := make(map[string]float64, window)
	for i := window - 1; i >= 0; i-- {
		days = append(days, now.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	for _, day := range days {
		revenueByDay[day] = 0
	}

	for _, t := range activeTxs {
		day := t.Date.Format("2006-01-02")
		if _, ok := revenueByDay[day]; !ok {
			continue
		}
		if t.Type == models.TransactionTypeRevenue {
			revenueByDay[day] += t.Amount
			if cycle := s.cycleByID(t.CropCycleID); cycle != nil {
				shareByDay[day] += s.farmerShare(cycle, t.Amount)
			}
		} else {
			expenseByDay[day] += t.Amount
		}
	}

	for _, day := range days {
		revenue = append(revenue, DailyPoint{Date: day, Value: revenueByDay[day]})
		expense = append(expense, DailyPoint{Date: day, Value: expenseByDay[day]})
		profit = append(profit, DailyPoint{Date: day, Value: revenueByDay[day] - expenseByDay[day] - shareByDay[day]})
	}
	return revenue, expense, profit
}

// expenseByCategory sums expenses per category, sorted by amount descending.
// Ties keep first-encountered category order so the result is deterministic.
func expenseByCategory(txs []models.Transaction) []CategoryTotal {
	totals := make(map[string]float64)
	var order []string
	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Name: name, Value: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// kpis picks the star cycle, top greenhouse and top expense category among
// active cycles. Each is surfaced only with a positive figure; ties resolve
// to the first candidate encountered.
func (s *Snapshot) kpis(activeCycles []models.CropCycle, byCategory []CategoryTotal) (star, topGreenhouse, topExpense *KPIEntry) {
	var bestCycle *KPIEntry
	bestProfit := math.Inf(-1)
	for i := range activeCycles {
		cycle := &activeCycles[i]
		summary := s.CycleSummary(cycle.ID)
		if summary.OwnerNetProfit > bestProfit {
			bestProfit = summary.OwnerNetProfit
			bestCycle = &KPIEntry{ID: cycle.ID, Name: cycle.Name, Value: summary.OwnerNetProfit}
		}
	}
	if bestCycle != nil && bestCycle.Value > 0 {
		star = bestCycle
	}

	var bestGreenhouse *KPIEntry
	bestOperational := math.Inf(-1)
	for i := range s.Greenhouses {
		gh := &s.Greenhouses[i]
		var operational float64
		for _, c := range activeCycles {
			if c.GreenhouseID != gh.ID {
				continue
			}
			txs := s.cycleTransactions(c.ID)
			operational += sumByType(txs, models.TransactionTypeRevenue) - sumByType(txs, models.TransactionTypeExpense)
		}
		if operational > bestOperational {
			bestOperational = operational
			bestGreenhouse = &KPIEntry{ID: gh.ID, Name: gh.Name, Value: operational}
		}
	}
	if bestGreenhouse != nil && bestGreenhouse.Value > 0 {
		topGreenhouse = bestGreenhouse
	}

	if len(byCategory) > 0 && byCategory[0].Value > 0 {
		topExpense = &KPIEntry{Name: byCategory[0].Name, Value: byCategory[0].Value}
	}
	return star, topGreenhouse, topExpense
}

// lastClosedCycle finds the closed cycle with the most recent transaction and
// summarizes it. A cycle without transactions is ranked by its start date.
// Nil when no cycle is closed.
func (s *Snapshot) lastClosedCycle() *ClosedCycleSummary {
	var latest *models.CropCycle
	var latestDate time.Time
	for i := range s.CropCycles {
		cycle := &s.CropCycles[i]
		if cycle.Status != models.CropCycleStatusClosed {
			continue
		}
		last := cycle.StartDate
		for _, t := range s.cycleTransactions(cycle.ID) {
			if t.Date.After(last) {
				last = t.Date
			}
		}
		if latest == nil || last.After(latestDate) {
			latest = cycle
			latestDate = last
		}
	}
	if latest == nil {
		return nil
	}

	summary := s.CycleSummary(latest.ID)
	return &ClosedCycleSummary{
		CycleID: latest.ID,
		Name:    latest.Name,
		Revenue: summary.Revenue,
		Expense: summary.Expense,
		Profit:  summary.OwnerNetProfit,
	}
}
