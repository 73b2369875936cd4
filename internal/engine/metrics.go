package engine

import (
	"math"
	"time"

	"mashtal/internal/models"
)

// CycleMetrics holds the yield and efficiency figures of one crop cycle.
// Per-plant figures are zero when the plant count is not positive, and
// DailyProduction is zero until the production start date has passed.
type CycleMetrics struct {
	CycleID            string  `json:"cycle_id"`
	TotalYield         float64 `json:"total_yield"`
	ProductionPerPlant float64 `json:"production_per_plant"`
	RevenuePerPlant    float64 `json:"revenue_per_plant"`
	CostPerPlant       float64 `json:"cost_per_plant"`
	ProfitPerPlant     float64 `json:"profit_per_plant"`
	DailyProduction    float64 `json:"daily_production"`
	ROI                float64 `json:"roi"`
	Health             float64 `json:"health"`
}

// CycleMetrics computes plant-efficiency and production-rate figures for a
// cycle as of now. ROI here is owner profit relative to the cycle's expenses,
// zero when nothing was spent.
func (s *Snapshot) CycleMetrics(cycleID string, now time.Time) CycleMetrics {
	metrics := CycleMetrics{CycleID: cycleID}
	cycle := s.cycleByID(cycleID)
	if cycle == nil {
		return metrics
	}

	summary := s.CycleSummary(cycleID)
	for _, t := range s.cycleTransactions(cycleID) {
		if t.Type == models.TransactionTypeRevenue && t.Quantity != nil {
			metrics.TotalYield += *t.Quantity
		}
	}

	if cycle.PlantCount > 0 {
		plants := float64(cycle.PlantCount)
		metrics.ProductionPerPlant = metrics.TotalYield / plants
		metrics.RevenuePerPlant = summary.Revenue / plants
		metrics.CostPerPlant = summary.Expense / plants
		metrics.ProfitPerPlant = summary.OwnerNetProfit / plants
	}

	if cycle.ProductionStartDate != nil && now.After(*cycle.ProductionStartDate) {
		metrics.DailyProduction = metrics.TotalYield / float64(daysSince(*cycle.ProductionStartDate, now))
	}

	if summary.Expense > 0 {
		metrics.ROI = summary.OwnerNetProfit / summary.Expense * 100
	}
	metrics.Health = HealthScore(summary.Revenue, summary.Expense)
	return metrics
}

// daysSince counts elapsed days rounded up, never less than one.
func daysSince(start, now time.Time) int {
	days := int(math.Ceil(now.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// HealthScore maps a cycle's revenue:expense ratio onto a 0-100 scale.
// A ratio of 1 scores exactly 50; the score grows linearly to 100 as the
// ratio reaches 2 and shrinks linearly to 0 as it falls to 0. With no
// expenses the score is 100 for any revenue and a neutral 50 otherwise.
func HealthScore(revenue, expense float64) float64 {
	if expense == 0 {
		if revenue > 0 {
			return 100
		}
		return 50
	}

	ratio := revenue / expense
	if ratio >= 1 {
		return 50 + math.Min(ratio-1, 1)*50
	}
	return ratio * 50
}
