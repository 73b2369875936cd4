package engine

import (
	"fmt"
	"time"

	"mashtal/internal/models"
)

// AlertType tags the rule that produced an alert.
type AlertType string

const (
	AlertHighCost        AlertType = "HIGH_COST"
	AlertStagnantCycle   AlertType = "STAGNANT_CYCLE"
	AlertNegativeBalance AlertType = "NEGATIVE_BALANCE"
)

// costRatioThreshold triggers the high-cost rule once expenses exceed this
// fraction of revenue.
const costRatioThreshold = 0.8

// stagnantAfter is how long an active cycle may run without revenue before
// it is flagged as stagnant.
const stagnantAfter = 30 * 24 * time.Hour

// Alert is one rule hit. The ID is derived from the rule and the related
// entity, so re-evaluating an unchanged snapshot reproduces identical IDs
// and consumers can deduplicate across recomputations.
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	RelatedID string    `json:"related_id"`
}

// Alerts evaluates the three alert rules against the snapshot as of now.
// Rules are independent, so one cycle can produce both a cost and a
// stagnation alert. Output order is stable: cycle rules in cycle order,
// then farmer balances in farmer order.
func (s *Snapshot) Alerts(now time.Time) []Alert {
	var alerts []Alert
	stagnantBefore := now.Add(-stagnantAfter)

	for _, cycle := range s.CropCycles {
		if cycle.Status != models.CropCycleStatusActive {
			continue
		}
		txs := s.cycleTransactions(cycle.ID)
		revenue := sumByType(txs, models.TransactionTypeRevenue)
		expense := sumByType(txs, models.TransactionTypeExpense)

		if revenue > 0 && expense > revenue*costRatioThreshold {
			alerts = append(alerts, Alert{
				ID:        "cost-" + cycle.ID,
				Type:      AlertHighCost,
				Message:   fmt.Sprintf("Expenses of cycle %q exceeded 80%% of its revenue.", cycle.Name),
				RelatedID: cycle.ID,
			})
		}

		if revenue == 0 && cycle.StartDate.Before(stagnantBefore) {
			alerts = append(alerts, Alert{
				ID:        "stagnant-" + cycle.ID,
				Type:      AlertStagnantCycle,
				Message:   fmt.Sprintf("Cycle %q has run for 30 days without recording any revenue.", cycle.Name),
				RelatedID: cycle.ID,
			})
		}
	}

	if s.farmerSystemEnabled() {
		for _, farmer := range s.Farmers {
			if s.FarmerBalance(farmer.ID) < 0 {
				alerts = append(alerts, Alert{
					ID:        "balance-" + farmer.ID,
					Type:      AlertNegativeBalance,
					Message:   fmt.Sprintf("The remaining balance of farmer %q has gone negative.", farmer.Name),
					RelatedID: farmer.ID,
				})
			}
		}
	}

	return alerts
}
