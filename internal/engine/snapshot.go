// Package engine computes derived financial aggregates and alerts over an
// in-memory snapshot of the farm's records. Every function is pure: it reads
// the snapshot it is given, never mutates it, and returns plain values, so
// calling anything twice on the same snapshot yields identical results.
//
// Lookups that cannot be resolved (a transaction pointing at a deleted cycle,
// a withdrawal for an unknown farmer) are excluded from the affected figure
// rather than reported as errors; aggregation is total over any well-typed
// snapshot, including a completely empty one.
package engine

import (
	"mashtal/internal/models"
)

// Snapshot is the full set of domain collections plus the user's settings,
// mirroring the backup payload shape. Any slice may be empty or nil.
type Snapshot struct {
	Greenhouses           []models.Greenhouse           `json:"greenhouses"`
	CropCycles            []models.CropCycle            `json:"crop_cycles"`
	Transactions          []models.Transaction          `json:"transactions"`
	Farmers               []models.Farmer               `json:"farmers"`
	FarmerWithdrawals     []models.FarmerWithdrawal     `json:"farmer_withdrawals"`
	Suppliers             []models.Supplier             `json:"suppliers"`
	SupplierPayments      []models.SupplierPayment      `json:"supplier_payments"`
	FertilizationPrograms []models.FertilizationProgram `json:"fertilization_programs"`
	Advances              []models.Advance              `json:"advances"`
	Settings              models.Settings               `json:"settings"`
}

// farmerSystemEnabled reports whether farmer-share figures should be computed
// at all. When the toggle is off every share and balance is zero and the
// negative-balance alert rule is suppressed.
func (s *Snapshot) farmerSystemEnabled() bool {
	return s.Settings.IsFarmerSystemEnabled
}

// cycleByID resolves a crop cycle, or nil when the id is unknown.
func (s *Snapshot) cycleByID(id string) *models.CropCycle {
	for i := range s.CropCycles {
		if s.CropCycles[i].ID == id {
			return &s.CropCycles[i]
		}
	}
	return nil
}

// greenhouseByID resolves a greenhouse, or nil when the id is unknown.
func (s *Snapshot) greenhouseByID(id string) *models.Greenhouse {
	for i := range s.Greenhouses {
		if s.Greenhouses[i].ID == id {
			return &s.Greenhouses[i]
		}
	}
	return nil
}

// cycleTransactions returns all transactions recorded against the cycle.
func (s *Snapshot) cycleTransactions(cycleID string) []models.Transaction {
	var out []models.Transaction
	for _, t := range s.Transactions {
		if t.CropCycleID == cycleID {
			out = append(out, t)
		}
	}
	return out
}

// foundationalCategories returns the set of category names flagged as
// foundational. A missing or empty category list degrades to "no category is
// foundational".
func (s *Snapshot) foundationalCategories() map[string]bool {
	set := make(map[string]bool)
	for _, c := range s.Settings.ExpenseCategories {
		if c.IsFoundational {
			set[c.Name] = true
		}
	}
	return set
}

// sumByType totals transaction amounts of the given type.
func sumByType(txs []models.Transaction, txType models.TransactionType) float64 {
	var sum float64
	for _, t := range txs {
		if t.Type == txType {
			sum += t.Amount
		}
	}
	return sum
}
