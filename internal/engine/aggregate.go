package engine

import (
	"math"
	"sort"

	"mashtal/internal/models"
)

// CycleSummary holds the core profit figures of one crop cycle.
type CycleSummary struct {
	CycleID        string  `json:"cycle_id"`
	Revenue        float64 `json:"revenue"`
	Expense        float64 `json:"expense"`
	FarmerShare    float64 `json:"farmer_share"`
	OwnerNetProfit float64 `json:"owner_net_profit"`
}

// CycleSummary computes revenue, expense, farmer share and owner net profit
// for a single cycle. An unknown cycle id yields an all-zero summary.
func (s *Snapshot) CycleSummary(cycleID string) CycleSummary {
	summary := CycleSummary{CycleID: cycleID}
	cycle := s.cycleByID(cycleID)
	if cycle == nil {
		return summary
	}

	txs := s.cycleTransactions(cycleID)
	summary.Revenue = sumByType(txs, models.TransactionTypeRevenue)
	summary.Expense = sumByType(txs, models.TransactionTypeExpense)
	summary.FarmerShare = s.farmerShare(cycle, summary.Revenue)
	summary.OwnerNetProfit = summary.Revenue - summary.Expense - summary.FarmerShare
	return summary
}

// farmerShare applies the cycle's share percentage to the given revenue.
// Zero when the farmer system is disabled or the cycle has no farmer.
func (s *Snapshot) farmerShare(cycle *models.CropCycle, revenue float64) float64 {
	if !s.farmerSystemEnabled() || !cycle.HasFarmer() {
		return 0
	}
	return revenue * (*cycle.FarmerSharePercentage / 100)
}

// TreasuryDetail breaks down the cash fund of one crop cycle. Foundational
// expense categories are sunk capital and never deducted here; advances are
// deducted only from the aggregate treasury, never per cycle.
type TreasuryDetail struct {
	CycleID             string             `json:"cycle_id"`
	Revenue             float64            `json:"revenue"`
	OperationalExpenses float64            `json:"operational_expenses"`
	Withdrawals         float64            `json:"withdrawals"`
	Balance             float64            `json:"balance"`
	ExpensesByCategory  map[string]float64 `json:"expenses_by_category"`
	ExpensesBySupplier  map[string]float64 `json:"expenses_by_supplier"`
}

// TreasuryBalance returns the cash available to one cycle after operational
// expenses and farmer withdrawals.
func (s *Snapshot) TreasuryBalance(cycleID string) float64 {
	return s.TreasuryDetail(cycleID).Balance
}

// TreasuryDetail computes the full deduction breakdown for one cycle fund.
// Operational expenses with a supplier reference are grouped by supplier id,
// the rest by category name.
func (s *Snapshot) TreasuryDetail(cycleID string) TreasuryDetail {
	detail := TreasuryDetail{
		CycleID:            cycleID,
		ExpensesByCategory: make(map[string]float64),
		ExpensesBySupplier: make(map[string]float64),
	}
	if s.cycleByID(cycleID) == nil {
		return detail
	}

	foundational := s.foundationalCategories()
	for _, t := range s.cycleTransactions(cycleID) {
		switch t.Type {
		case models.TransactionTypeRevenue:
			detail.Revenue += t.Amount
		case models.TransactionTypeExpense:
			if foundational[t.Category] {
				continue
			}
			detail.OperationalExpenses += t.Amount
			if t.SupplierID != nil && *t.SupplierID != "" {
				detail.ExpensesBySupplier[*t.SupplierID] += t.Amount
			} else {
				detail.ExpensesByCategory[t.Category] += t.Amount
			}
		}
	}

	for _, w := range s.FarmerWithdrawals {
		if w.CropCycleID == cycleID {
			detail.Withdrawals += w.Amount
		}
	}

	detail.Balance = detail.Revenue - detail.OperationalExpenses - detail.Withdrawals
	return detail
}

// TreasuryOverview is the aggregate, cross-cycle treasury view.
type TreasuryOverview struct {
	CycleFunds       []TreasuryDetail `json:"cycle_funds"`
	FundsTotal       float64          `json:"funds_total"`
	AdvancesTotal    float64          `json:"advances_total"`
	AggregateBalance float64          `json:"aggregate_balance"`
}

// TreasuryOverview lists the funds of all active cycles and deducts advances
// from their combined balance. Advances are ignored when the advances system
// is disabled.
func (s *Snapshot) TreasuryOverview() TreasuryOverview {
	var overview TreasuryOverview
	for _, c := range s.CropCycles {
		if c.Status != models.CropCycleStatusActive {
			continue
		}
		fund := s.TreasuryDetail(c.ID)
		overview.CycleFunds = append(overview.CycleFunds, fund)
		overview.FundsTotal += fund.Balance
	}

	if s.Settings.IsAdvancesSystemEnabled {
		for _, a := range s.Advances {
			overview.AdvancesTotal += a.Amount
		}
	}

	overview.AggregateBalance = overview.FundsTotal - overview.AdvancesTotal
	return overview
}

// GreenhouseReport holds lifetime profitability figures for one greenhouse.
// ROI is a percentage of the initial capital cost; when that cost is zero and
// the owner profit is positive the ROI is the +Inf sentinel, which callers
// must special-case for display.
type GreenhouseReport struct {
	GreenhouseID   string         `json:"greenhouse_id"`
	Revenue        float64        `json:"revenue"`
	Expense        float64        `json:"expense"`
	FarmerShare    float64        `json:"farmer_share"`
	OwnerNetProfit float64        `json:"owner_net_profit"`
	LifetimeProfit float64        `json:"lifetime_profit"`
	ROI            float64        `json:"roi"`
	Cycles         []CycleSummary `json:"cycles"`
}

// GreenhouseReport aggregates every cycle of the greenhouse, all statuses
// included, and nets the result against the greenhouse's initial cost.
func (s *Snapshot) GreenhouseReport(greenhouseID string) GreenhouseReport {
	report := GreenhouseReport{GreenhouseID: greenhouseID}
	greenhouse := s.greenhouseByID(greenhouseID)
	if greenhouse == nil {
		return report
	}

	for _, c := range s.CropCycles {
		if c.GreenhouseID != greenhouseID {
			continue
		}
		summary := s.CycleSummary(c.ID)
		report.Cycles = append(report.Cycles, summary)
		report.Revenue += summary.Revenue
		report.Expense += summary.Expense
		report.FarmerShare += summary.FarmerShare
		report.OwnerNetProfit += summary.OwnerNetProfit
	}

	report.LifetimeProfit = report.OwnerNetProfit - greenhouse.InitialCost
	report.ROI = roi(report.OwnerNetProfit, greenhouse.InitialCost)
	return report
}

// roi computes profit as a percentage of invested capital. With no capital
// the result is +Inf for a positive profit and 0 otherwise; it is never NaN.
func roi(profit, capital float64) float64 {
	if capital > 0 {
		return profit / capital * 100
	}
	if profit > 0 {
		return math.Inf(1)
	}
	return 0
}

// FarmerAccount holds a farmer's accrued share and withdrawals across all of
// their cycles.
type FarmerAccount struct {
	FarmerID         string  `json:"farmer_id"`
	TotalShare       float64 `json:"total_share"`
	TotalWithdrawals float64 `json:"total_withdrawals"`
	Balance          float64 `json:"balance"`
	CycleCount       int     `json:"cycle_count"`
}

// FarmerAccounts computes each farmer's account in farmer order. Returns nil
// when the farmer system is disabled.
func (s *Snapshot) FarmerAccounts() []FarmerAccount {
	if !s.farmerSystemEnabled() {
		return nil
	}
	accounts := make([]FarmerAccount, 0, len(s.Farmers))
	for _, f := range s.Farmers {
		accounts = append(accounts, s.farmerAccount(f.ID))
	}
	return accounts
}

// FarmerBalance returns accrued share minus withdrawals for one farmer, or 0
// when the farmer system is disabled.
func (s *Snapshot) FarmerBalance(farmerID string) float64 {
	if !s.farmerSystemEnabled() {
		return 0
	}
	return s.farmerAccount(farmerID).Balance
}

func (s *Snapshot) farmerAccount(farmerID string) FarmerAccount {
	account := FarmerAccount{FarmerID: farmerID}
	cycleIDs := make(map[string]bool)
	for _, c := range s.CropCycles {
		if c.FarmerID == nil || *c.FarmerID != farmerID {
			continue
		}
		cycleIDs[c.ID] = true
		account.CycleCount++
		if c.FarmerSharePercentage != nil {
			revenue := sumByType(s.cycleTransactions(c.ID), models.TransactionTypeRevenue)
			account.TotalShare += revenue * (*c.FarmerSharePercentage / 100)
		}
	}

	for _, w := range s.FarmerWithdrawals {
		if cycleIDs[w.CropCycleID] {
			account.TotalWithdrawals += w.Amount
		}
	}

	account.Balance = account.TotalShare - account.TotalWithdrawals
	return account
}

// SupplierAccount holds the running credit position with one supplier.
// A positive balance means the supplier is still owed money.
type SupplierAccount struct {
	SupplierID    string  `json:"supplier_id"`
	TotalInvoices float64 `json:"total_invoices"`
	TotalPayments float64 `json:"total_payments"`
	Balance       float64 `json:"balance"`
}

// InvoiceSettlement is one credit-purchase invoice with the payments linked
// against it. Linking carries no sum constraint, so PaidAmount may exceed the
// invoice amount and RemainingAmount may go negative.
type InvoiceSettlement struct {
	TransactionID   string  `json:"transaction_id"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	PaidAmount      float64 `json:"paid_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// SupplierStatement is the full ledger of one supplier.
type SupplierStatement struct {
	Account  SupplierAccount          `json:"account"`
	Invoices []InvoiceSettlement      `json:"invoices"`
	Payments []models.SupplierPayment `json:"payments"`
}

// SupplierAccount totals expense invoices against payments for one supplier.
func (s *Snapshot) SupplierAccount(supplierID string) SupplierAccount {
	account := SupplierAccount{SupplierID: supplierID}
	for _, t := range s.Transactions {
		if t.Type == models.TransactionTypeExpense && t.SupplierID != nil && *t.SupplierID == supplierID {
			account.TotalInvoices += t.Amount
		}
	}
	for _, p := range s.SupplierPayments {
		if p.SupplierID == supplierID {
			account.TotalPayments += p.Amount
		}
	}
	account.Balance = account.TotalInvoices - account.TotalPayments
	return account
}

// SupplierStatement builds the invoice/payment ledger for one supplier, both
// lists sorted by date descending.
func (s *Snapshot) SupplierStatement(supplierID string) SupplierStatement {
	statement := SupplierStatement{Account: s.SupplierAccount(supplierID)}

	for _, t := range s.Transactions {
		if t.Type != models.TransactionTypeExpense || t.SupplierID == nil || *t.SupplierID != supplierID {
			continue
		}
		var paid float64
		for _, p := range s.SupplierPayments {
			for _, linked := range p.LinkedExpenseIDs {
				if linked == t.ID {
					paid += p.Amount
					break
				}
			}
		}
		statement.Invoices = append(statement.Invoices, InvoiceSettlement{
			TransactionID:   t.ID,
			Date:            t.Date.Format("2006-01-02"),
			Description:     t.Description,
			Amount:          t.Amount,
			PaidAmount:      paid,
			RemainingAmount: t.Amount - paid,
		})
	}

	for _, p := range s.SupplierPayments {
		if p.SupplierID == supplierID {
			statement.Payments = append(statement.Payments, p)
		}
	}

	sort.SliceStable(statement.Invoices, func(i, j int) bool {
		return statement.Invoices[i].Date > statement.Invoices[j].Date
	})
	sort.SliceStable(statement.Payments, func(i, j int) bool {
		return statement.Payments[i].Date.After(statement.Payments[j].Date)
	})
	return statement
}

// ProgramSummary holds the figures attributed to one fertilization program.
type ProgramSummary struct {
	ProgramID      string  `json:"program_id"`
	Revenue        float64 `json:"revenue"`
	Expense        float64 `json:"expense"`
	FarmerShare    float64 `json:"farmer_share"`
	OwnerNetProfit float64 `json:"owner_net_profit"`
}

// ProgramSummary totals the transactions tagged with the program and applies
// the owning cycle's farmer share to the program's revenue.
func (s *Snapshot) ProgramSummary(programID string) ProgramSummary {
	summary := ProgramSummary{ProgramID: programID}

	var program *models.FertilizationProgram
	for i := range s.FertilizationPrograms {
		if s.FertilizationPrograms[i].ID == programID {
			program = &s.FertilizationPrograms[i]
			break
		}
	}
	if program == nil {
		return summary
	}

	for _, t := range s.Transactions {
		if t.FertilizationProgramID == nil || *t.FertilizationProgramID != programID {
			continue
		}
		switch t.Type {
		case models.TransactionTypeRevenue:
			summary.Revenue += t.Amount
		case models.TransactionTypeExpense:
			summary.Expense += t.Amount
		}
	}

	if cycle := s.cycleByID(program.CropCycleID); cycle != nil {
		summary.FarmerShare = s.farmerShare(cycle, summary.Revenue)
	}
	summary.OwnerNetProfit = summary.Revenue - summary.Expense - summary.FarmerShare
	return summary
}

// SortTransactionsByDateDesc returns a copy of the transactions ordered by
// date descending. The sort is stable: same-day records keep their input
// order.
func SortTransactionsByDateDesc(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
