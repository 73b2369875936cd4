package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	cycleService    CropCycleServicer
	settingsService SettingsServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, cycleService CropCycleServicer, settingsService SettingsServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		cycleService:    cycleService,
		settingsService: settingsService,
	}
}

// resolveAmount returns the transaction amount. With price items present the
// amount is the sum of quantity times price, minus any discount; otherwise
// the explicit amount is used as-is.
func resolveAmount(input TransactionInput) (float64, error) {
	if len(input.PriceItems) == 0 {
		if input.Amount < 0 {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
		}
		return input.Amount, nil
	}

	var total float64
	for _, item := range input.PriceItems {
		if item.Quantity < 0 || item.Price < 0 {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "price items cannot be negative")
		}
		total += item.Quantity * item.Price
	}
	if input.Discount != nil {
		if *input.Discount < 0 || *input.Discount > total {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "discount must be between zero and the item total")
		}
		total -= *input.Discount
	}
	return total, nil
}

// validateInput checks cycle ownership, the expense category, and the
// optional supplier and program references.
func (s *transactionService) validateInput(userID string, input TransactionInput) error {
	if _, err := s.cycleService.GetCropCycleByID(userID, input.CropCycleID); err != nil {
		return err
	}

	if input.Type == models.TransactionTypeExpense {
		settings, err := s.settingsService.GetSettings(userID)
		if err != nil {
			return err
		}
		known := false
		for _, c := range settings.ExpenseCategories {
			if c.Name == input.Category {
				known = true
				break
			}
		}
		if !known {
			return apperrors.ErrUnknownCategory
		}
	}

	if input.SupplierID != nil && *input.SupplierID != "" {
		var count int64
		if err := s.db.Model(&models.Supplier{}).Where("id = ? AND user_id = ?", *input.SupplierID, userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrSupplierNotFound
		}
	}

	if input.FertilizationProgramID != nil && *input.FertilizationProgramID != "" {
		var count int64
		if err := s.db.Model(&models.FertilizationProgram{}).Where("id = ? AND user_id = ?", *input.FertilizationProgramID, userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrProgramNotFound
		}
	}

	return nil
}

// CreateTransaction creates a new transaction on a crop cycle
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	if err := s.validateInput(userID, input); err != nil {
		return nil, err
	}

	amount, err := resolveAmount(input)
	if err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:                 userID,
		CropCycleID:            input.CropCycleID,
		Date:                   input.Date,
		Description:            input.Description,
		Type:                   input.Type,
		Category:               input.Category,
		Amount:                 amount,
		Quantity:               input.Quantity,
		PriceItems:             input.PriceItems,
		Discount:               input.Discount,
		SupplierID:             input.SupplierID,
		FertilizationProgramID: input.FertilizationProgramID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// applyTransactionFilters adds the optional filter clauses to a query.
func applyTransactionFilters(base *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	return base
}

// GetCycleTransactions retrieves a paginated, filtered list of transactions
// for one cycle, newest first.
func (s *transactionService) GetCycleTransactions(userID, cycleID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.cycleService.GetCropCycleByID(userID, cycleID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ? AND crop_cycle_id = ?", userID, cycleID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces the mutable fields of a transaction. The amount
// is re-derived from the price items on every update.
func (s *transactionService) UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if input.CropCycleID == "" {
		input.CropCycleID = transaction.CropCycleID
	}

	if err := s.validateInput(userID, input); err != nil {
		return nil, err
	}

	amount, err := resolveAmount(input)
	if err != nil {
		return nil, err
	}

	transaction.CropCycleID = input.CropCycleID
	if !input.Date.IsZero() {
		transaction.Date = input.Date
	}
	transaction.Description = input.Description
	transaction.Type = input.Type
	transaction.Category = input.Category
	transaction.Amount = amount
	transaction.Quantity = input.Quantity
	transaction.PriceItems = input.PriceItems
	transaction.Discount = input.Discount
	transaction.SupplierID = input.SupplierID
	transaction.FertilizationProgramID = input.FertilizationProgramID

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
