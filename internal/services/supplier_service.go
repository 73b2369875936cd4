package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

// supplierService handles supplier and payment business logic.
type supplierService struct {
	db *gorm.DB
}

// NewSupplierService creates a new SupplierServicer.
func NewSupplierService(db *gorm.DB) SupplierServicer {
	return &supplierService{db: db}
}

// CreateSupplier creates a new supplier
func (s *supplierService) CreateSupplier(userID, name string) (*models.Supplier, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "supplier name is required")
	}

	supplier := &models.Supplier{
		UserID: userID,
		Name:   name,
	}

	if err := s.db.Create(supplier).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return supplier, nil
}

// GetUserSuppliers retrieves a paginated list of suppliers for a user.
func (s *supplierService) GetUserSuppliers(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Supplier], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Supplier{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var suppliers []models.Supplier
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(suppliers, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSupplierByID retrieves a supplier by ID for a specific user
func (s *supplierService) GetSupplierByID(userID, supplierID string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.Where("id = ? AND user_id = ?", supplierID, userID).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplierNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &supplier, nil
}

// UpdateSupplier renames a supplier
func (s *supplierService) UpdateSupplier(userID, supplierID, name string) (*models.Supplier, error) {
	supplier, err := s.GetSupplierByID(userID, supplierID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if err := s.db.Model(supplier).Update("name", name).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier. A supplier referenced by
// transactions or payments cannot be deleted.
func (s *supplierService) DeleteSupplier(userID, supplierID string) error {
	supplier, err := s.GetSupplierByID(userID, supplierID)
	if err != nil {
		return err
	}

	var refCount int64
	if err := s.db.Model(&models.Transaction{}).Where("supplier_id = ?", supplierID).Count(&refCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refCount == 0 {
		if err := s.db.Model(&models.SupplierPayment{}).Where("supplier_id = ?", supplierID).Count(&refCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if refCount > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "supplier still has transactions or payments")
	}

	if err := s.db.Delete(supplier).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreatePayment records a payment to a supplier. Linked expense IDs must
// reference existing expense transactions of that supplier, but the linked
// amounts carry no sum constraint against the payment.
func (s *supplierService) CreatePayment(userID, supplierID string, date time.Time, amount float64, description string, linkedExpenseIDs []string) (*models.SupplierPayment, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be greater than zero")
	}

	if _, err := s.GetSupplierByID(userID, supplierID); err != nil {
		return nil, err
	}

	for _, expenseID := range linkedExpenseIDs {
		var count int64
		if err := s.db.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ? AND supplier_id = ? AND type = ?",
				expenseID, userID, supplierID, models.TransactionTypeExpense).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrTransactionNotFound, "linked expense not found for this supplier")
		}
	}

	if date.IsZero() {
		date = time.Now()
	}

	payment := &models.SupplierPayment{
		UserID:           userID,
		SupplierID:       supplierID,
		Date:             date,
		Amount:           amount,
		Description:      description,
		LinkedExpenseIDs: linkedExpenseIDs,
	}

	if err := s.db.Create(payment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return payment, nil
}

// GetSupplierPayments retrieves a paginated list of payments to one supplier, newest first.
func (s *supplierService) GetSupplierPayments(userID, supplierID string, page pagination.PageRequest) (*pagination.PageResponse[models.SupplierPayment], error) {
	if _, err := s.GetSupplierByID(userID, supplierID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.SupplierPayment{}).Where("user_id = ? AND supplier_id = ?", userID, supplierID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.SupplierPayment
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC").Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeletePayment soft-deletes a supplier payment
func (s *supplierService) DeletePayment(userID, paymentID string) error {
	var payment models.SupplierPayment
	if err := s.db.Where("id = ? AND user_id = ?", paymentID, userID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&payment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
