// Package errors provides custom error types for the Mashtal API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Greenhouse errors.
var (
	ErrGreenhouseNotFound = &AppError{Code: "GREENHOUSE_NOT_FOUND", Message: "Greenhouse not found", StatusCode: http.StatusNotFound}
	ErrGreenhouseInUse    = &AppError{Code: "GREENHOUSE_IN_USE", Message: "Greenhouse is referenced by existing crop cycles", StatusCode: http.StatusConflict}
)

// Crop cycle errors.
var (
	ErrCropCycleNotFound  = &AppError{Code: "CROP_CYCLE_NOT_FOUND", Message: "Crop cycle not found", StatusCode: http.StatusNotFound}
	ErrFarmerShareMissing = &AppError{Code: "FARMER_SHARE_MISSING", Message: "A farmer share percentage is required when a farmer is assigned", StatusCode: http.StatusBadRequest}
	ErrFarmerShareOrphan  = &AppError{Code: "FARMER_SHARE_ORPHAN", Message: "A farmer share percentage requires an assigned farmer", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrUnknownCategory     = &AppError{Code: "UNKNOWN_CATEGORY", Message: "Expense category is not configured", StatusCode: http.StatusBadRequest}
)

// Farmer errors.
var (
	ErrFarmerNotFound     = &AppError{Code: "FARMER_NOT_FOUND", Message: "Farmer not found", StatusCode: http.StatusNotFound}
	ErrWithdrawalNotFound = &AppError{Code: "WITHDRAWAL_NOT_FOUND", Message: "Farmer withdrawal not found", StatusCode: http.StatusNotFound}
)

// Supplier errors.
var (
	ErrSupplierNotFound = &AppError{Code: "SUPPLIER_NOT_FOUND", Message: "Supplier not found", StatusCode: http.StatusNotFound}
	ErrPaymentNotFound  = &AppError{Code: "PAYMENT_NOT_FOUND", Message: "Supplier payment not found", StatusCode: http.StatusNotFound}
)

// Fertilization program errors.
var (
	ErrProgramNotFound  = &AppError{Code: "PROGRAM_NOT_FOUND", Message: "Fertilization program not found", StatusCode: http.StatusNotFound}
	ErrProgramDateOrder = &AppError{Code: "PROGRAM_DATE_ORDER", Message: "Program end date must not precede its start date", StatusCode: http.StatusBadRequest}
)

// Advance errors.
var (
	ErrAdvanceNotFound = &AppError{Code: "ADVANCE_NOT_FOUND", Message: "Advance not found", StatusCode: http.StatusNotFound}
)

// Settings errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Expense category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "An expense category with this name already exists", StatusCode: http.StatusConflict}
	ErrCategoryInUse     = &AppError{Code: "CATEGORY_IN_USE", Message: "Expense category is used by existing transactions", StatusCode: http.StatusConflict}
)
