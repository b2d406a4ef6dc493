// Package error defines domain-specific errors for the budget dashboard.
package error

import (
	"errors"
	"strings"
)

// Budget domain errors.
var (
	// ErrInvalidBudgetDocument is returned when a budget document does not conform to the schema.
	ErrInvalidBudgetDocument = errors.New("invalid budget document")

	// ErrDuplicateCategoryName is returned when a category name appears more than once in a budget.
	ErrDuplicateCategoryName = errors.New("duplicate category name")

	// ErrBudgetCategoryNotFound is returned when a category name is not part of the budget.
	ErrBudgetCategoryNotFound = errors.New("budget category not found")

	// ErrBudgetNotLoaded is returned when an operation needs a budget and none was uploaded.
	ErrBudgetNotLoaded = errors.New("budget not loaded")

	// ErrInvalidBudgetAmount is returned when an edit carries an unusable amount.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrUnsupportedDocumentFormat is returned when a document format is neither YAML nor JSON.
	ErrUnsupportedDocumentFormat = errors.New("unsupported document format")

	// ErrInvalidCategoryType is returned when a category type filter is neither income nor expense.
	ErrInvalidCategoryType = errors.New("invalid category type")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDocument     BudgetErrorCode = "BUD-010001"
	ErrCodeMissingField        BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidAmountType   BudgetErrorCode = "BUD-010003"
	ErrCodeDuplicateCategory   BudgetErrorCode = "BUD-010004"
	ErrCodeUnsupportedFormat   BudgetErrorCode = "BUD-010005"
	ErrCodeInvalidEditAmount   BudgetErrorCode = "BUD-010006"
	ErrCodeEmptyEditBatch      BudgetErrorCode = "BUD-010007"
	ErrCodeInvalidCategoryType BudgetErrorCode = "BUD-010008"
	// Lookup errors (02XXXX)
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BUD-020001"
	ErrCodeBudgetNotLoaded        BudgetErrorCode = "BUD-020002"
)

// BudgetError represents a budget error with code and message.
// Violations lists every schema problem found, each prefixed with its document path.
type BudgetError struct {
	Code       BudgetErrorCode
	Message    string
	Violations []string
	Err        error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	msg := e.Message
	if len(e.Violations) > 0 {
		msg += ": " + strings.Join(e.Violations, "; ")
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates the error returned when a budget document is rejected at load time.
func NewValidationError(code BudgetErrorCode, violations []string, err error) *BudgetError {
	return &BudgetError{
		Code:       code,
		Message:    "budget document failed validation",
		Violations: violations,
		Err:        err,
	}
}

// IsValidationError reports whether err is a budget load-time validation failure.
func IsValidationError(err error) bool {
	var budgetErr *BudgetError
	if !errors.As(err, &budgetErr) {
		return false
	}
	switch budgetErr.Code {
	case ErrCodeInvalidDocument, ErrCodeMissingField, ErrCodeInvalidAmountType,
		ErrCodeDuplicateCategory, ErrCodeUnsupportedFormat:
		return true
	default:
		return false
	}
}
