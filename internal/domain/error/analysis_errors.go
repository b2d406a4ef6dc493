package error

import "errors"

// Analysis domain errors.
var (
	// ErrActualDataNotSet is returned when an analysis needs actual spending data that was never supplied.
	ErrActualDataNotSet = errors.New("no actual data set")

	// ErrInvalidPeriodRange is returned when a period range is out of bounds or reversed.
	ErrInvalidPeriodRange = errors.New("invalid period range")

	// ErrInvalidThreshold is returned when an overspend threshold is negative or not a number.
	ErrInvalidThreshold = errors.New("invalid overspend threshold")

	// ErrTrendCategoryNotFound is returned when a trend is requested for an unknown budget category.
	ErrTrendCategoryNotFound = errors.New("trend category not found")
)

// AnalysisErrorCode defines error codes for analysis errors.
type AnalysisErrorCode string

const (
	ErrCodeUnsetData          AnalysisErrorCode = "ANL-010001"
	ErrCodeInvalidPeriodRange AnalysisErrorCode = "ANL-010002"
	ErrCodeInvalidThreshold   AnalysisErrorCode = "ANL-010003"
	ErrCodeUnknownPeriod      AnalysisErrorCode = "ANL-010004"
	ErrCodeTrendNotFound      AnalysisErrorCode = "ANL-020001"
	ErrCodeExportFailed       AnalysisErrorCode = "ANL-030001"
)

// AnalysisError represents an analysis error with code and message.
type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError with the given code and message.
func NewAnalysisError(code AnalysisErrorCode, message string, err error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewUnsetDataError creates the error raised when an analyzer method runs before actual data was set.
func NewUnsetDataError(operation string) *AnalysisError {
	return &AnalysisError{
		Code:    ErrCodeUnsetData,
		Message: operation + " requires actual spending data; upload an export first",
		Err:     ErrActualDataNotSet,
	}
}

// IsUnsetDataError reports whether err signals missing actual spending data.
func IsUnsetDataError(err error) bool {
	return errors.Is(err, ErrActualDataNotSet)
}
