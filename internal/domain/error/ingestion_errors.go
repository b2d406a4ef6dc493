package error

import (
	"errors"
	"fmt"
)

// Ingestion domain errors.
var (
	// ErrUnsupportedFileType is returned when an export has an extension no reader handles.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrUnreadableFile is returned when an export cannot be opened or decoded.
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrEmptyExport is returned when an export has no header or no data rows.
	ErrEmptyExport = errors.New("export contains no data")

	// ErrInvalidCellValue is returned when a period cell is neither blank nor numeric.
	ErrInvalidCellValue = errors.New("invalid numeric cell")

	// ErrFileTooLarge is returned when an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// IngestionErrorCode defines error codes for ingestion errors.
type IngestionErrorCode string

const (
	ErrCodeUnsupportedFileType IngestionErrorCode = "ING-010001"
	ErrCodeUnreadableFile      IngestionErrorCode = "ING-010002"
	ErrCodeEmptyExport         IngestionErrorCode = "ING-010003"
	ErrCodeInvalidCellValue    IngestionErrorCode = "ING-010004"
	ErrCodeFileTooLarge        IngestionErrorCode = "ING-010005"
	ErrCodeMissingFile         IngestionErrorCode = "ING-010006"
)

// IngestionError represents an ingestion error with code and message.
type IngestionError struct {
	Code    IngestionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *IngestionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *IngestionError) Unwrap() error {
	return e.Err
}

// NewIngestionError creates a new IngestionError with the given code and message.
func NewIngestionError(code IngestionErrorCode, message string, err error) *IngestionError {
	return &IngestionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewCellError reports a cell that could not be coerced to a number.
func NewCellError(row int, column string, value string) *IngestionError {
	return &IngestionError{
		Code:    ErrCodeInvalidCellValue,
		Message: fmt.Sprintf("row %d, column %q: cannot parse %q as an amount", row, column, value),
		Err:     ErrInvalidCellValue,
	}
}
