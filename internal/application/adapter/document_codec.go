package adapter

import (
	"github.com/budget-dashboard/backend/internal/domain/entity"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// BudgetDocumentCodec reads and writes budget definition documents.
type BudgetDocumentCodec interface {
	// Decode validates and parses a YAML or JSON document.
	Decode(data []byte) (*entity.Budget, error)

	// Encode writes a budget in the named format and returns its content type.
	Encode(budget *entity.Budget, format string) ([]byte, string, error)
}

// SpendingTableReader parses actual-spending exports.
type SpendingTableReader interface {
	// Supports reports whether the file name selects a readable format.
	Supports(filename string) bool

	// Read parses an export; the file name selects CSV or XLSX.
	Read(filename string, data []byte) (*entity.SpendingTable, error)
}

// ReportExporter renders an analysis as a spreadsheet.
type ReportExporter interface {
	// ExportWorkbook returns an XLSX workbook with the variance analysis and the raw data.
	ExportWorkbook(report valueobject.BudgetReport, table *entity.SpendingTable) ([]byte, error)
}
