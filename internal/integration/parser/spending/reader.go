package spending

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// Reader parses spending exports by file extension.
type Reader struct{}

// NewReader creates a new spending export reader.
func NewReader() *Reader {
	return &Reader{}
}

// Supports reports whether the file name carries an extension Read can parse.
func (r *Reader) Supports(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Read parses an export. The file name only selects the format.
func (r *Reader) Read(filename string, data []byte) (*entity.SpendingTable, error) {
	if !r.Supports(filename) {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeUnsupportedFileType,
			fmt.Sprintf("unsupported spending export %q", filename),
			domainerror.ErrUnsupportedFileType,
		)
	}
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ReadCSV(bytes.NewReader(data))
	}
	return ReadXLSX(bytes.NewReader(data))
}

// ReadCSV parses a CSV export. Depth comes from a HierarchyLevel column when the
// export has one, otherwise from the indentation of the category name.
func ReadCSV(r io.Reader) (*entity.SpendingTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	records, err := reader.ReadAll()
	if err != nil {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to read csv export", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return buildTable(records, nil)
}

// ReadXLSX parses the first worksheet of a workbook. Depth comes from each row's
// outline level unless a HierarchyLevel column is present.
func ReadXLSX(r io.Reader) (*entity.SpendingTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to open xlsx export", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeEmptyExport, "workbook has no sheets", domainerror.ErrEmptyExport)
	}
	sheet := sheets[0]

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to read worksheet "+sheet, err)
	}

	// Amounts stay raw; period labels keep their display format so dated
	// headers read as months rather than serial numbers.
	if idx := findHeader(records); idx >= 0 {
		header, err := formattedRow(f, sheet, idx+1, len(records[idx]))
		if err != nil {
			return nil, err
		}
		records[idx] = header
	}

	outline := make([]int, len(records))
	for i := range records {
		level, err := f.GetRowOutlineLevel(sheet, i+1)
		if err != nil {
			return nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to read row outline level", err)
		}
		outline[i] = int(level)
	}

	return buildTable(records, outline)
}

func formattedRow(f *excelize.File, sheet string, row, width int) ([]string, error) {
	values := make([]string, width)
	for col := 1; col <= width; col++ {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to address header cell", err)
		}
		if values[col-1], err = f.GetCellValue(sheet, cell); err != nil {
			return nil, domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to read header cell "+cell, err)
		}
	}
	return values, nil
}
