package spending

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

const (
	headerCategory       = "category"
	headerTotal          = "total"
	headerHierarchyLevel = "hierarchylevel"

	// indentWidth is the number of leading spaces per hierarchy level in CSV exports.
	indentWidth = 2
)

type column struct {
	index int
	label string
}

// buildTable turns raw records into a spending table. outline holds the per-record
// outline level from the source workbook; it is nil for formats without one.
func buildTable(records [][]string, outline []int) (*entity.SpendingTable, error) {
	headerIdx := findHeader(records)
	if headerIdx < 0 {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeEmptyExport, "export has no header row", domainerror.ErrEmptyExport)
	}
	header := records[headerIdx]

	var periods []column
	levelCol := -1
	for i := 1; i < len(header); i++ {
		label := strings.TrimSpace(header[i])
		switch strings.ToLower(strings.ReplaceAll(label, " ", "")) {
		case "", headerTotal:
			continue
		case headerHierarchyLevel:
			levelCol = i
			continue
		}
		periods = append(periods, column{index: i, label: label})
	}
	if len(periods) == 0 {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeEmptyExport, "export has no period columns", domainerror.ErrEmptyExport)
	}

	labels := make([]string, len(periods))
	for i, p := range periods {
		labels[i] = p.label
	}

	var rows []entity.SpendingRow
	for r := headerIdx + 1; r < len(records); r++ {
		record := records[r]
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		depth, err := rowDepth(record, r, levelCol, outline)
		if err != nil {
			return nil, err
		}

		values := make([]decimal.Decimal, len(periods))
		for i, p := range periods {
			cell := cellAt(record, p.index)
			value, err := ParseAmount(cell)
			if err != nil {
				return nil, domainerror.NewCellError(r+1, p.label, cell)
			}
			values[i] = value
		}

		rows = append(rows, entity.SpendingRow{
			Name:   strings.TrimSpace(record[0]),
			Depth:  depth,
			Values: values,
		})
	}
	if len(rows) == 0 {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeEmptyExport, "export has no category rows", domainerror.ErrEmptyExport)
	}

	return entity.NewSpendingTable(labels, rows), nil
}

// findHeader prefers a row starting with "Category" and falls back to the first
// non-empty row.
func findHeader(records [][]string) int {
	firstNonEmpty := -1
	for i, record := range records {
		if isBlank(record) {
			continue
		}
		if firstNonEmpty < 0 {
			firstNonEmpty = i
		}
		if strings.EqualFold(strings.TrimSpace(record[0]), headerCategory) {
			return i
		}
	}
	return firstNonEmpty
}

func rowDepth(record []string, r int, levelCol int, outline []int) (int, error) {
	if levelCol >= 0 {
		cell := strings.TrimSpace(cellAt(record, levelCol))
		if cell == "" {
			return 0, nil
		}
		level, err := strconv.Atoi(strings.TrimSuffix(cell, ".0"))
		if err != nil || level < 0 {
			return 0, domainerror.NewCellError(r+1, "HierarchyLevel", cell)
		}
		return level, nil
	}
	if outline != nil {
		if r < len(outline) {
			return outline[r], nil
		}
		return 0, nil
	}
	return indentDepth(record[0]), nil
}

func indentDepth(name string) int {
	spaces := 0
	for _, ch := range name {
		switch ch {
		case ' ':
			spaces++
		case '\t':
			spaces += indentWidth
		default:
			return spaces / indentWidth
		}
	}
	return spaces / indentWidth
}

func cellAt(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
