// Package spending reads actual-spending exports (CSV or XLSX profit and loss
// reports) into a SpendingTable.
package spending

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

var amountCleaner = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	",", "",
	" ", "",
	"\u00a0", "",
)

// ParseAmount converts a currency-formatted cell to a signed decimal.
// Blank cells and a lone dash are zero. Parentheses mark a negative amount.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" || s == "-" || s == "—" || s == "–" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = amountCleaner.Replace(s)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domainerror.ErrInvalidCellValue, text)
	}
	if negative {
		value = value.Abs().Neg()
	}
	return value, nil
}
