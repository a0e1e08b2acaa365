package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are plain JSON numbers on the wire, as the records were stored before.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount parses a user supplied amount string.
//
// Both dot (12.34) and comma (12,34) are accepted as decimal separator.
// Signs, empty strings, malformed numbers and values that are not larger
// than zero are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrAmountNotPositive
	}

	if s == "" || strings.HasPrefix(s, "+") {
		return decimal.Zero, ErrAmountInvalid
	}

	s = strings.ReplaceAll(s, ",", ".")
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrAmountInvalid
	}

	return CheckAmount(amount)
}

// CheckAmount rejects amounts that are not larger than zero.
func CheckAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}

	return amount, nil
}
