package common

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts an amount token such as "-1,234.56" into a decimal,
// dropping thousands separators and keeping the sign.
func ParseAmount(token string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	if clean == "" {
		return decimal.Zero, &ParseError{Value: token, Err: errEmptyAmount}
	}

	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &ParseError{Value: token, Err: err}
	}

	return amount, nil
}
