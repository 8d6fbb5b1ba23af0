package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Deposit is a single qualifying DES:DEPOSIT line.
type Deposit struct {
	Line        int             `json:"line"`
	Page        int             `json:"page,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Summary holds the accumulated totals of one processed document.
// TotalDeposit sums every qualifying amount >= 0 and TotalWithdraw every amount < 0.
type Summary struct {
	Source        string          `json:"source"`
	Pages         int             `json:"pages,omitempty"`
	Deposits      []Deposit       `json:"deposits"`
	TotalDeposit  decimal.Decimal `json:"total_deposit"`
	TotalWithdraw decimal.Decimal `json:"total_withdraw"`
}

// Add folds an amount into the matching total and records the deposit.
func (s *Summary) Add(d Deposit) {
	if d.Amount.Sign() >= 0 {
		s.TotalDeposit = s.TotalDeposit.Add(d.Amount)
	} else {
		s.TotalWithdraw = s.TotalWithdraw.Add(d.Amount)
	}
	s.Deposits = append(s.Deposits, d)
}

// Totals returns (positive_sum, negative_sum) as floats.
func (s Summary) Totals() (float64, float64) {
	return s.TotalDeposit.InexactFloat64(), s.TotalWithdraw.InexactFloat64()
}

// Overall renders the human readable summary line.
func (s Summary) Overall() string {
	return fmt.Sprintf("Overall: total DEPOSIT (+) = %s, total WITHDRAW (-) = %s",
		s.TotalDeposit.StringFixed(4), s.TotalWithdraw.StringFixed(4))
}
