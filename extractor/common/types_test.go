package common

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(Deposit{Line: 1, Amount: decimal.RequireFromString("100.00")})
	s.Add(Deposit{Line: 3, Amount: decimal.RequireFromString("-45.00")})
	s.Add(Deposit{Line: 5, Amount: decimal.RequireFromString("100.00")})

	assert.Equal(t, "200", s.TotalDeposit.String())
	assert.Equal(t, "-45", s.TotalWithdraw.String())
	assert.Len(t, s.Deposits, 3)
}

func TestSummaryAdd_ZeroIsDeposit(t *testing.T) {
	var s Summary
	s.Add(Deposit{Amount: decimal.RequireFromString("-0.00")})

	assert.True(t, s.TotalDeposit.IsZero())
	assert.True(t, s.TotalWithdraw.IsZero())
	assert.Len(t, s.Deposits, 1)
}

func TestSummaryOverall(t *testing.T) {
	s := Summary{
		TotalDeposit:  decimal.RequireFromString("1234.56"),
		TotalWithdraw: decimal.RequireFromString("-45"),
	}

	assert.Equal(t,
		"Overall: total DEPOSIT (+) = 1234.5600, total WITHDRAW (-) = -45.0000",
		s.Overall())
}

func TestSummaryOverall_Empty(t *testing.T) {
	assert.Equal(t,
		"Overall: total DEPOSIT (+) = 0.0000, total WITHDRAW (-) = 0.0000",
		Summary{}.Overall())
}

func TestSummaryTotals(t *testing.T) {
	s := Summary{
		TotalDeposit:  decimal.RequireFromString("10.25"),
		TotalWithdraw: decimal.RequireFromString("-3.5"),
	}

	pos, neg := s.Totals()
	assert.InDelta(t, 10.25, pos, 1e-9)
	assert.InDelta(t, -3.5, neg, 1e-9)
}
