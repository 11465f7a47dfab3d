package utils_test

import (
	"testing"

	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHasMoneyPrecision(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"10", true},
		{"10.5", true},
		{"10.50", true},
		{"10.500", true},
		{"10.505", false},
		{"0.001", false},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.HasMoneyPrecision(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestRoundMoneyAndFormat(t *testing.T) {
	assert.Equal(t, "12.35", utils.RoundMoney(decimal.RequireFromString("12.3456")).String())
	assert.Equal(t, "12.00", utils.FormatMoney(decimal.NewFromInt(12)))
	assert.Equal(t, "-0.50", utils.FormatMoney(decimal.RequireFromString("-0.5")))
}
