package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimals every stored amount carries.
const MoneyPrecision = 2

// RoundMoney rounds an amount to MoneyPrecision decimals (half away from zero).
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPrecision)
}

// HasMoneyPrecision reports whether the amount has no more than MoneyPrecision significant decimals.
// "10.50" and "10.500" both qualify, "10.505" does not.
func HasMoneyPrecision(amount decimal.Decimal) bool {
	return amount.Equal(RoundMoney(amount))
}

// FormatMoney renders an amount with exactly MoneyPrecision decimals, "12" becomes "12.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}
