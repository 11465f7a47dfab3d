package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is one fetch of exchange rates relative to a base currency.
type RateSnapshot struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetchedAt"`
	Stale     bool                       `json:"stale"` // served from cache after a failed refresh
}

// Rate returns the rate for a currency code. The base currency always has rate 1.
func (s RateSnapshot) Rate(currency string) (decimal.Decimal, bool) {
	if currency == s.Base {
		return decimal.NewFromInt(1), true
	}
	rate, ok := s.Rates[currency]
	return rate, ok
}
