package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Limits groups the business limits the movement engine enforces.
type Limits struct {
	MinMovementAmount      decimal.Decimal
	MaxMovementAmount      decimal.Decimal
	DailyTransferLimit     decimal.Decimal
	ReversalWindow         time.Duration
	RecentMovementsDefault int
	TopAccountsLimit       int
}

// DefaultLimits returns the limits used when nothing else is configured.
func DefaultLimits() Limits {
	return Limits{
		MinMovementAmount:      decimal.RequireFromString("0.01"),
		MaxMovementAmount:      decimal.NewFromInt(2000),
		DailyTransferLimit:     decimal.NewFromInt(10000),
		ReversalWindow:         60 * time.Second,
		RecentMovementsDefault: 5,
		TopAccountsLimit:       10,
	}
}

// AmountInRange reports whether amount is within the per-movement bounds.
func (l Limits) AmountInRange(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(l.MinMovementAmount) && amount.LessThanOrEqual(l.MaxMovementAmount)
}
