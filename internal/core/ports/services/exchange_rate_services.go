package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource fetches exchange rates from an external provider.
type RateSource interface {
	// FetchRates returns the rates of every known currency relative to base.
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// ExchangeRateSvcFacade defines cached access to exchange rates
type ExchangeRateSvcFacade interface {
	// GetRates returns the current rates, serving the last known rates when a refresh fails.
	GetRates(ctx context.Context) (*domain.RateSnapshot, error)

	// Convert expresses an amount of the base currency in another currency, rounded to 2 decimals.
	Convert(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error)
}
