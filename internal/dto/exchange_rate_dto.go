package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRatesResponse defines the structure for API responses containing the current rates.
type ExchangeRatesResponse struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetchedAt"`
	Stale     bool                       `json:"stale"`
}

// ToExchangeRatesResponse converts a domain.RateSnapshot to its DTO
func ToExchangeRatesResponse(s *domain.RateSnapshot) ExchangeRatesResponse {
	return ExchangeRatesResponse{
		Base:      s.Base,
		Rates:     s.Rates,
		FetchedAt: s.FetchedAt,
		Stale:     s.Stale,
	}
}
