package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
)

// DefaultRatesTTL is how long a fetched snapshot is served before a refresh.
const DefaultRatesTTL = 12 * time.Hour

// ratesRefreshTimeout bounds a shared refresh, which outlives the caller that started it.
const ratesRefreshTimeout = 15 * time.Second

// exchangeRateService caches the rates of a RateSource.
type exchangeRateService struct {
	BaseService
	source portssvc.RateSource
	base   string
	ttl    time.Duration

	mu       sync.RWMutex
	snapshot *domain.RateSnapshot
	group    singleflight.Group
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRatesTTL sets how long fetched rates stay fresh.
func WithRatesTTL(ttl time.Duration) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRatesClock sets the clock used to age the cache.
func WithRatesClock(clock func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.clock = clock
	}
}

// NewExchangeRateService creates a caching exchange rate service over source.
func NewExchangeRateService(source portssvc.RateSource, base string, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		BaseService: newBaseService(),
		source:      source,
		base:        strings.ToUpper(base),
		ttl:         DefaultRatesTTL,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// GetRates returns fresh rates, refreshing at most once across concurrent callers.
// A failed refresh falls back to the previous snapshot marked as stale.
func (s *exchangeRateService) GetRates(ctx context.Context) (*domain.RateSnapshot, error) {
	if snap := s.fresh(); snap != nil {
		return snap, nil
	}

	v, err, _ := s.group.Do(s.base, func() (any, error) {
		if snap := s.fresh(); snap != nil {
			return snap, nil
		}
		// Waiters share this fetch, so it must not die with the first caller's request.
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ratesRefreshTimeout)
		defer cancel()
		return s.refresh(refreshCtx)
	})
	if err != nil {
		s.mu.RLock()
		cached := s.snapshot
		s.mu.RUnlock()
		if cached == nil {
			s.LogError(ctx, err, "Exchange rates unavailable and nothing cached")
			return nil, fmt.Errorf("%w: exchange rates: %v", apperrors.ErrUnavailable, err)
		}
		s.LogWarn(ctx, err, "Serving stale exchange rates", slog.Time("fetched_at", cached.FetchedAt))
		stale := *cached
		stale.Stale = true
		return &stale, nil
	}
	return v.(*domain.RateSnapshot), nil
}

// Convert expresses an amount of the base currency in currency.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	snap, err := s.GetRates(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := snap.Rate(strings.ToUpper(currency))
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for currency %s", apperrors.ErrNotFound, currency)
	}
	return utils.RoundMoney(amount.Mul(rate)), nil
}

func (s *exchangeRateService) fresh() *domain.RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil || s.Now().Sub(s.snapshot.FetchedAt) >= s.ttl {
		return nil
	}
	snap := *s.snapshot
	return &snap
}

func (s *exchangeRateService) refresh(ctx context.Context) (*domain.RateSnapshot, error) {
	rates, err := s.source.FetchRates(ctx, s.base)
	if err != nil {
		return nil, err
	}
	snap := &domain.RateSnapshot{
		Base:      s.base,
		Rates:     rates,
		FetchedAt: s.Now(),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.LogInfo(ctx, "Exchange rates refreshed", slog.String("base", s.base), slog.Int("currencies", len(rates)))
	copied := *snap
	return &copied, nil
}
