package services

import (
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
)

// Integrations carries the optional outbound adapters. Nil fields disable the feature.
type Integrations struct {
	RateSource portssvc.RateSource
	Publisher  portssvc.EventPublisher
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, integrations Integrations) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	limits := cfg.Limits()

	// Rates first since the account service converts balances with them
	accountOpts := []AccountServiceOption{}
	if integrations.RateSource != nil {
		container.ExchangeRate = NewExchangeRateService(
			integrations.RateSource,
			cfg.BaseCurrency,
			WithRatesTTL(cfg.RatesCacheTTL),
		)
		accountOpts = append(accountOpts, WithExchangeRateService(container.ExchangeRate, cfg.BaseCurrency))
	}
	container.Account = NewAccountService(repos.AccountRepo, accountOpts...)

	movementOpts := []MovementServiceOption{
		WithMovementLimits(limits),
		WithMovementLocation(cfg.LedgerLocation),
	}
	if integrations.Publisher != nil {
		movementOpts = append(movementOpts, WithMovementEventPublisher(integrations.Publisher))
	}
	container.Movement = NewMovementService(
		repos.AccountRepo,
		repos.ProductRepo,
		repos.FavoriteRepo,
		repos.LedgerTx,
		movementOpts...,
	)

	container.Reporting = NewReportingService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.ReportingRepo,
		WithReportingLimits(limits),
		WithReportingLocation(cfg.LedgerLocation),
	)
	container.Favorite = NewFavoriteService(repos.FavoriteRepo, repos.AccountRepo)
	container.Product = NewProductService(repos.ProductRepo)

	return container
}
