package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetMyAccount retrieves the account owned by the caller.
	GetMyAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error)

	// GetAccountByID retrieves an account visible to the caller.
	GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context, caller domain.Caller) ([]domain.Account, error)

	// GetMyBalances converts the caller's balance into the supported foreign currencies.
	GetMyBalances(ctx context.Context, caller domain.Caller) (*domain.AccountBalances, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// OpenAccount creates an account with a fresh account number and zero balance.
	OpenAccount(ctx context.Context, caller domain.Caller, req dto.CreateAccountRequest) (*domain.Account, error)

	// SetAccountStatus activates or deactivates an account.
	SetAccountStatus(ctx context.Context, caller domain.Caller, accountID string, active bool) (*domain.Account, error)
}

// AccountBootstrapSvc defines startup operations for account data
type AccountBootstrapSvc interface {
	// EnsureVault creates the vault account when it does not exist yet.
	EnsureVault(ctx context.Context) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountBootstrapSvc
}
