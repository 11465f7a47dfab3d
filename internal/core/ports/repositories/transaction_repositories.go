package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// TransactionReader defines read operations over the ledger log
type TransactionReader interface {
	// FindTransactionByID retrieves a ledger entry by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves entries where the account is source or destination,
	// newest first. A limit <= 0 returns every entry.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)

	// ListTransactionsByAccountWithinRange retrieves entries with the account as source created in [from, to),
	// optionally filtered by kind, oldest first.
	ListTransactionsByAccountWithinRange(ctx context.Context, accountID string, kind *domain.TransactionKind, from, to time.Time) ([]domain.Transaction, error)

	// AggregateByDestination groups entries by destination account, excluding entries without one,
	// ordered by count desc, total desc, account id.
	AggregateByDestination(ctx context.Context, limit int) ([]domain.DestinationAggregate, error)
}

// TransactionRepositoryFacade combines all ledger-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
}
