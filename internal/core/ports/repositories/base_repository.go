package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MovementTx is the view of the account store and ledger log available inside one unit of work.
// Every write made through it commits or aborts together.
type MovementTx interface {
	// LockAccounts loads and locks the accounts for the rest of the unit of work.
	// Locks are taken in a stable order. Returns ErrNotFound if any id is unknown.
	LockAccounts(ctx context.Context, accountIDs ...string) (map[string]domain.Account, error)

	// FindTransactionForUpdate loads and locks a ledger entry.
	FindTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// SumTransfersSince totals COMPLETED transfers out of the account created at or after since.
	SumTransfersSince(ctx context.Context, sourceAccountID string, since time.Time) (decimal.Decimal, error)

	// AdjustBalance adds delta to the balance and returns the new balance.
	// Returns ErrInsufficientFunds if the result would be negative for a non-vault account.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error)

	// AppendTransaction records a new ledger entry.
	AppendTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction persists amount, status and update time of an existing ledger entry.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerTxRunner runs a function as a single atomic unit of work.
// The unit of work commits when fn returns nil and is rolled back otherwise.
type LedgerTxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx MovementTx) error) error
}
