package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// ReportingService defines read-only views derived from the ledger log
type ReportingService interface {
	// TopAccounts lists the accounts that received the most movements.
	TopAccounts(ctx context.Context, caller domain.Caller) ([]domain.TopAccount, error)

	// RecentMovements lists the n newest entries involving an account. n <= 0 uses the default.
	RecentMovements(ctx context.Context, caller domain.Caller, accountID string, n int) ([]domain.Transaction, error)

	// History lists every entry involving the caller's own account with references resolved.
	History(ctx context.Context, caller domain.Caller) ([]domain.HistoryEntry, error)

	// DailyTransferUsage reports the transfers an account made in the current daily window.
	DailyTransferUsage(ctx context.Context, caller domain.Caller, accountID string) (*domain.DailyTransferUsage, error)

	// ReconcileAccount recomputes an account balance from the ledger log.
	ReconcileAccount(ctx context.Context, caller domain.Caller, accountID string) (*domain.AccountReconciliation, error)
}
