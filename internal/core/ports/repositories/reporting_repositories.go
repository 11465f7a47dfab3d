package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// ReportingRepository defines read-only queries that join the ledger with related records
type ReportingRepository interface {
	// ListHistoryByAccount retrieves every entry involving the account, newest first,
	// with account numbers and product names resolved.
	ListHistoryByAccount(ctx context.Context, accountID string) ([]domain.HistoryEntry, error)
}
