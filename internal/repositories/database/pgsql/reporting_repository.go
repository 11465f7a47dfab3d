package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/models"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ListHistoryByAccount retrieves the entries of an account joined with account numbers and product names.
func (r *reportingRepository) ListHistoryByAccount(ctx context.Context, accountID string) ([]domain.HistoryEntry, error) {
	query := `
		SELECT
			t.transaction_id, t.source_account_id, t.destination_account_id, t.kind, t.amount,
			t.product_id, t.description, t.status,
			t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
			src.account_number AS source_account_number,
			dst.account_number AS destination_account_number,
			p.name AS product_name
		FROM transactions t
		JOIN accounts src ON src.account_id = t.source_account_id
		LEFT JOIN accounts dst ON dst.account_id = t.destination_account_id
		LEFT JOIN products p ON p.product_id = t.product_id
		WHERE t.source_account_id = $1 OR t.destination_account_id = $1
		ORDER BY t.created_at DESC, t.entry_seq DESC
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying history for account %s: %w", accountID, err)
	}
	defer rows.Close()

	result := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var m models.Transaction
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&m.TransactionID,
			&m.SourceAccountID,
			&m.DestinationAccountID,
			&m.Kind,
			&m.Amount,
			&m.ProductID,
			&m.Description,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&entry.SourceAccountNumber,
			&entry.DestinationAccountNumber,
			&entry.ProductName,
		); err != nil {
			return nil, fmt.Errorf("error scanning history row: %w", err)
		}
		entry.Transaction = mapping.ToDomainTransaction(m)
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return result, nil
}
