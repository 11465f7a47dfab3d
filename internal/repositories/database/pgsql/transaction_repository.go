package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/models"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
)

const transactionColumns = `transaction_id, source_account_id, destination_account_id, kind, amount, product_id, description, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository over the ledger log.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
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
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// FindTransactionByID retrieves a ledger entry by id.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, translateError(err, "failed to find transaction %s", transactionID)
	}
	return &txn, nil
}

// ListTransactionsByAccount retrieves the entries of an account, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC, entry_seq DESC
	`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	return collectTransactions(rows)
}

// ListTransactionsByAccountWithinRange retrieves entries sourced from the account in [from, to), oldest first.
func (r *PgxTransactionRepository) ListTransactionsByAccountWithinRange(ctx context.Context, accountID string, kind *domain.TransactionKind, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_account_id = $1
			AND created_at >= $2 AND created_at < $3
			AND ($4::text IS NULL OR kind = $4)
		ORDER BY created_at, entry_seq
	`
	var kindArg *string
	if kind != nil {
		k := string(*kind)
		kindArg = &k
	}

	rows, err := r.Pool.Query(ctx, query, accountID, from, to, kindArg)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in range for account %s: %w", accountID, err)
	}
	return collectTransactions(rows)
}

// AggregateByDestination groups entries by destination account.
func (r *PgxTransactionRepository) AggregateByDestination(ctx context.Context, limit int) ([]domain.DestinationAggregate, error) {
	query := `
		SELECT destination_account_id, COUNT(*) AS transaction_count, COALESCE(SUM(amount), 0) AS total_amount
		FROM transactions
		WHERE destination_account_id IS NOT NULL
		GROUP BY destination_account_id
		ORDER BY transaction_count DESC, total_amount DESC, destination_account_id
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions by destination: %w", err)
	}
	defer rows.Close()

	result := make([]domain.DestinationAggregate, 0, limit)
	for rows.Next() {
		var row domain.DestinationAggregate
		if err := rows.Scan(&row.AccountID, &row.TransactionCount, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregate rows: %w", err)
	}
	return result, nil
}
