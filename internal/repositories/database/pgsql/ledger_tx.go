package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
)

// PgxLedgerTxRunner runs movements inside a database transaction.
type PgxLedgerTxRunner struct {
	BaseRepository
}

func newPgxLedgerTxRunner(pool *pgxpool.Pool) *PgxLedgerTxRunner {
	return &PgxLedgerTxRunner{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerTxRunner = (*PgxLedgerTxRunner)(nil)

// RunInTx commits when fn returns nil and rolls back otherwise.
func (r *PgxLedgerTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.MovementTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back ledger transaction", "error", rbErr)
		}
	}()

	if err := fn(ctx, &pgxMovementTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

type pgxMovementTx struct {
	tx pgx.Tx
}

var _ portsrepo.MovementTx = (*pgxMovementTx)(nil)

// LockAccounts takes row locks in account id order.
func (t *pgxMovementTx) LockAccounts(ctx context.Context, accountIDs ...string) (map[string]domain.Account, error) {
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := t.tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		locked[account.AccountID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked accounts: %w", err)
	}
	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return locked, nil
}

func (t *pgxMovementTx) FindTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	txn, err := scanTransaction(t.tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, translateError(err, "failed to lock transaction %s", transactionID)
	}
	return &txn, nil
}

func (t *pgxMovementTx) SumTransfersSince(ctx context.Context, sourceAccountID string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE source_account_id = $1 AND kind = $2 AND status = $3 AND created_at >= $4;
	`
	var total decimal.Decimal
	err := t.tx.QueryRow(ctx, query, sourceAccountID, string(domain.KindTransfer), string(domain.StatusCompleted), since).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transfers of account %s: %w", sourceAccountID, err)
	}
	return total, nil
}

// AdjustBalance applies delta in one statement. The guard keeps customer balances non-negative.
func (t *pgxMovementTx) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_id = $1 AND (balance + $2 >= 0 OR account_number = $4)
		RETURNING balance;
	`
	var balance decimal.Decimal
	err := t.tx.QueryRow(ctx, query, accountID, delta, now, domain.VaultAccountNumber).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: account %s can not go below zero", apperrors.ErrInsufficientFunds, accountID)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}
	return balance, nil
}

func (t *pgxMovementTx) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := t.tx.Exec(ctx, query,
		m.TransactionID,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.Kind,
		m.Amount,
		m.ProductID,
		m.Description,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to append transaction %s", m.TransactionID)
	}
	return nil
}

func (t *pgxMovementTx) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query, txn.TransactionID, txn.Amount, string(txn.Status), txn.LastUpdatedAt, txn.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	return nil
}
