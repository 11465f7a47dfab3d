package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
)

// RunInTx runs fn against a staged view of the store.
// Staged writes are applied in one step when fn returns nil and dropped otherwise.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.MovementTx) error) error {
	tx := &memoryTx{
		store:   s,
		held:    make(map[string]bool),
		deltas:  make(map[string]decimal.Decimal),
		touched: make(map[string]time.Time),
		updated: make(map[string]domain.Transaction),
	}
	defer tx.releaseAll()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memoryTx struct {
	store     *Store
	held      map[string]bool
	heldOrder []string
	deltas    map[string]decimal.Decimal
	touched   map[string]time.Time
	appended  []domain.Transaction
	updated   map[string]domain.Transaction
}

var _ portsrepo.MovementTx = (*memoryTx)(nil)

func accountKey(id string) string { return "account:" + id }
func transactionKey(id string) string { return "transaction:" + id }

func (tx *memoryTx) lock(ctx context.Context, key string) error {
	if tx.held[key] {
		return nil
	}
	if err := tx.store.locks.Lock(ctx, key); err != nil {
		return fmt.Errorf("%w: waiting for lock %s: %v", apperrors.ErrUnavailable, key, err)
	}
	tx.held[key] = true
	tx.heldOrder = append(tx.heldOrder, key)
	return nil
}

func (tx *memoryTx) releaseAll() {
	for i := len(tx.heldOrder) - 1; i >= 0; i-- {
		tx.store.locks.Unlock(tx.heldOrder[i])
	}
	tx.heldOrder = nil
	tx.held = map[string]bool{}
}

func (tx *memoryTx) LockAccounts(ctx context.Context, accountIDs ...string) (map[string]domain.Account, error) {
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if err := tx.lock(ctx, accountKey(id)); err != nil {
			return nil, err
		}
	}

	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	locked := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		account, ok := tx.store.accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if delta, ok := tx.deltas[id]; ok {
			account.Balance = account.Balance.Add(delta)
		}
		locked[id] = account
	}
	return locked, nil
}

func (tx *memoryTx) FindTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if err := tx.lock(ctx, transactionKey(transactionID)); err != nil {
		return nil, err
	}
	if txn, ok := tx.updated[transactionID]; ok {
		return &txn, nil
	}
	for _, txn := range tx.appended {
		if txn.TransactionID == transactionID {
			return &txn, nil
		}
	}

	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	stored, ok := tx.store.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	txn := stored.Transaction
	return &txn, nil
}

func (tx *memoryTx) SumTransfersSince(_ context.Context, sourceAccountID string, since time.Time) (decimal.Decimal, error) {
	counts := func(t domain.Transaction) bool {
		return t.Kind == domain.KindTransfer &&
			t.Status == domain.StatusCompleted &&
			t.SourceAccountID == sourceAccountID &&
			!t.CreatedAt.Before(since)
	}

	total := decimal.Zero
	tx.store.mu.RLock()
	for _, stored := range tx.store.transactions {
		if counts(stored.Transaction) {
			total = total.Add(stored.Amount)
		}
	}
	tx.store.mu.RUnlock()

	for _, txn := range tx.appended {
		if counts(txn) {
			total = total.Add(txn.Amount)
		}
	}
	return total, nil
}

func (tx *memoryTx) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	locked, err := tx.LockAccounts(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	account := locked[accountID]
	next := account.Balance.Add(delta)
	if next.IsNegative() && !account.IsVault() {
		return decimal.Zero, fmt.Errorf("%w: account %s can not go below zero", apperrors.ErrInsufficientFunds, account.AccountNumber)
	}

	tx.deltas[accountID] = tx.deltas[accountID].Add(delta)
	tx.touched[accountID] = now
	return next, nil
}

func (tx *memoryTx) AppendTransaction(_ context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	tx.store.mu.RLock()
	_, exists := tx.store.transactions[txn.TransactionID]
	tx.store.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
	}
	tx.appended = append(tx.appended, txn)
	return nil
}

func (tx *memoryTx) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	for i := range tx.appended {
		if tx.appended[i].TransactionID == txn.TransactionID {
			tx.appended[i] = txn
			return nil
		}
	}
	tx.store.mu.RLock()
	_, exists := tx.store.transactions[txn.TransactionID]
	tx.store.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	tx.updated[txn.TransactionID] = txn
	return nil
}

func (tx *memoryTx) commit() {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, delta := range tx.deltas {
		account := s.accounts[id]
		account.Balance = account.Balance.Add(delta)
		account.LastUpdatedAt = tx.touched[id]
		s.accounts[id] = account
	}
	for _, txn := range tx.appended {
		s.nextSeq++
		s.transactions[txn.TransactionID] = storedTransaction{Transaction: txn, seq: s.nextSeq}
	}
	for id, txn := range tx.updated {
		stored := s.transactions[id]
		stored.Amount = txn.Amount
		stored.Status = txn.Status
		stored.LastUpdatedAt = txn.LastUpdatedAt
		stored.LastUpdatedBy = txn.LastUpdatedBy
		s.transactions[id] = stored
	}
}
