package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	txn := stored.Transaction
	return &txn, nil
}

func (s *Store) ListTransactionsByAccount(_ context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	rows := s.collect(func(t domain.Transaction) bool { return t.Involves(accountID) })
	sortNewestFirst(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return unwrap(rows), nil
}

func (s *Store) ListTransactionsByAccountWithinRange(_ context.Context, accountID string, kind *domain.TransactionKind, from, to time.Time) ([]domain.Transaction, error) {
	rows := s.collect(func(t domain.Transaction) bool {
		if t.SourceAccountID != accountID {
			return false
		}
		if kind != nil && t.Kind != *kind {
			return false
		}
		return !t.CreatedAt.Before(from) && t.CreatedAt.Before(to)
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	return unwrap(rows), nil
}

func (s *Store) AggregateByDestination(_ context.Context, limit int) ([]domain.DestinationAggregate, error) {
	s.mu.RLock()
	byAccount := make(map[string]*domain.DestinationAggregate)
	for _, stored := range s.transactions {
		id := stored.DestinationID()
		if id == "" {
			continue
		}
		agg, ok := byAccount[id]
		if !ok {
			agg = &domain.DestinationAggregate{AccountID: id, TotalAmount: decimal.Zero}
			byAccount[id] = agg
		}
		agg.TransactionCount++
		agg.TotalAmount = agg.TotalAmount.Add(stored.Amount)
	}
	s.mu.RUnlock()

	rows := make([]domain.DestinationAggregate, 0, len(byAccount))
	for _, agg := range byAccount {
		rows = append(rows, *agg)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TransactionCount != rows[j].TransactionCount {
			return rows[i].TransactionCount > rows[j].TransactionCount
		}
		if !rows[i].TotalAmount.Equal(rows[j].TotalAmount) {
			return rows[i].TotalAmount.GreaterThan(rows[j].TotalAmount)
		}
		return rows[i].AccountID < rows[j].AccountID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ListHistoryByAccount resolves account numbers and product names for the account's entries.
func (s *Store) ListHistoryByAccount(_ context.Context, accountID string) ([]domain.HistoryEntry, error) {
	rows := s.collect(func(t domain.Transaction) bool { return t.Involves(accountID) })
	sortNewestFirst(rows)

	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.HistoryEntry{Transaction: row.Transaction}
		if source, ok := s.accounts[row.SourceAccountID]; ok {
			entry.SourceAccountNumber = source.AccountNumber
		}
		if dst, ok := s.accounts[row.DestinationID()]; ok {
			number := dst.AccountNumber
			entry.DestinationAccountNumber = &number
		}
		if row.ProductID != nil {
			if product, ok := s.products[*row.ProductID]; ok {
				name := product.Name
				entry.ProductName = &name
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Store) collect(match func(domain.Transaction) bool) []storedTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]storedTransaction, 0)
	for _, stored := range s.transactions {
		if match(stored.Transaction) {
			rows = append(rows, stored)
		}
	}
	return rows
}

func sortNewestFirst(rows []storedTransaction) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
}

func unwrap(rows []storedTransaction) []domain.Transaction {
	txns := make([]domain.Transaction, len(rows))
	for i, row := range rows {
		txns[i] = row.Transaction
	}
	return txns
}
