package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &account, nil
}

func (s *Store) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.AccountNumber == accountNumber {
			return &account, nil
		}
	}
	return nil, fmt.Errorf("%w: account number %s", apperrors.ErrNotFound, accountNumber)
}

func (s *Store) FindAccountByOwner(_ context.Context, ownerID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.OwnerID == ownerID {
			return &account, nil
		}
	}
	return nil, fmt.Errorf("%w: account of owner %s", apperrors.ErrNotFound, ownerID)
}

func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := s.accounts[id]; ok {
			found[id] = account
		}
	}
	return found, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	s.mu.RUnlock()

	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
		}
		return accounts[i].AccountID < accounts[j].AccountID
	})
	return accounts, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, existing := range s.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: account number %s is taken", apperrors.ErrDuplicate, account.AccountNumber)
		}
		if existing.OwnerID == account.OwnerID {
			return fmt.Errorf("%w: owner %s already has an account", apperrors.ErrDuplicate, account.OwnerID)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) SetAccountActive(_ context.Context, accountID string, active bool, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	account.IsActive = active
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	s.accounts[accountID] = account
	return nil
}
