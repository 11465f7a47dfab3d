package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/database/memory"
)

// testClock is a settable clock shared by the services under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var (
	adminCaller = domain.Caller{OwnerID: "admin-1", Role: domain.RoleAdmin}
)

func userCaller(ownerID string) domain.Caller {
	return domain.Caller{OwnerID: ownerID, Role: domain.RoleUser}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedAccount stores an active account with the given balance.
func seedAccount(store *memory.Store, ownerID, number, balance string) domain.Account {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	account := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       ownerID,
		AccountNumber: number,
		Balance:       dec(balance),
		IsActive:      true,
		DPI:           "1234567890123",
		MonthlyIncome: dec("1000"),
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := store.SaveAccount(context.Background(), account); err != nil {
		panic(err)
	}
	return account
}

func seedVault(store *memory.Store) domain.Account {
	return seedAccount(store, domain.VaultOwnerID, domain.VaultAccountNumber, domain.VaultSeedBalance.String())
}

func balanceOf(store *memory.Store, accountID string) decimal.Decimal {
	account, err := store.FindAccountByID(context.Background(), accountID)
	if err != nil {
		panic(err)
	}
	return account.Balance
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.MovementEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}
