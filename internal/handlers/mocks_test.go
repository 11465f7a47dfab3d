package handlers_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
)

// --- Mock MovementService ---
type MockMovementService struct {
	mock.Mock
}

func (m *MockMovementService) Transfer(ctx context.Context, caller domain.Caller, req dto.TransferRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockMovementService) TransferToFavorite(ctx context.Context, caller domain.Caller, req dto.FavoriteTransferRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockMovementService) Deposit(ctx context.Context, caller domain.Caller, req dto.DepositRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockMovementService) Payment(ctx context.Context, caller domain.Caller, req dto.PaymentRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockMovementService) EditDeposit(ctx context.Context, caller domain.Caller, transactionID string, req dto.EditDepositRequest) (*domain.BalanceChange, error) {
	args := m.Called(ctx, caller, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}
func (m *MockMovementService) ReverseDeposit(ctx context.Context, caller domain.Caller, transactionID string) (*domain.BalanceChange, error) {
	args := m.Called(ctx, caller, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.MovementSvcFacade = (*MockMovementService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TopAccounts(ctx context.Context, caller domain.Caller) ([]domain.TopAccount, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopAccount), args.Error(1)
}
func (m *MockReportingService) RecentMovements(ctx context.Context, caller domain.Caller, accountID string, n int) ([]domain.Transaction, error) {
	args := m.Called(ctx, caller, accountID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockReportingService) History(ctx context.Context, caller domain.Caller) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}
func (m *MockReportingService) DailyTransferUsage(ctx context.Context, caller domain.Caller, accountID string) (*domain.DailyTransferUsage, error) {
	args := m.Called(ctx, caller, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyTransferUsage), args.Error(1)
}
func (m *MockReportingService) ReconcileAccount(ctx context.Context, caller domain.Caller, accountID string) (*domain.AccountReconciliation, error) {
	args := m.Called(ctx, caller, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountReconciliation), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetMyAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, caller, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, caller domain.Caller) ([]domain.Account, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetMyBalances(ctx context.Context, caller domain.Caller) (*domain.AccountBalances, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalances), args.Error(1)
}
func (m *MockAccountService) OpenAccount(ctx context.Context, caller domain.Caller, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) SetAccountStatus(ctx context.Context, caller domain.Caller, accountID string, active bool) (*domain.Account, error) {
	args := m.Called(ctx, caller, accountID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) EnsureVault(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRates(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}
func (m *MockExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock FavoriteService ---
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) AddFavorite(ctx context.Context, caller domain.Caller, req dto.AddFavoriteRequest) (*domain.Favorite, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}
func (m *MockFavoriteService) ListFavorites(ctx context.Context, caller domain.Caller) ([]domain.Favorite, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}
func (m *MockFavoriteService) SearchFavorites(ctx context.Context, caller domain.Caller, query string) ([]domain.Favorite, error) {
	args := m.Called(ctx, caller, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}
func (m *MockFavoriteService) IsFavorite(ctx context.Context, caller domain.Caller, accountNumber string) (*domain.Favorite, bool, error) {
	args := m.Called(ctx, caller, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Favorite), args.Bool(1), args.Error(2)
}
func (m *MockFavoriteService) UpdateFavorite(ctx context.Context, caller domain.Caller, favoriteID string, req dto.UpdateFavoriteRequest) (*domain.Favorite, error) {
	args := m.Called(ctx, caller, favoriteID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}
func (m *MockFavoriteService) RemoveFavorite(ctx context.Context, caller domain.Caller, favoriteID string) error {
	args := m.Called(ctx, caller, favoriteID)
	return args.Error(0)
}

var _ portssvc.FavoriteSvcFacade = (*MockFavoriteService)(nil)
