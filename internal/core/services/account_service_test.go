package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/database/memory"
)

type AccountServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memory.Store
	rateSource *MockRateSource
	service    portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.rateSource = new(MockRateSource)
	rates := services.NewExchangeRateService(suite.rateSource, "USD")
	suite.service = services.NewAccountService(suite.store, services.WithExchangeRateService(rates, "USD"))
}

func validOpenRequest(owner string) dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		OwnerID:       owner,
		DPI:           "1234567890123",
		Address:       "Zone 10",
		Phone:         "5555-5555",
		JobName:       "Engineer",
		MonthlyIncome: dec("4500"),
	}
}

func (suite *AccountServiceTestSuite) TestOpenAccount_Success() {
	account, err := suite.service.OpenAccount(suite.ctx, adminCaller, validOpenRequest("alice"))

	suite.Require().NoError(err)
	suite.Len(account.AccountNumber, domain.AccountNumberLength)
	suite.NotEqual(domain.VaultAccountNumber, account.AccountNumber)
	suite.True(account.Balance.IsZero())
	suite.True(account.IsActive)
	suite.Equal("admin-1", account.CreatedBy)

	stored, err := suite.store.FindAccountByOwner(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal(account.AccountID, stored.AccountID)
}

func (suite *AccountServiceTestSuite) TestOpenAccount_Validation() {
	testCases := []struct {
		name    string
		caller  domain.Caller
		mutate  func(*dto.CreateAccountRequest)
		wantErr error
	}{
		{"NotAdmin", userCaller("alice"), func(r *dto.CreateAccountRequest) {}, apperrors.ErrForbidden},
		{"ShortDPI", adminCaller, func(r *dto.CreateAccountRequest) { r.DPI = "123" }, apperrors.ErrValidation},
		{"LettersInDPI", adminCaller, func(r *dto.CreateAccountRequest) { r.DPI = "12345678901ab" }, apperrors.ErrValidation},
		{"LowIncome", adminCaller, func(r *dto.CreateAccountRequest) { r.MonthlyIncome = dec("99.99") }, apperrors.ErrValidation},
		{"ReservedOwner", adminCaller, func(r *dto.CreateAccountRequest) { r.OwnerID = domain.VaultOwnerID }, apperrors.ErrValidation},
		{"BlankOwner", adminCaller, func(r *dto.CreateAccountRequest) { r.OwnerID = "  " }, apperrors.ErrValidation},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := validOpenRequest("alice")
			tc.mutate(&req)
			_, err := suite.service.OpenAccount(suite.ctx, tc.caller, req)
			suite.ErrorIs(err, tc.wantErr)
		})
	}
}

func (suite *AccountServiceTestSuite) TestOpenAccount_OneAccountPerOwner() {
	_, err := suite.service.OpenAccount(suite.ctx, adminCaller, validOpenRequest("alice"))
	suite.Require().NoError(err)

	_, err = suite.service.OpenAccount(suite.ctx, adminCaller, validOpenRequest("alice"))
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestOpenAccount_RetriesTakenNumbers() {
	seedAccount(suite.store, "bob", "1000000002", "0")
	numbers := []string{domain.VaultAccountNumber, "1000000002", "1000000003"}
	calls := 0
	svc := services.NewAccountService(suite.store, services.WithAccountNumberGenerator(func() (string, error) {
		n := numbers[calls]
		calls++
		return n, nil
	}))

	account, err := svc.OpenAccount(suite.ctx, adminCaller, validOpenRequest("alice"))

	suite.Require().NoError(err)
	suite.Equal("1000000003", account.AccountNumber)
	suite.Equal(3, calls)
}

func (suite *AccountServiceTestSuite) TestOpenAccount_GivesUpAfterRepeatedCollisions() {
	seedAccount(suite.store, "bob", "1000000002", "0")
	svc := services.NewAccountService(suite.store, services.WithAccountNumberGenerator(func() (string, error) {
		return "1000000002", nil
	}))

	_, err := svc.OpenAccount(suite.ctx, adminCaller, validOpenRequest("alice"))
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Access() {
	alice := seedAccount(suite.store, "alice", "1000000001", "10")

	_, err := suite.service.GetAccountByID(suite.ctx, userCaller("alice"), alice.AccountID)
	suite.NoError(err)
	_, err = suite.service.GetAccountByID(suite.ctx, adminCaller, alice.AccountID)
	suite.NoError(err)
	_, err = suite.service.GetAccountByID(suite.ctx, userCaller("bob"), alice.AccountID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	_, err = suite.service.GetAccountByID(suite.ctx, adminCaller, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetMyAccount(suite.ctx, userCaller("bob"))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_RequiresAdmin() {
	seedAccount(suite.store, "alice", "1000000001", "10")
	seedAccount(suite.store, "bob", "1000000002", "10")

	accounts, err := suite.service.ListAccounts(suite.ctx, adminCaller)
	suite.Require().NoError(err)
	suite.Len(accounts, 2)

	_, err = suite.service.ListAccounts(suite.ctx, userCaller("alice"))
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestSetAccountStatus() {
	alice := seedAccount(suite.store, "alice", "1000000001", "10")
	vault := seedVault(suite.store)

	account, err := suite.service.SetAccountStatus(suite.ctx, adminCaller, alice.AccountID, false)
	suite.Require().NoError(err)
	suite.False(account.IsActive)
	stored, err := suite.store.FindAccountByID(suite.ctx, alice.AccountID)
	suite.Require().NoError(err)
	suite.False(stored.IsActive)

	_, err = suite.service.SetAccountStatus(suite.ctx, adminCaller, vault.AccountID, false)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.SetAccountStatus(suite.ctx, userCaller("alice"), alice.AccountID, true)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestEnsureVault_Idempotent() {
	first, err := suite.service.EnsureVault(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(domain.VaultAccountNumber, first.AccountNumber)
	suite.Equal(domain.VaultOwnerID, first.OwnerID)
	suite.True(first.Balance.Equal(domain.VaultSeedBalance))

	second, err := suite.service.EnsureVault(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(first.AccountID, second.AccountID)

	accounts, err := suite.store.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func (suite *AccountServiceTestSuite) TestGetMyBalances_ConvertsBalance() {
	seedAccount(suite.store, "alice", "1000000001", "100")
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(map[string]decimal.Decimal{
		"EUR": dec("0.9"),
		"JPY": dec("151.234"),
	}, nil).Once()

	balances, err := suite.service.GetMyBalances(suite.ctx, userCaller("alice"))

	suite.Require().NoError(err)
	suite.Equal("USD", balances.BaseCurrency)
	byCurrency := map[string]domain.CurrencyBalance{}
	for _, b := range balances.Converted {
		byCurrency[b.Currency] = b
	}
	suite.True(byCurrency["USD"].Amount.Equal(dec("100")))
	suite.True(byCurrency["EUR"].Amount.Equal(dec("90")))
	suite.True(byCurrency["JPY"].Amount.Equal(dec("15123.4")))
	suite.NotContains(byCurrency, "GBP")
	suite.rateSource.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetMyBalances_Unavailable() {
	seedAccount(suite.store, "alice", "1000000001", "100")
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(nil, errors.New("provider down")).Once()

	_, err := suite.service.GetMyBalances(suite.ctx, userCaller("alice"))
	suite.ErrorIs(err, apperrors.ErrUnavailable)

	plain := services.NewAccountService(suite.store, services.WithAccountClock(time.Now))
	_, err = plain.GetMyBalances(suite.ctx, userCaller("alice"))
	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
