package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/database/memory"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	clock     *testClock
	movements portssvc.MovementSvcFacade
	service   portssvc.ReportingService

	alice domain.Account
	bob   domain.Account
	carol domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.clock = newTestClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	seedVault(suite.store)
	suite.alice = seedAccount(suite.store, "alice", "1000000001", "5000")
	suite.bob = seedAccount(suite.store, "bob", "1000000002", "0")
	suite.carol = seedAccount(suite.store, "carol", "1000000003", "0")

	suite.movements = services.NewMovementService(suite.store, suite.store, suite.store, suite.store,
		services.WithMovementClock(suite.clock.Now),
		services.WithMovementLocation(time.UTC))
	suite.service = services.NewReportingService(suite.store, suite.store, suite.store,
		services.WithReportingClock(suite.clock.Now),
		services.WithReportingLocation(time.UTC))
}

func (suite *ReportingServiceTestSuite) transfer(from, to domain.Account, amount string) *domain.Transaction {
	txn, err := suite.movements.Transfer(suite.ctx, userCaller(from.OwnerID), dto.TransferRequest{
		FromAccountNumber: from.AccountNumber,
		ToAccountNumber:   to.AccountNumber,
		Amount:            dec(amount),
	})
	suite.Require().NoError(err)
	suite.clock.Advance(time.Second)
	return txn
}

func (suite *ReportingServiceTestSuite) TestTopAccounts_OrderedByCountThenTotal() {
	suite.transfer(suite.alice, suite.bob, "10")
	suite.transfer(suite.alice, suite.bob, "10")
	suite.transfer(suite.alice, suite.carol, "500")
	suite.transfer(suite.alice, suite.carol, "1")
	suite.transfer(suite.bob, suite.alice, "5")

	rows, err := suite.service.TopAccounts(suite.ctx, adminCaller)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(suite.carol.AccountNumber, rows[0].AccountNumber)
	suite.Equal(2, rows[0].TransactionCount)
	suite.True(rows[0].TotalAmount.Equal(dec("501")))
	suite.Equal(suite.bob.AccountNumber, rows[1].AccountNumber)
	suite.Equal(suite.alice.AccountNumber, rows[2].AccountNumber)
	suite.True(rows[1].Balance.Equal(dec("15")))
}

func (suite *ReportingServiceTestSuite) TestTopAccounts_RequiresAdmin() {
	_, err := suite.service.TopAccounts(suite.ctx, userCaller("alice"))
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportingServiceTestSuite) TestRecentMovements() {
	var last *domain.Transaction
	for i := 0; i < 7; i++ {
		last = suite.transfer(suite.alice, suite.bob, "1")
	}

	recent, err := suite.service.RecentMovements(suite.ctx, userCaller("alice"), suite.alice.AccountID, 0)
	suite.Require().NoError(err)
	suite.Len(recent, 5)
	suite.Equal(last.TransactionID, recent[0].TransactionID)

	recent, err = suite.service.RecentMovements(suite.ctx, adminCaller, suite.alice.AccountID, 3)
	suite.Require().NoError(err)
	suite.Len(recent, 3)

	_, err = suite.service.RecentMovements(suite.ctx, userCaller("carol"), suite.alice.AccountID, 0)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.RecentMovements(suite.ctx, adminCaller, "missing", 0)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestHistory_ResolvesAccountNumbers() {
	suite.transfer(suite.alice, suite.bob, "300")
	suite.transfer(suite.bob, suite.alice, "20")

	history, err := suite.service.History(suite.ctx, userCaller("bob"))

	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal(suite.bob.AccountNumber, history[0].SourceAccountNumber)
	suite.Require().NotNil(history[1].DestinationAccountNumber)
	suite.Equal(suite.bob.AccountNumber, *history[1].DestinationAccountNumber)

	_, err = suite.service.History(suite.ctx, userCaller("nobody"))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestDailyTransferUsage() {
	suite.transfer(suite.alice, suite.bob, "2000")
	suite.transfer(suite.alice, suite.carol, "1500.50")
	suite.transfer(suite.bob, suite.alice, "100")

	usage, err := suite.service.DailyTransferUsage(suite.ctx, userCaller("alice"), suite.alice.AccountID)

	suite.Require().NoError(err)
	suite.Equal(2, usage.TransferCount)
	suite.True(usage.Transferred.Equal(dec("3500.50")))
	suite.True(usage.Remaining.Equal(dec("6499.50")))
	suite.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), usage.WindowStart)

	suite.clock.Advance(24 * time.Hour)
	usage, err = suite.service.DailyTransferUsage(suite.ctx, userCaller("alice"), suite.alice.AccountID)
	suite.Require().NoError(err)
	suite.Zero(usage.TransferCount)
	suite.True(usage.Remaining.Equal(dec("10000")))
}

func (suite *ReportingServiceTestSuite) TestReconcileAccount() {
	suite.transfer(suite.alice, suite.bob, "300")
	_, err := suite.movements.Deposit(suite.ctx, adminCaller, dto.DepositRequest{ToAccountNumber: suite.bob.AccountNumber, Amount: dec("50")})
	suite.Require().NoError(err)

	result, err := suite.service.ReconcileAccount(suite.ctx, adminCaller, suite.bob.AccountID)

	suite.Require().NoError(err)
	suite.True(result.IsBalanced())
	suite.Equal(2, result.EntriesCounted)
	suite.True(result.LedgerBalance.Equal(dec("350")))

	// Alice was seeded with a balance that no entry explains
	result, err = suite.service.ReconcileAccount(suite.ctx, adminCaller, suite.alice.AccountID)
	suite.Require().NoError(err)
	suite.False(result.IsBalanced())
	suite.True(result.Difference.Equal(dec("5000")))

	_, err = suite.service.ReconcileAccount(suite.ctx, userCaller("bob"), suite.bob.AccountID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
