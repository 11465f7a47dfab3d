package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	txnRepo       portsrepo.TransactionReader
	reportingRepo portsrepo.ReportingRepository
	limits        domain.Limits
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingLimits overrides the default report sizes and daily ceiling.
func WithReportingLimits(limits domain.Limits) ReportingServiceOption {
	return func(s *reportingService) {
		s.limits = limits
	}
}

// WithReportingClock sets the clock used to place the daily window.
func WithReportingClock(clock func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.clock = clock
	}
}

// WithReportingLocation sets the time zone whose midnight starts the daily window.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		s.location = loc
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	accountRepo portsrepo.AccountReader,
	txnRepo portsrepo.TransactionReader,
	reportingRepo portsrepo.ReportingRepository,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		BaseService:   newBaseService(),
		accountRepo:   accountRepo,
		txnRepo:       txnRepo,
		reportingRepo: reportingRepo,
		limits:        domain.DefaultLimits(),
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TopAccounts lists the accounts with the most incoming movements
func (s *reportingService) TopAccounts(ctx context.Context, caller domain.Caller) ([]domain.TopAccount, error) {
	if err := s.AuthorizeRole(ctx, caller, "top accounts", domain.RoleAdmin); err != nil {
		return nil, err
	}

	aggregates, err := s.txnRepo.AggregateByDestination(ctx, s.limits.TopAccountsLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate movements by destination")
		return nil, fmt.Errorf("failed to aggregate movements: %w", err)
	}

	ids := make([]string, len(aggregates))
	for i, agg := range aggregates {
		ids[i] = agg.AccountID
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for top accounts report")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	rows := make([]domain.TopAccount, 0, len(aggregates))
	for _, agg := range aggregates {
		account, ok := accounts[agg.AccountID]
		if !ok {
			continue
		}
		rows = append(rows, domain.TopAccount{
			AccountID:        agg.AccountID,
			AccountNumber:    account.AccountNumber,
			OwnerID:          account.OwnerID,
			Balance:          account.Balance,
			TransactionCount: agg.TransactionCount,
			TotalAmount:      agg.TotalAmount,
		})
	}

	s.LogInfo(ctx, "Top accounts report generated", slog.Int("row_count", len(rows)))
	return rows, nil
}

// RecentMovements lists the newest entries of an account
func (s *reportingService) RecentMovements(ctx context.Context, caller domain.Caller, accountID string, n int) ([]domain.Transaction, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeAccountAccess(ctx, caller, *account, "recent movements"); err != nil {
		return nil, err
	}

	if n <= 0 {
		n = s.limits.RecentMovementsDefault
	}
	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, account.AccountID, n)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent movements", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list recent movements: %w", err)
	}
	return txns, nil
}

// History lists every entry of the caller's account
func (s *reportingService) History(ctx context.Context, caller domain.Caller) ([]domain.HistoryEntry, error) {
	account, err := s.accountRepo.FindAccountByOwner(ctx, caller.OwnerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: caller has no account", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find caller account: %w", err)
	}

	entries, err := s.reportingRepo.ListHistoryByAccount(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list history", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	s.LogDebug(ctx, "History retrieved", slog.String("account_id", account.AccountID), slog.Int("entries", len(entries)))
	return entries, nil
}

// DailyTransferUsage reports the consumption of the daily transfer ceiling
func (s *reportingService) DailyTransferUsage(ctx context.Context, caller domain.Caller, accountID string) (*domain.DailyTransferUsage, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeAccountAccess(ctx, caller, *account, "daily transfer usage"); err != nil {
		return nil, err
	}

	from := s.StartOfDay(s.Now())
	to := from.AddDate(0, 0, 1)
	kind := domain.KindTransfer
	txns, err := s.txnRepo.ListTransactionsByAccountWithinRange(ctx, account.AccountID, &kind, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers of the day", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	usage := &domain.DailyTransferUsage{
		AccountID:   account.AccountID,
		WindowStart: from,
		Transferred: decimal.Zero,
		Limit:       s.limits.DailyTransferLimit,
	}
	for _, txn := range txns {
		if txn.Status != domain.StatusCompleted || txn.SourceAccountID != account.AccountID {
			continue
		}
		usage.TransferCount++
		usage.Transferred = usage.Transferred.Add(txn.Amount)
	}
	usage.Remaining = decimal.Max(usage.Limit.Sub(usage.Transferred), decimal.Zero)
	return usage, nil
}

// ReconcileAccount recomputes an account balance from the ledger log
func (s *reportingService) ReconcileAccount(ctx context.Context, caller domain.Caller, accountID string) (*domain.AccountReconciliation, error) {
	if err := s.AuthorizeRole(ctx, caller, "reconcile account", domain.RoleAdmin); err != nil {
		return nil, err
	}
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, account.AccountID, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements for reconciliation", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	ledgerBalance, counted := accounting.DeriveBalance(txns, account.AccountID)
	result := &domain.AccountReconciliation{
		AccountID:      account.AccountID,
		AccountNumber:  account.AccountNumber,
		StoredBalance:  account.Balance,
		LedgerBalance:  ledgerBalance,
		Difference:     account.Balance.Sub(ledgerBalance),
		EntriesCounted: counted,
		Exempt:         account.IsVault(),
	}

	if !result.IsBalanced() {
		s.LogError(ctx, errors.New("stored balance differs from ledger"), "Account out of balance",
			slog.String("account_id", account.AccountID),
			slog.String("stored", account.Balance.String()),
			slog.String("ledger", ledgerBalance.String()))
	}
	return result, nil
}

func (s *reportingService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}
