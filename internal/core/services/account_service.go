package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
)

// maxAccountNumberAttempts bounds the retries when a generated number is already taken.
const maxAccountNumberAttempts = 5

// DefaultBalanceCurrencies are the currencies the caller's balance is converted into.
var DefaultBalanceCurrencies = []string{"USD", "EUR", "MXN", "RUB", "JPY", "GBP", "CHF", "CNY", "BTC"}

// accountService handles opening, lookup and status of accounts.
type accountService struct {
	BaseService
	accountRepo       portsrepo.AccountRepositoryFacade
	exchangeRateSvc   portssvc.ExchangeRateSvcFacade
	numberGenerator   func() (string, error)
	balanceCurrencies []string
	baseCurrency      string
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithExchangeRateService enables the multi-currency balance view.
func WithExchangeRateService(svc portssvc.ExchangeRateSvcFacade, baseCurrency string) AccountServiceOption {
	return func(s *accountService) {
		s.exchangeRateSvc = svc
		s.baseCurrency = baseCurrency
	}
}

// WithAccountNumberGenerator replaces the random account number generator.
func WithAccountNumberGenerator(gen func() (string, error)) AccountServiceOption {
	return func(s *accountService) {
		s.numberGenerator = gen
	}
}

// WithAccountClock sets the clock used for audit timestamps.
func WithAccountClock(clock func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		BaseService:       newBaseService(),
		accountRepo:       accountRepo,
		numberGenerator:   utils.GenerateAccountNumber,
		balanceCurrencies: DefaultBalanceCurrencies,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount implements portssvc.AccountWriterSvc
func (s *accountService) OpenAccount(ctx context.Context, caller domain.Caller, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.AuthorizeRole(ctx, caller, "open account", domain.RoleAdmin); err != nil {
		return nil, err
	}

	ownerID := strings.TrimSpace(req.OwnerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner reference is required", apperrors.ErrValidation)
	}
	if ownerID == domain.VaultOwnerID {
		return nil, fmt.Errorf("%w: owner reference %s is reserved", apperrors.ErrValidation, ownerID)
	}
	if !utils.IsDigits(req.DPI, domain.DPILength) {
		return nil, fmt.Errorf("%w: dpi must have exactly %d digits", apperrors.ErrValidation, domain.DPILength)
	}
	if req.MonthlyIncome.LessThan(domain.MinMonthlyIncome) {
		return nil, fmt.Errorf("%w: monthly income must be at least %s", apperrors.ErrValidation, domain.MinMonthlyIncome.String())
	}

	if _, err := s.accountRepo.FindAccountByOwner(ctx, ownerID); err == nil {
		return nil, fmt.Errorf("%w: owner %s already has an account", apperrors.ErrDuplicate, ownerID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	number, err := s.freeAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       ownerID,
		AccountNumber: number,
		Balance:       decimal.Zero,
		IsActive:      true,
		DPI:           req.DPI,
		Address:       strings.TrimSpace(req.Address),
		Phone:         strings.TrimSpace(req.Phone),
		JobName:       strings.TrimSpace(req.JobName),
		MonthlyIncome: req.MonthlyIncome,
		AuditFields:   auditFields(now, caller.OwnerID),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, err, "Account collided on save", slog.String("owner_id", ownerID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account opened",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("owner_id", ownerID))
	return &account, nil
}

// freeAccountNumber draws random numbers until one is unused.
func (s *accountService) freeAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number, err := s.numberGenerator()
		if err != nil {
			return "", fmt.Errorf("failed to generate account number: %w", err)
		}
		if number == domain.VaultAccountNumber || !utils.IsDigits(number, domain.AccountNumberLength) {
			continue
		}
		_, err = s.accountRepo.FindAccountByNumber(ctx, number)
		if errors.Is(err, apperrors.ErrNotFound) {
			return number, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check account number: %w", err)
		}
		s.LogDebug(ctx, "Generated account number already taken", slog.Int("attempt", attempt+1))
	}
	return "", fmt.Errorf("%w: could not allocate a free account number", apperrors.ErrInternal)
}

// GetMyAccount implements portssvc.AccountReaderSvc
func (s *accountService) GetMyAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByOwner(ctx, caller.OwnerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: caller has no account", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find caller account: %w", err)
	}
	return account, nil
}

// GetAccountByID implements portssvc.AccountReaderSvc
func (s *accountService) GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if err := s.AuthorizeAccountAccess(ctx, caller, *account, "get account"); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts implements portssvc.AccountReaderSvc
func (s *accountService) ListAccounts(ctx context.Context, caller domain.Caller) ([]domain.Account, error) {
	if err := s.AuthorizeRole(ctx, caller, "list accounts", domain.RoleAdmin); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// SetAccountStatus implements portssvc.AccountWriterSvc
func (s *accountService) SetAccountStatus(ctx context.Context, caller domain.Caller, accountID string, active bool) (*domain.Account, error) {
	if err := s.AuthorizeRole(ctx, caller, "set account status", domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsVault() && !active {
		return nil, fmt.Errorf("%w: the vault account can not be deactivated", apperrors.ErrValidation)
	}
	if account.IsActive == active {
		return account, nil
	}

	now := s.Now()
	if err := s.accountRepo.SetAccountActive(ctx, accountID, active, caller.OwnerID, now); err != nil {
		s.LogError(ctx, err, "Failed to update account status", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account status: %w", err)
	}

	account.IsActive = active
	account.LastUpdatedAt = now
	account.LastUpdatedBy = caller.OwnerID
	s.LogInfo(ctx, "Account status changed", slog.String("account_id", accountID), slog.Bool("active", active))
	return account, nil
}

// GetMyBalances implements portssvc.AccountReaderSvc
func (s *accountService) GetMyBalances(ctx context.Context, caller domain.Caller) (*domain.AccountBalances, error) {
	if s.exchangeRateSvc == nil {
		return nil, fmt.Errorf("%w: exchange rates are not configured", apperrors.ErrUnavailable)
	}
	account, err := s.GetMyAccount(ctx, caller)
	if err != nil {
		return nil, err
	}

	rates, err := s.exchangeRateSvc.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.AccountBalances{
		AccountNumber: account.AccountNumber,
		BaseCurrency:  s.baseCurrency,
		Balance:       account.Balance,
		Converted:     make([]domain.CurrencyBalance, 0, len(s.balanceCurrencies)),
	}
	for _, currency := range s.balanceCurrencies {
		rate, ok := rates.Rate(currency)
		if !ok {
			s.LogDebug(ctx, "No rate for currency", slog.String("currency", currency))
			continue
		}
		result.Converted = append(result.Converted, domain.CurrencyBalance{
			Currency: currency,
			Rate:     rate,
			Amount:   utils.RoundMoney(account.Balance.Mul(rate)),
		})
	}
	return result, nil
}

// EnsureVault implements portssvc.AccountBootstrapSvc
func (s *accountService) EnsureVault(ctx context.Context) (*domain.Account, error) {
	vault, err := s.accountRepo.FindAccountByNumber(ctx, domain.VaultAccountNumber)
	if err == nil {
		return vault, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up vault account: %w", err)
	}

	now := s.Now()
	seed := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       domain.VaultOwnerID,
		AccountNumber: domain.VaultAccountNumber,
		Balance:       domain.VaultSeedBalance,
		IsActive:      true,
		DPI:           strings.Repeat("0", domain.DPILength),
		Address:       "N/A",
		Phone:         "N/A",
		JobName:       "N/A",
		MonthlyIncome: domain.VaultSeedBalance,
		AuditFields:   auditFields(now, domain.VaultOwnerID),
	}
	if err := s.accountRepo.SaveAccount(ctx, seed); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Seeded concurrently by another instance
			return s.accountRepo.FindAccountByNumber(ctx, domain.VaultAccountNumber)
		}
		return nil, fmt.Errorf("failed to seed vault account: %w", err)
	}

	s.LogInfo(ctx, "Vault account seeded", slog.String("account_id", seed.AccountID))
	return &seed, nil
}
