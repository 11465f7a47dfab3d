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

const (
	defaultTransferDescription = "Transfer between users"
	defaultDepositDescription  = "Cash deposit"
	paymentDescriptionPrefix   = "Payment for product: "
	favoriteDescriptionPrefix  = "Transfer to favorite: "
)

// movementService applies the movement rules to the account store and ledger log.
type movementService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	productRepo  portsrepo.ProductReader
	favoriteRepo portsrepo.FavoriteReader
	ledger       portsrepo.LedgerTxRunner
	publisher    portssvc.EventPublisher
	limits       domain.Limits
}

// MovementServiceOption is a functional option for configuring the movement service
type MovementServiceOption func(*movementService)

// WithMovementLimits overrides the default business limits.
func WithMovementLimits(limits domain.Limits) MovementServiceOption {
	return func(s *movementService) {
		s.limits = limits
	}
}

// WithMovementClock sets the clock used for entry timestamps and window checks.
func WithMovementClock(clock func() time.Time) MovementServiceOption {
	return func(s *movementService) {
		s.clock = clock
	}
}

// WithMovementLocation sets the time zone whose midnight starts the daily transfer window.
func WithMovementLocation(loc *time.Location) MovementServiceOption {
	return func(s *movementService) {
		s.location = loc
	}
}

// WithMovementEventPublisher publishes an event after each committed movement.
func WithMovementEventPublisher(publisher portssvc.EventPublisher) MovementServiceOption {
	return func(s *movementService) {
		s.publisher = publisher
	}
}

// NewMovementService creates a new movement service with the provided options
func NewMovementService(
	accountRepo portsrepo.AccountReader,
	productRepo portsrepo.ProductReader,
	favoriteRepo portsrepo.FavoriteReader,
	ledger portsrepo.LedgerTxRunner,
	options ...MovementServiceOption,
) portssvc.MovementSvcFacade {
	svc := &movementService{
		BaseService:  newBaseService(),
		accountRepo:  accountRepo,
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		ledger:       ledger,
		limits:       domain.DefaultLimits(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure movementService implements the MovementSvcFacade interface
var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// Transfer implements portssvc.MovementWriterSvc
func (s *movementService) Transfer(ctx context.Context, caller domain.Caller, req dto.TransferRequest) (*domain.Transaction, error) {
	if err := s.AuthorizeRole(ctx, caller, "transfer", domain.RoleUser); err != nil {
		return nil, err
	}

	source, err := s.findAccountByNumber(ctx, req.FromAccountNumber, "source")
	if err != nil {
		return nil, err
	}
	if !caller.Owns(*source) {
		return nil, fmt.Errorf("%w: caller does not own account %s", apperrors.ErrForbidden, source.AccountNumber)
	}

	destination, err := s.findAccountByNumber(ctx, req.ToAccountNumber, "destination")
	if err != nil {
		return nil, err
	}

	return s.transfer(ctx, caller, *source, *destination, req.Amount, descriptionOrDefault(req.Description, defaultTransferDescription))
}

// TransferToFavorite implements portssvc.MovementWriterSvc
func (s *movementService) TransferToFavorite(ctx context.Context, caller domain.Caller, req dto.FavoriteTransferRequest) (*domain.Transaction, error) {
	if err := s.AuthorizeRole(ctx, caller, "transfer to favorite", domain.RoleUser); err != nil {
		return nil, err
	}

	alias := strings.TrimSpace(req.Alias)
	favorite, err := s.favoriteRepo.FindFavoriteByAlias(ctx, caller.OwnerID, alias)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: favorite '%s' not found", apperrors.ErrNotFound, alias)
		}
		return nil, fmt.Errorf("failed to find favorite '%s': %w", alias, err)
	}

	source, err := s.accountRepo.FindAccountByOwner(ctx, caller.OwnerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: caller has no account", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find caller account: %w", err)
	}

	destination, err := s.findAccountByNumber(ctx, favorite.AccountNumber, "favorite")
	if err != nil {
		return nil, err
	}

	return s.transfer(ctx, caller, *source, *destination, req.Amount, descriptionOrDefault(req.Description, favoriteDescriptionPrefix+favorite.Alias))
}

// transfer runs the shared transfer rules once both accounts are resolved.
// Balance and daily window are evaluated only after both accounts are locked.
func (s *movementService) transfer(ctx context.Context, caller domain.Caller, source, destination domain.Account, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if source.AccountID == destination.AccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}
	if destination.IsVault() {
		return nil, fmt.Errorf("%w: transfers to the vault account are not allowed", apperrors.ErrValidation)
	}
	if err := s.validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := s.Now()
	destinationID := destination.AccountID
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      source.AccountID,
		DestinationAccountID: &destinationID,
		Kind:                 domain.KindTransfer,
		Amount:               amount,
		Description:          description,
		Status:               domain.StatusCompleted,
		AuditFields:          auditFields(now, caller.OwnerID),
	}

	windowStart := s.StartOfDay(now)
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.MovementTx) error {
		locked, err := tx.LockAccounts(ctx, source.AccountID, destination.AccountID)
		if err != nil {
			return err
		}
		src, dst := locked[source.AccountID], locked[destination.AccountID]
		if err := requireActive(src, dst); err != nil {
			return err
		}
		if !src.CanCover(amount) {
			return fmt.Errorf("%w: balance %s is lower than %s", apperrors.ErrInsufficientFunds, utils.FormatMoney(src.Balance), utils.FormatMoney(amount))
		}

		transferredToday, err := tx.SumTransfersSince(ctx, src.AccountID, windowStart)
		if err != nil {
			return err
		}
		if transferredToday.Add(amount).GreaterThan(s.limits.DailyTransferLimit) {
			remaining := decimal.Max(s.limits.DailyTransferLimit.Sub(transferredToday), decimal.Zero)
			return fmt.Errorf("%w: transferred today %s, remaining %s of %s",
				apperrors.ErrLimitExceeded, utils.FormatMoney(transferredToday), utils.FormatMoney(remaining), utils.FormatMoney(s.limits.DailyTransferLimit))
		}

		if err := tx.AppendTransaction(ctx, txn); err != nil {
			return err
		}
		if _, err := tx.AdjustBalance(ctx, src.AccountID, amount.Neg(), now); err != nil {
			return err
		}
		_, err = tx.AdjustBalance(ctx, dst.AccountID, amount, now)
		return err
	})
	if err != nil {
		s.logRejected(ctx, err, "Transfer rejected",
			slog.String("source_account_id", source.AccountID),
			slog.String("destination_account_id", destination.AccountID),
			slog.String("amount", amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("source_account_id", source.AccountID),
		slog.String("destination_account_id", destination.AccountID),
		slog.String("amount", amount.String()))
	s.publish(ctx, domain.EventMovementCompleted, txn, now)
	return &txn, nil
}

// Deposit implements portssvc.MovementWriterSvc
func (s *movementService) Deposit(ctx context.Context, caller domain.Caller, req dto.DepositRequest) (*domain.Transaction, error) {
	if err := s.AuthorizeRole(ctx, caller, "deposit", domain.RoleAdmin); err != nil {
		return nil, err
	}

	vault, err := s.findAccountByNumber(ctx, domain.VaultAccountNumber, "vault")
	if err != nil {
		return nil, err
	}
	destination, err := s.findAccountByNumber(ctx, req.ToAccountNumber, "destination")
	if err != nil {
		return nil, err
	}
	if destination.IsVault() {
		return nil, fmt.Errorf("%w: deposits into the vault account are not allowed", apperrors.ErrValidation)
	}
	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}
	description := descriptionOrDefault(req.Description, defaultDepositDescription)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := s.Now()
	destinationID := destination.AccountID
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      vault.AccountID,
		DestinationAccountID: &destinationID,
		Kind:                 domain.KindDeposit,
		Amount:               req.Amount,
		Description:          description,
		Status:               domain.StatusCompleted,
		AuditFields:          auditFields(now, caller.OwnerID),
	}

	// The vault is the nominal source only; its balance is left untouched.
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.MovementTx) error {
		locked, err := tx.LockAccounts(ctx, destination.AccountID)
		if err != nil {
			return err
		}
		if err := requireActive(locked[destination.AccountID]); err != nil {
			return err
		}
		if err := tx.AppendTransaction(ctx, txn); err != nil {
			return err
		}
		_, err = tx.AdjustBalance(ctx, destination.AccountID, req.Amount, now)
		return err
	})
	if err != nil {
		s.logRejected(ctx, err, "Deposit rejected",
			slog.String("destination_account_id", destination.AccountID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("destination_account_id", destination.AccountID),
		slog.String("amount", req.Amount.String()))
	s.publish(ctx, domain.EventMovementCompleted, txn, now)
	return &txn, nil
}

// Payment implements portssvc.MovementWriterSvc
func (s *movementService) Payment(ctx context.Context, caller domain.Caller, req dto.PaymentRequest) (*domain.Transaction, error) {
	if err := s.AuthorizeRole(ctx, caller, "payment", domain.RoleUser); err != nil {
		return nil, err
	}

	source, err := s.findAccountByNumber(ctx, req.FromAccountNumber, "source")
	if err != nil {
		return nil, err
	}
	if !caller.Owns(*source) {
		return nil, fmt.Errorf("%w: caller does not own account %s", apperrors.ErrForbidden, source.AccountNumber)
	}

	product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("failed to find product %s: %w", req.ProductID, err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is not available", apperrors.ErrInvalidState, product.ProductID)
	}
	amount := product.Price
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: product %s has no price", apperrors.ErrInvalidState, product.ProductID)
	}
	if err := s.validateAmount(amount); err != nil {
		return nil, fmt.Errorf("product %s price: %w", product.ProductID, err)
	}

	now := s.Now()
	productID := product.ProductID
	description := paymentDescriptionPrefix + product.Name
	if len([]rune(description)) > domain.MaxDescriptionLength {
		description = string([]rune(description)[:domain.MaxDescriptionLength])
	}
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		SourceAccountID: source.AccountID,
		Kind:            domain.KindPayment,
		Amount:          amount,
		ProductID:       &productID,
		Description:     description,
		Status:          domain.StatusCompleted,
		AuditFields:     auditFields(now, caller.OwnerID),
	}

	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.MovementTx) error {
		locked, err := tx.LockAccounts(ctx, source.AccountID)
		if err != nil {
			return err
		}
		src := locked[source.AccountID]
		if err := requireActive(src); err != nil {
			return err
		}
		if !src.CanCover(amount) {
			return fmt.Errorf("%w: balance %s is lower than price %s", apperrors.ErrInsufficientFunds, utils.FormatMoney(src.Balance), utils.FormatMoney(amount))
		}
		if err := tx.AppendTransaction(ctx, txn); err != nil {
			return err
		}
		_, err = tx.AdjustBalance(ctx, src.AccountID, amount.Neg(), now)
		return err
	})
	if err != nil {
		s.logRejected(ctx, err, "Payment rejected",
			slog.String("source_account_id", source.AccountID),
			slog.String("product_id", product.ProductID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("source_account_id", source.AccountID),
		slog.String("product_id", product.ProductID),
		slog.String("amount", amount.String()))
	s.publish(ctx, domain.EventMovementCompleted, txn, now)
	return &txn, nil
}

// EditDeposit implements portssvc.DepositAdjusterSvc
func (s *movementService) EditDeposit(ctx context.Context, caller domain.Caller, transactionID string, req dto.EditDepositRequest) (*domain.BalanceChange, error) {
	if err := s.AuthorizeRole(ctx, caller, "edit deposit", domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}

	now := s.Now()
	var change domain.BalanceChange
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.MovementTx) error {
		txn, err := s.lockDeposit(ctx, tx, transactionID)
		if err != nil {
			return err
		}

		destinationID := txn.DestinationID()
		locked, err := tx.LockAccounts(ctx, destinationID)
		if err != nil {
			return err
		}

		delta := req.Amount.Sub(txn.Amount)
		if delta.IsNegative() && locked[destinationID].Balance.Add(delta).IsNegative() {
			return fmt.Errorf("%w: destination balance %s can not absorb a reduction of %s",
				apperrors.ErrInsufficientFunds, utils.FormatMoney(locked[destinationID].Balance), utils.FormatMoney(delta.Neg()))
		}

		newBalance, err := tx.AdjustBalance(ctx, destinationID, delta, now)
		if err != nil {
			return err
		}

		txn.Amount = req.Amount
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = caller.OwnerID
		if err := tx.UpdateTransaction(ctx, *txn); err != nil {
			return err
		}

		change = domain.BalanceChange{Transaction: *txn, AccountID: destinationID, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		s.logRejected(ctx, err, "Deposit edit rejected",
			slog.String("transaction_id", transactionID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit edited",
		slog.String("transaction_id", transactionID),
		slog.String("amount", req.Amount.String()),
		slog.String("new_balance", change.NewBalance.String()))
	s.publish(ctx, domain.EventDepositEdited, change.Transaction, now)
	return &change, nil
}

// ReverseDeposit implements portssvc.DepositAdjusterSvc
func (s *movementService) ReverseDeposit(ctx context.Context, caller domain.Caller, transactionID string) (*domain.BalanceChange, error) {
	if err := s.AuthorizeRole(ctx, caller, "reverse deposit", domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := s.Now()
	var change domain.BalanceChange
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.MovementTx) error {
		txn, err := s.lockDeposit(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if !txn.WithinReversalWindow(now, s.limits.ReversalWindow) {
			return fmt.Errorf("%w: deposit %s is older than %s", apperrors.ErrWindowExpired, txn.TransactionID, s.limits.ReversalWindow)
		}

		destinationID := txn.DestinationID()
		locked, err := tx.LockAccounts(ctx, destinationID)
		if err != nil {
			return err
		}
		if !locked[destinationID].CanCover(txn.Amount) {
			return fmt.Errorf("%w: destination balance %s is lower than deposit %s",
				apperrors.ErrInsufficientFunds, utils.FormatMoney(locked[destinationID].Balance), utils.FormatMoney(txn.Amount))
		}

		newBalance, err := tx.AdjustBalance(ctx, destinationID, txn.Amount.Neg(), now)
		if err != nil {
			return err
		}

		txn.Status = domain.StatusReversed
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = caller.OwnerID
		if err := tx.UpdateTransaction(ctx, *txn); err != nil {
			return err
		}

		change = domain.BalanceChange{Transaction: *txn, AccountID: destinationID, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		s.logRejected(ctx, err, "Deposit reversal rejected", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit reversed",
		slog.String("transaction_id", transactionID),
		slog.String("new_balance", change.NewBalance.String()))
	s.publish(ctx, domain.EventDepositReversed, change.Transaction, now)
	return &change, nil
}

// lockDeposit loads a ledger entry for update and checks that it is a deposit that was not reversed.
func (s *movementService) lockDeposit(ctx context.Context, tx portsrepo.MovementTx, transactionID string) (*domain.Transaction, error) {
	txn, err := tx.FindTransactionForUpdate(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s not found", apperrors.ErrNotFound, transactionID)
		}
		return nil, err
	}
	if txn.Kind != domain.KindDeposit {
		return nil, fmt.Errorf("%w: transaction %s is a %s, only deposits can be changed", apperrors.ErrInvalidState, txn.TransactionID, txn.Kind)
	}
	if txn.IsReversed() {
		return nil, fmt.Errorf("%w: deposit %s is already reversed", apperrors.ErrInvalidState, txn.TransactionID)
	}
	return txn, nil
}

func (s *movementService) findAccountByNumber(ctx context.Context, accountNumber string, role string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s account %s not found", apperrors.ErrNotFound, role, accountNumber)
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_number", accountNumber))
		return nil, fmt.Errorf("failed to find %s account %s: %w", role, accountNumber, err)
	}
	return account, nil
}

func (s *movementService) validateAmount(amount decimal.Decimal) error {
	if !utils.HasMoneyPrecision(amount) {
		return fmt.Errorf("%w: amount %s has more than %d decimals", apperrors.ErrValidation, amount.String(), utils.MoneyPrecision)
	}
	if !s.limits.AmountInRange(amount) {
		return fmt.Errorf("%w: amount must be between %s and %s", apperrors.ErrValidation,
			utils.FormatMoney(s.limits.MinMovementAmount), utils.FormatMoney(s.limits.MaxMovementAmount))
	}
	return nil
}

func (s *movementService) publish(ctx context.Context, eventType domain.MovementEventType, txn domain.Transaction, now time.Time) {
	if s.publisher == nil {
		return
	}
	// The movement is committed; a lost event is logged, never rolled back.
	if err := s.publisher.Publish(ctx, domain.NewMovementEvent(eventType, txn, now)); err != nil {
		s.LogError(ctx, err, "Failed to publish movement event",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("event_type", string(eventType)))
	}
}

// logRejected logs business rejections as warnings and everything else as errors.
func (s *movementService) logRejected(ctx context.Context, err error, msg string, keyvals ...any) {
	if isBusinessError(err) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrValidation,
		apperrors.ErrInvalidState,
		apperrors.ErrInsufficientFunds,
		apperrors.ErrLimitExceeded,
		apperrors.ErrWindowExpired,
		apperrors.ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func requireActive(accounts ...domain.Account) error {
	for _, account := range accounts {
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidState, account.AccountNumber)
		}
	}
	return nil
}

func validateDescription(description string) error {
	if len([]rune(description)) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", apperrors.ErrValidation, domain.MaxDescriptionLength)
	}
	return nil
}

func descriptionOrDefault(description, fallback string) string {
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		return trimmed
	}
	return fallback
}

func auditFields(now time.Time, userID string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
