package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
)

// MovementWriterSvc defines the operations that create ledger entries
type MovementWriterSvc interface {
	// Transfer moves funds between two customer accounts owned by different parties.
	Transfer(ctx context.Context, caller domain.Caller, req dto.TransferRequest) (*domain.Transaction, error)

	// TransferToFavorite transfers from the caller's account to a favorite saved under an alias.
	TransferToFavorite(ctx context.Context, caller domain.Caller, req dto.FavoriteTransferRequest) (*domain.Transaction, error)

	// Deposit credits a customer account from the vault.
	Deposit(ctx context.Context, caller domain.Caller, req dto.DepositRequest) (*domain.Transaction, error)

	// Payment debits the product price from a customer account.
	Payment(ctx context.Context, caller domain.Caller, req dto.PaymentRequest) (*domain.Transaction, error)
}

// DepositAdjusterSvc defines the operations that rewrite an existing deposit
type DepositAdjusterSvc interface {
	// EditDeposit replaces the amount of a deposit and applies the difference to the destination.
	EditDeposit(ctx context.Context, caller domain.Caller, transactionID string, req dto.EditDepositRequest) (*domain.BalanceChange, error)

	// ReverseDeposit undoes a deposit made within the reversal window.
	ReverseDeposit(ctx context.Context, caller domain.Caller, transactionID string) (*domain.BalanceChange, error)
}

// MovementSvcFacade combines all movement-related service interfaces
// This is a facade for clients that need access to all operations
type MovementSvcFacade interface {
	MovementWriterSvc
	DepositAdjusterSvc
}
