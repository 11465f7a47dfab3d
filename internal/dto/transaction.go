package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest moves funds between two customer accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber" binding:"required,account_number"`
	ToAccountNumber   string          `json:"toAccountNumber" binding:"required,account_number"`
	Amount            decimal.Decimal `json:"amount" binding:"money"`
	Description       string          `json:"description" binding:"max=255"`
}

// DepositRequest credits a customer account from the vault.
type DepositRequest struct {
	ToAccountNumber string          `json:"toAccountNumber" binding:"required,account_number"`
	Amount          decimal.Decimal `json:"amount" binding:"money"`
	Description     string          `json:"description" binding:"max=255"`
}

// PaymentRequest pays a catalog product from a customer account.
type PaymentRequest struct {
	FromAccountNumber string `json:"fromAccountNumber" binding:"required,account_number"`
	ProductID         string `json:"productID" binding:"required"`
}

// EditDepositRequest replaces the amount of an existing deposit.
type EditDepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"money"`
}

// FavoriteTransferRequest transfers to an account saved under an alias.
type FavoriteTransferRequest struct {
	Alias       string          `json:"alias" binding:"required,max=50"`
	Amount      decimal.Decimal `json:"amount" binding:"money"`
	Description string          `json:"description" binding:"max=255"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID        string                   `json:"transactionID"`
	SourceAccountID      string                   `json:"sourceAccountID"`
	DestinationAccountID *string                  `json:"destinationAccountID,omitempty"`
	Kind                 domain.TransactionKind   `json:"kind"`
	Amount               decimal.Decimal          `json:"amount"`
	ProductID            *string                  `json:"productID,omitempty"`
	Description          string                   `json:"description"`
	Status               domain.TransactionStatus `json:"status"`
	CreatedAt            time.Time                `json:"createdAt"`
	CreatedBy            string                   `json:"createdBy"`
	LastUpdatedAt        time.Time                `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Kind:                 txn.Kind,
		Amount:               txn.Amount,
		ProductID:            txn.ProductID,
		Description:          txn.Description,
		Status:               txn.Status,
		CreatedAt:            txn.CreatedAt,
		CreatedBy:            txn.CreatedBy,
		LastUpdatedAt:        txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// BalanceChangeResponse is returned by deposit edits and reversals.
type BalanceChangeResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	AccountID   string              `json:"accountID"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// ToBalanceChangeResponse converts a domain.BalanceChange to its DTO
func ToBalanceChangeResponse(change *domain.BalanceChange) BalanceChangeResponse {
	return BalanceChangeResponse{
		Transaction: ToTransactionResponse(&change.Transaction),
		AccountID:   change.AccountID,
		NewBalance:  change.NewBalance,
	}
}

// RecentMovementsParams defines query parameters for the recent movements view.
type RecentMovementsParams struct {
	Limit int `form:"limit,default=0" binding:"min=0,max=100"`
}
