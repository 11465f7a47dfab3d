package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	OwnerID       string          `json:"ownerID" binding:"required,max=255"`
	DPI           string          `json:"dpi" binding:"required,dpi"`
	Address       string          `json:"address" binding:"required,max=255"`
	Phone         string          `json:"phone" binding:"required,max=32"`
	JobName       string          `json:"jobName" binding:"required,max=120"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome" binding:"money"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	OwnerID       string          `json:"ownerID"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	DPI           string          `json:"dpi"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	JobName       string          `json:"jobName"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		OwnerID:       acc.OwnerID,
		AccountNumber: acc.AccountNumber,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		DPI:           acc.DPI,
		Address:       acc.Address,
		Phone:         acc.Phone,
		JobName:       acc.JobName,
		MonthlyIncome: acc.MonthlyIncome,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountBalancesResponse is the multi-currency view of the caller's balance.
type AccountBalancesResponse struct {
	AccountNumber string                     `json:"accountNumber"`
	BaseCurrency  string                     `json:"baseCurrency"`
	Balance       decimal.Decimal            `json:"balance"`
	Converted     map[string]decimal.Decimal `json:"converted"`
}

// ToAccountBalancesResponse flattens the converted balances into a currency keyed map.
func ToAccountBalancesResponse(b *domain.AccountBalances) AccountBalancesResponse {
	converted := make(map[string]decimal.Decimal, len(b.Converted))
	for _, cb := range b.Converted {
		converted[cb.Currency] = cb.Amount
	}
	return AccountBalancesResponse{
		AccountNumber: b.AccountNumber,
		BaseCurrency:  b.BaseCurrency,
		Balance:       b.Balance,
		Converted:     converted,
	}
}
