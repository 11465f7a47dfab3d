package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// VaultAccountNumber is the reserved number of the bank's own account, the nominal source of deposits.
	VaultAccountNumber = "0000000000"
	// VaultOwnerID is the owner reference of the vault account.
	VaultOwnerID = "BANK_ACCOUNT"
	// AccountNumberLength is the number of digits of every account number.
	AccountNumberLength = 10
	// DPILength is the number of digits of the personal identification document.
	DPILength = 13
)

var (
	// VaultSeedBalance is the balance the vault account is created with.
	VaultSeedBalance = decimal.NewFromInt(999999999)
	// MinMonthlyIncome is the lowest monthly income an account holder may declare.
	MinMonthlyIncome = decimal.NewFromInt(100)
)

// Account represents a customer's monetary account within the core domain.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	OwnerID       string          `json:"ownerID"`       // External owner reference, unique
	AccountNumber string          `json:"accountNumber"` // 10 digit customer facing number, unique
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	DPI           string          `json:"dpi"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	JobName       string          `json:"jobName"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	AuditFields
}

// IsVault reports whether the account is the bank's vault.
func (a Account) IsVault() bool {
	return a.AccountNumber == VaultAccountNumber
}

// CanCover reports whether the balance can absorb a debit of amount.
func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
