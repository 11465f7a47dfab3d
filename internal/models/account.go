package models

import (
	"github.com/shopspring/decimal"
)

// Account is the row stored in the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	OwnerID       string          `db:"owner_id"`
	AccountNumber string          `db:"account_number"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	DPI           string          `db:"dpi"`
	Address       string          `db:"address"`
	Phone         string          `db:"phone"`
	JobName       string          `db:"job_name"`
	MonthlyIncome decimal.Decimal `db:"monthly_income"`
	AuditFields
}
