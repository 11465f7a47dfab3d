package models

import "github.com/shopspring/decimal"

// Transaction is the row stored in the transactions table.
// Nullable columns are pointers.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	SourceAccountID      string          `db:"source_account_id"`
	DestinationAccountID *string         `db:"destination_account_id"`
	Kind                 string          `db:"kind"`
	Amount               decimal.Decimal `db:"amount"`
	ProductID            *string         `db:"product_id"`
	Description          string          `db:"description"`
	Status               string          `db:"status"`
	AuditFields
}
