package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DestinationAggregate is the raw grouping of ledger entries by destination account.
type DestinationAggregate struct {
	AccountID        string          `json:"accountID"`
	TransactionCount int             `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}

// TopAccount is one row of the most-credited accounts report.
type TopAccount struct {
	AccountID        string          `json:"accountID"`
	AccountNumber    string          `json:"accountNumber"`
	OwnerID          string          `json:"ownerID"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}

// HistoryEntry is a ledger entry with its related references resolved.
type HistoryEntry struct {
	Transaction
	SourceAccountNumber      string  `json:"sourceAccountNumber"`
	DestinationAccountNumber *string `json:"destinationAccountNumber,omitempty"`
	ProductName              *string `json:"productName,omitempty"`
}

// AccountReconciliation compares the stored balance of an account with the balance derived from the log.
type AccountReconciliation struct {
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"`
	StoredBalance  decimal.Decimal `json:"storedBalance"`
	LedgerBalance  decimal.Decimal `json:"ledgerBalance"`
	Difference     decimal.Decimal `json:"difference"`
	EntriesCounted int             `json:"entriesCounted"`
	Exempt         bool            `json:"exempt"` // vault balances are not derived from the log
}

// IsBalanced reports whether stored and derived balances agree.
func (r AccountReconciliation) IsBalanced() bool {
	return r.Exempt || r.Difference.IsZero()
}

// CurrencyBalance is an account balance expressed in another currency.
type CurrencyBalance struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// AccountBalances is the multi-currency view of an account.
type AccountBalances struct {
	AccountNumber string            `json:"accountNumber"`
	BaseCurrency  string            `json:"baseCurrency"`
	Balance       decimal.Decimal   `json:"balance"`
	Converted     []CurrencyBalance `json:"converted"`
}

// DailyTransferUsage reports how much of the daily transfer ceiling an account has consumed.
type DailyTransferUsage struct {
	AccountID     string          `json:"accountID"`
	WindowStart   time.Time       `json:"windowStart"`
	TransferCount int             `json:"transferCount"`
	Transferred   decimal.Decimal `json:"transferred"`
	Limit         decimal.Decimal `json:"limit"`
	Remaining     decimal.Decimal `json:"remaining"`
}
