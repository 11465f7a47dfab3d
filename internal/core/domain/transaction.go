package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the kind of monetary movement recorded by a ledger entry.
type TransactionKind string

const (
	KindTransfer TransactionKind = "TRANSFER"
	KindDeposit  TransactionKind = "DEPOSIT"
	KindPayment  TransactionKind = "PAYMENT"
)

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusReversed  TransactionStatus = "REVERSED"
)

// MaxDescriptionLength bounds the free text stored with a movement.
const MaxDescriptionLength = 255

// Transaction is one immutable-by-default record of the ledger log.
type Transaction struct {
	TransactionID        string            `json:"transactionID"`
	SourceAccountID      string            `json:"sourceAccountID"`
	DestinationAccountID *string           `json:"destinationAccountID,omitempty"` // nil for payments
	Kind                 TransactionKind   `json:"kind"`
	Amount               decimal.Decimal   `json:"amount"`
	ProductID            *string           `json:"productID,omitempty"` // payments only
	Description          string            `json:"description"`
	Status               TransactionStatus `json:"status"`
	AuditFields
}

// DestinationID returns the destination account id or an empty string for payments.
func (t Transaction) DestinationID() string {
	if t.DestinationAccountID == nil {
		return ""
	}
	return *t.DestinationAccountID
}

// Involves reports whether the account is the source or the destination of the entry.
func (t Transaction) Involves(accountID string) bool {
	return t.SourceAccountID == accountID || (t.DestinationAccountID != nil && *t.DestinationAccountID == accountID)
}

// IsReversed reports whether the entry has been reversed.
func (t Transaction) IsReversed() bool {
	return t.Status == StatusReversed
}

// WithinReversalWindow reports whether now is no later than window after the entry was created.
func (t Transaction) WithinReversalWindow(now time.Time, window time.Duration) bool {
	return now.Sub(t.CreatedAt) <= window
}

// Validate checks the structural rules every ledger entry must satisfy.
func (t Transaction) Validate() error {
	if t.SourceAccountID == "" {
		return fmt.Errorf("source account is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if len([]rune(t.Description)) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	switch t.Kind {
	case KindTransfer, KindDeposit:
		if t.DestinationAccountID == nil {
			return fmt.Errorf("destination account is required for %s", t.Kind)
		}
		if t.ProductID != nil {
			return fmt.Errorf("product is only allowed for %s", KindPayment)
		}
	case KindPayment:
		if t.DestinationAccountID != nil {
			return fmt.Errorf("payments have no destination account")
		}
		if t.ProductID == nil {
			return fmt.Errorf("product is required for %s", KindPayment)
		}
	default:
		return fmt.Errorf("unknown transaction kind '%s'", t.Kind)
	}
	return nil
}

// BalanceChange is the outcome of an operation that rewrites an existing ledger entry.
type BalanceChange struct {
	Transaction Transaction     `json:"transaction"`
	AccountID   string          `json:"accountID"`
	NewBalance  decimal.Decimal `json:"newBalance"`
}
