package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementEventType names what happened to a ledger entry.
type MovementEventType string

const (
	EventMovementCompleted MovementEventType = "movement.completed"
	EventDepositEdited     MovementEventType = "deposit.edited"
	EventDepositReversed   MovementEventType = "deposit.reversed"
)

// MovementEvent is published after a movement has been committed.
type MovementEvent struct {
	Type                 MovementEventType `json:"type"`
	TransactionID        string            `json:"transactionID"`
	Kind                 TransactionKind   `json:"kind"`
	Amount               decimal.Decimal   `json:"amount"`
	SourceAccountID      string            `json:"sourceAccountID"`
	DestinationAccountID *string           `json:"destinationAccountID,omitempty"`
	Status               TransactionStatus `json:"status"`
	OccurredAt           time.Time         `json:"occurredAt"`
}

// NewMovementEvent builds the event describing the committed state of txn.
func NewMovementEvent(eventType MovementEventType, txn Transaction, occurredAt time.Time) MovementEvent {
	return MovementEvent{
		Type:                 eventType,
		TransactionID:        txn.TransactionID,
		Kind:                 txn.Kind,
		Amount:               txn.Amount,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Status:               txn.Status,
		OccurredAt:           occurredAt,
	}
}
