package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// EventPublisher delivers movement events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.MovementEvent) error
}
