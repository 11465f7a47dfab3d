package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// ProductSvcFacade exposes the read-only product catalog
type ProductSvcFacade interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error)
}
