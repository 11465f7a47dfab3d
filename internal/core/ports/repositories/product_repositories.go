package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// ProductReader defines read operations over the product catalog
type ProductReader interface {
	// FindProductByID retrieves a catalog item by id.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves catalog items ordered by name.
	ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error)
}
