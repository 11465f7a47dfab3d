package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductReader
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductReader) portssvc.ProductSvcFacade {
	return &productService{BaseService: newBaseService(), productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
