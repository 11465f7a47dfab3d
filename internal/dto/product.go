package dto

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductResponse defines the data returned for a catalog item.
type ProductResponse struct {
	ProductID   string             `json:"productID"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        domain.ProductType `json:"type"`
	Price       decimal.Decimal    `json:"price"`
	IsActive    bool               `json:"isActive"`
}

// ToListProductResponse converts catalog items to DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ProductResponse{
			ProductID:   p.ProductID,
			Name:        p.Name,
			Description: p.Description,
			Type:        p.Type,
			Price:       p.Price,
			IsActive:    p.IsActive,
		}
	}
	return res
}
