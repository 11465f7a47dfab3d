package domain

import "github.com/shopspring/decimal"

// ProductType distinguishes goods from services in the catalog.
type ProductType string

const (
	ProductTypeProduct ProductType = "PRODUCT"
	ProductTypeService ProductType = "SERVICE"
)

// Product is a catalog item that can be paid for from an account.
type Product struct {
	ProductID   string          `json:"productID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        ProductType     `json:"type"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}
