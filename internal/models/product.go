package models

import "github.com/shopspring/decimal"

// Product is the row stored in the products table.
type Product struct {
	ProductID   string          `db:"product_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Type        string          `db:"product_type"`
	Price       decimal.Decimal `db:"price"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
