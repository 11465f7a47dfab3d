package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		Type:        domain.ProductType(m.Type),
		Price:       m.Price,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFavorite converts a domain Favorite to a model Favorite
func ToModelFavorite(d domain.Favorite) models.Favorite {
	return models.Favorite{
		FavoriteID:    d.FavoriteID,
		OwnerID:       d.OwnerID,
		AccountNumber: d.AccountNumber,
		Alias:         d.Alias,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFavorite converts a model Favorite to a domain Favorite
func ToDomainFavorite(m models.Favorite) domain.Favorite {
	return domain.Favorite{
		FavoriteID:    m.FavoriteID,
		OwnerID:       m.OwnerID,
		AccountNumber: m.AccountNumber,
		Alias:         m.Alias,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
