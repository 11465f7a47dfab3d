package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        d.TransactionID,
		SourceAccountID:      d.SourceAccountID,
		DestinationAccountID: d.DestinationAccountID,
		Kind:                 string(d.Kind),
		Amount:               d.Amount,
		ProductID:            d.ProductID,
		Description:          d.Description,
		Status:               string(d.Status),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: m.DestinationAccountID,
		Kind:                 domain.TransactionKind(m.Kind),
		Amount:               m.Amount,
		ProductID:            m.ProductID,
		Description:          m.Description,
		Status:               domain.TransactionStatus(m.Status),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
