package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		OwnerID:       d.OwnerID,
		AccountNumber: d.AccountNumber,
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		DPI:           d.DPI,
		Address:       d.Address,
		Phone:         d.Phone,
		JobName:       d.JobName,
		MonthlyIncome: d.MonthlyIncome,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		OwnerID:       m.OwnerID,
		AccountNumber: m.AccountNumber,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		DPI:           m.DPI,
		Address:       m.Address,
		Phone:         m.Phone,
		JobName:       m.JobName,
		MonthlyIncome: m.MonthlyIncome,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
