package dto

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TopAccountResponse is one row of the most-credited accounts report.
type TopAccountResponse struct {
	AccountID        string          `json:"accountID"`
	AccountNumber    string          `json:"accountNumber"`
	OwnerID          string          `json:"ownerID"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}

// ToTopAccountsResponse converts the report rows to DTOs
func ToTopAccountsResponse(rows []domain.TopAccount) []TopAccountResponse {
	res := make([]TopAccountResponse, len(rows))
	for i, row := range rows {
		res[i] = TopAccountResponse{
			AccountID:        row.AccountID,
			AccountNumber:    row.AccountNumber,
			OwnerID:          row.OwnerID,
			Balance:          row.Balance,
			TransactionCount: row.TransactionCount,
			TotalAmount:      row.TotalAmount,
		}
	}
	return res
}

// HistoryEntryResponse is a ledger entry with resolved references.
type HistoryEntryResponse struct {
	TransactionResponse
	SourceAccountNumber      string  `json:"sourceAccountNumber"`
	DestinationAccountNumber *string `json:"destinationAccountNumber,omitempty"`
	ProductName              *string `json:"productName,omitempty"`
}

// ToHistoryResponse converts history entries to DTOs
func ToHistoryResponse(entries []domain.HistoryEntry) []HistoryEntryResponse {
	res := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = HistoryEntryResponse{
			TransactionResponse:      ToTransactionResponse(&e.Transaction),
			SourceAccountNumber:      e.SourceAccountNumber,
			DestinationAccountNumber: e.DestinationAccountNumber,
			ProductName:              e.ProductName,
		}
	}
	return res
}
