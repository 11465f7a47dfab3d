package accounting

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount returns the effect a ledger entry has on the balance of an account.
// Credits to the destination are positive, debits to the source negative.
// Reversed entries have no net effect: the reversal already undid the credit.
func CalculateSignedAmount(txn domain.Transaction, accountID string) decimal.Decimal {
	if txn.IsReversed() {
		return decimal.Zero
	}
	signed := decimal.Zero
	if txn.DestinationID() == accountID {
		signed = signed.Add(txn.Amount)
	}
	if txn.SourceAccountID == accountID {
		signed = signed.Sub(txn.Amount)
	}
	return signed
}

// DeriveBalance folds the ledger entries of an account into the balance they imply.
// It returns the balance and the number of entries that affected it.
func DeriveBalance(transactions []domain.Transaction, accountID string) (decimal.Decimal, int) {
	balance := decimal.Zero
	counted := 0
	for _, txn := range transactions {
		if !txn.Involves(accountID) || txn.IsReversed() {
			continue
		}
		balance = balance.Add(CalculateSignedAmount(txn, accountID))
		counted++
	}
	return balance, counted
}
