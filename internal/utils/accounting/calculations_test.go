package accounting_test

import (
	"testing"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestCalculateSignedAmount(t *testing.T) {
	transfer := domain.Transaction{
		SourceAccountID:      "a",
		DestinationAccountID: ptr("b"),
		Kind:                 domain.KindTransfer,
		Amount:               decimal.NewFromInt(300),
		Status:               domain.StatusCompleted,
	}

	assert.True(t, accounting.CalculateSignedAmount(transfer, "a").Equal(decimal.NewFromInt(-300)))
	assert.True(t, accounting.CalculateSignedAmount(transfer, "b").Equal(decimal.NewFromInt(300)))
	assert.True(t, accounting.CalculateSignedAmount(transfer, "c").IsZero())

	reversed := transfer
	reversed.Kind = domain.KindDeposit
	reversed.Status = domain.StatusReversed
	assert.True(t, accounting.CalculateSignedAmount(reversed, "b").IsZero())
}

func TestDeriveBalance(t *testing.T) {
	txns := []domain.Transaction{
		{SourceAccountID: "vault", DestinationAccountID: ptr("a"), Kind: domain.KindDeposit, Amount: decimal.NewFromInt(1000), Status: domain.StatusCompleted},
		{SourceAccountID: "a", DestinationAccountID: ptr("b"), Kind: domain.KindTransfer, Amount: decimal.NewFromInt(300), Status: domain.StatusCompleted},
		{SourceAccountID: "a", Kind: domain.KindPayment, Amount: decimal.NewFromInt(50), ProductID: ptr("p"), Status: domain.StatusCompleted},
		{SourceAccountID: "vault", DestinationAccountID: ptr("a"), Kind: domain.KindDeposit, Amount: decimal.NewFromInt(200), Status: domain.StatusReversed},
	}

	balance, counted := accounting.DeriveBalance(txns, "a")
	assert.True(t, balance.Equal(decimal.NewFromInt(650)), "got %s", balance)
	assert.Equal(t, 3, counted)

	balance, counted = accounting.DeriveBalance(txns, "b")
	assert.True(t, balance.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, counted)
}
