package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Involves(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		accountID   string
		want        bool
	}{
		{
			name:        "source account",
			transaction: domain.Transaction{SourceAccountID: "acc_a", DestinationAccountID: stringPtr("acc_b")},
			accountID:   "acc_a",
			want:        true,
		},
		{
			name:        "destination account",
			transaction: domain.Transaction{SourceAccountID: "acc_a", DestinationAccountID: stringPtr("acc_b")},
			accountID:   "acc_b",
			want:        true,
		},
		{
			name:        "payment has no destination",
			transaction: domain.Transaction{SourceAccountID: "acc_a"},
			accountID:   "",
			want:        false,
		},
		{
			name:        "unrelated account",
			transaction: domain.Transaction{SourceAccountID: "acc_a", DestinationAccountID: stringPtr("acc_b")},
			accountID:   "acc_c",
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.Involves(tt.accountID))
		})
	}
}

func TestTransaction_WithinReversalWindow(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	txn := domain.Transaction{AuditFields: domain.AuditFields{CreatedAt: created}}
	window := 60 * time.Second

	assert.True(t, txn.WithinReversalWindow(created.Add(59*time.Second), window))
	assert.True(t, txn.WithinReversalWindow(created.Add(60*time.Second), window))
	assert.False(t, txn.WithinReversalWindow(created.Add(61*time.Second), window))
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid transfer",
			tx: domain.Transaction{
				SourceAccountID:      "acc_a",
				DestinationAccountID: stringPtr("acc_b"),
				Kind:                 domain.KindTransfer,
				Amount:               decimal.NewFromInt(300),
			},
		},
		{
			name: "valid payment",
			tx: domain.Transaction{
				SourceAccountID: "acc_a",
				Kind:            domain.KindPayment,
				Amount:          decimal.NewFromInt(50),
				ProductID:       stringPtr("prod_1"),
			},
		},
		{
			name: "deposit without destination",
			tx: domain.Transaction{
				SourceAccountID: "vault",
				Kind:            domain.KindDeposit,
				Amount:          decimal.NewFromInt(50),
			},
			wantErr: true,
			errMsg:  "destination account is required",
		},
		{
			name: "payment with destination",
			tx: domain.Transaction{
				SourceAccountID:      "acc_a",
				DestinationAccountID: stringPtr("acc_b"),
				Kind:                 domain.KindPayment,
				Amount:               decimal.NewFromInt(50),
				ProductID:            stringPtr("prod_1"),
			},
			wantErr: true,
			errMsg:  "payments have no destination account",
		},
		{
			name: "zero amount",
			tx: domain.Transaction{
				SourceAccountID:      "acc_a",
				DestinationAccountID: stringPtr("acc_b"),
				Kind:                 domain.KindTransfer,
				Amount:               decimal.Zero,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "description too long",
			tx: domain.Transaction{
				SourceAccountID:      "acc_a",
				DestinationAccountID: stringPtr("acc_b"),
				Kind:                 domain.KindTransfer,
				Amount:               decimal.NewFromInt(1),
				Description:          strings.Repeat("x", domain.MaxDescriptionLength+1),
			},
			wantErr: true,
			errMsg:  "description must be at most",
		},
		{
			name: "unknown kind",
			tx: domain.Transaction{
				SourceAccountID: "acc_a",
				Kind:            "WITHDRAWAL",
				Amount:          decimal.NewFromInt(1),
			},
			wantErr: true,
			errMsg:  "unknown transaction kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLimits_AmountInRange(t *testing.T) {
	limits := domain.DefaultLimits()

	assert.False(t, limits.AmountInRange(decimal.RequireFromString("0.009")))
	assert.True(t, limits.AmountInRange(decimal.RequireFromString("0.01")))
	assert.True(t, limits.AmountInRange(decimal.NewFromInt(2000)))
	assert.False(t, limits.AmountInRange(decimal.RequireFromString("2000.01")))
}

func TestAccount_IsVault(t *testing.T) {
	assert.True(t, domain.Account{AccountNumber: domain.VaultAccountNumber}.IsVault())
	assert.False(t, domain.Account{AccountNumber: "1234567890"}.IsVault())
}

// Helper functions
func stringPtr(s string) *string {
	return &s
}
