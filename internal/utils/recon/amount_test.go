package recon_test

import (
	"testing"
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/utils/recon"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestSignedBankAmount(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.BankTransaction
		want decimal.Decimal
	}{
		{
			name: "debit field yields negative",
			tx:   domain.BankTransaction{Debit: decimalPtr(decimal.NewFromFloat(50.25))},
			want: decimal.NewFromFloat(-50.25),
		},
		{
			name: "credit field yields positive",
			tx:   domain.BankTransaction{Credit: decimalPtr(decimal.NewFromFloat(120.00))},
			want: decimal.NewFromFloat(120.00),
		},
		{
			name: "zero debit falls through to credit",
			tx: domain.BankTransaction{
				Debit:  decimalPtr(decimal.Zero),
				Credit: decimalPtr(decimal.NewFromInt(30)),
			},
			want: decimal.NewFromInt(30),
		},
		{
			name: "outflow type with balance magnitude",
			tx: domain.BankTransaction{
				Type:    "Fee",
				Balance: decimalPtr(decimal.NewFromFloat(12.50)),
			},
			want: decimal.NewFromFloat(-12.50),
		},
		{
			name: "inflow type with negative balance uses magnitude",
			tx: domain.BankTransaction{
				Type:    "deposit",
				Balance: decimalPtr(decimal.NewFromFloat(-200)),
			},
			want: decimal.NewFromInt(200),
		},
		{
			name: "withdrawal type without balance is zero",
			tx:   domain.BankTransaction{Type: "withdrawal"},
			want: decimal.Zero,
		},
		{
			name: "unknown type falls back to balance verbatim",
			tx: domain.BankTransaction{
				Type:    "transfer",
				Balance: decimalPtr(decimal.NewFromFloat(-75.00)),
			},
			want: decimal.NewFromFloat(-75.00),
		},
		{
			name: "balance only is taken verbatim",
			tx:   domain.BankTransaction{Balance: decimalPtr(decimal.NewFromFloat(-42.42))},
			want: decimal.NewFromFloat(-42.42),
		},
		{
			name: "nothing populated is zero",
			tx:   domain.BankTransaction{},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recon.SignedBankAmount(tt.tx)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSignedLedgerAmount(t *testing.T) {
	// Credit to the bank account is money in, debit is money out.
	in := domain.LedgerEntry{Credit: decimal.NewFromInt(100), Debit: decimal.Zero}
	out := domain.LedgerEntry{Credit: decimal.Zero, Debit: decimal.NewFromInt(100)}

	assert.True(t, decimal.NewFromInt(100).Equal(recon.SignedLedgerAmount(in)))
	assert.True(t, decimal.NewFromInt(-100).Equal(recon.SignedLedgerAmount(out)))
}

func TestDateDifferenceInDays(t *testing.T) {
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, recon.DateDifferenceInDays(base, base))
	assert.Equal(t, 3, recon.DateDifferenceInDays(base, base.AddDate(0, 0, 3)))
	assert.Equal(t, 3, recon.DateDifferenceInDays(base.AddDate(0, 0, 3), base), "order should not matter")
	assert.Equal(t, 31, recon.DateDifferenceInDays(base, base.AddDate(0, 1, 1)))
}
