package recon_test

import (
	"testing"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/utils/recon"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateBalance(t *testing.T) {
	txns := []domain.BankTransaction{
		{ID: "bt-1", Credit: decimalPtr(decimal.NewFromInt(50))},
		{ID: "bt-2", Debit: decimalPtr(decimal.NewFromInt(30))},
	}

	t.Run("balanced statement", func(t *testing.T) {
		result := recon.ValidateBalance(decimal.NewFromInt(100), decimal.NewFromInt(120), txns)

		assert.True(t, result.IsValid)
		assert.True(t, decimal.NewFromInt(120).Equal(result.ExpectedBalance))
		assert.True(t, result.Difference.IsZero())
	})

	t.Run("unbalanced statement", func(t *testing.T) {
		result := recon.ValidateBalance(decimal.NewFromInt(100), decimal.NewFromInt(125), txns)

		assert.False(t, result.IsValid)
		// Expected carries the stated closing balance, actual the replayed one.
		assert.True(t, decimal.NewFromInt(125).Equal(result.ExpectedBalance))
		assert.True(t, decimal.NewFromInt(120).Equal(result.ActualBalance))
		assert.True(t, decimal.NewFromInt(5).Equal(result.Difference))
		assert.Contains(t, result.Message, "does not match")
	})

	t.Run("sub-cent drift is tolerated", func(t *testing.T) {
		closing := decimal.NewFromFloat(120.005)
		result := recon.ValidateBalance(decimal.NewFromInt(100), closing, txns)

		assert.True(t, result.IsValid)
	})

	t.Run("no transactions", func(t *testing.T) {
		result := recon.ValidateBalance(decimal.NewFromInt(100), decimal.NewFromInt(100), nil)

		assert.True(t, result.IsValid)
		assert.True(t, decimal.NewFromInt(100).Equal(result.ExpectedBalance))
	})
}
