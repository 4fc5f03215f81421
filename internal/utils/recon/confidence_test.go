package recon_test

import (
	"testing"
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/utils/recon"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var matchDate = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func bankCredit(id string, amount float64, date time.Time) domain.BankTransaction {
	return domain.BankTransaction{
		ID:     id,
		Date:   date,
		Credit: decimalPtr(decimal.NewFromFloat(amount)),
	}
}

func ledgerCredit(id string, amount float64, date time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:   id,
		TransactionDate: date,
		Credit:          decimal.NewFromFloat(amount),
		Debit:           decimal.Zero,
	}
}

func TestMatchConfidence(t *testing.T) {
	cfg := recon.DefaultMatchingConfig()

	t.Run("perfect pair scores one", func(t *testing.T) {
		tx := bankCredit("bt-1", 100, matchDate)
		tx.Reference = "INV-0042"
		tx.Description = "acme subscription"

		entry := ledgerCredit("le-1", 100, matchDate)
		entry.Metadata = map[string]string{
			"reference":   "INV-0042",
			"description": "acme subscription",
		}

		assert.InDelta(t, 1.0, recon.MatchConfidence(tx, entry, cfg), 1e-9)
	})

	t.Run("amount outside both tolerances rejects hard", func(t *testing.T) {
		tx := bankCredit("bt-1", 100, matchDate)
		tx.Reference = "INV-0042"
		entry := ledgerCredit("le-1", 200, matchDate)
		entry.Metadata = map[string]string{"reference": "INV-0042"}

		assert.Equal(t, 0.0, recon.MatchConfidence(tx, entry, cfg))
	})

	t.Run("date beyond cutoff rejects hard", func(t *testing.T) {
		tx := bankCredit("bt-1", 100, matchDate)
		entry := ledgerCredit("le-1", 100, matchDate.AddDate(0, 0, 20))

		assert.Equal(t, 0.0, recon.MatchConfidence(tx, entry, cfg))
	})

	t.Run("opposite signs reject even with equal magnitude", func(t *testing.T) {
		tx := domain.BankTransaction{
			ID:    "bt-1",
			Date:  matchDate,
			Debit: decimalPtr(decimal.NewFromInt(100)),
		}
		entry := ledgerCredit("le-1", 100, matchDate)

		assert.Equal(t, 0.0, recon.MatchConfidence(tx, entry, cfg))
	})

	t.Run("small amount drift lowers but keeps the score", func(t *testing.T) {
		exact := recon.MatchConfidence(
			bankCredit("bt-1", 100, matchDate),
			ledgerCredit("le-1", 100, matchDate), cfg)
		drifted := recon.MatchConfidence(
			bankCredit("bt-1", 100, matchDate),
			ledgerCredit("le-1", 98, matchDate), cfg)

		assert.Greater(t, drifted, 0.0)
		assert.Less(t, drifted, exact)
	})

	t.Run("closer dates score higher", func(t *testing.T) {
		near := recon.MatchConfidence(
			bankCredit("bt-1", 100, matchDate),
			ledgerCredit("le-1", 100, matchDate.AddDate(0, 0, 1)), cfg)
		far := recon.MatchConfidence(
			bankCredit("bt-1", 100, matchDate),
			ledgerCredit("le-1", 100, matchDate.AddDate(0, 0, 10)), cfg)

		assert.Greater(t, near, far)
	})

	t.Run("score stays within unit interval", func(t *testing.T) {
		tx := bankCredit("bt-1", 100, matchDate)
		tx.Reference = "INV-1"
		tx.Description = "x"
		entry := ledgerCredit("le-1", 100, matchDate)
		entry.Metadata = map[string]string{"reference": "INV-1", "description": "x"}

		got := recon.MatchConfidence(tx, entry, cfg)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	})
}

func TestDetermineMatchRule(t *testing.T) {
	tests := []struct {
		name  string
		tx    domain.BankTransaction
		entry domain.LedgerEntry
		want  recon.MatchRule
	}{
		{
			name:  "identical amount and date",
			tx:    bankCredit("bt-1", 100, matchDate),
			entry: ledgerCredit("le-1", 100, matchDate),
			want:  recon.RuleExactMatch,
		},
		{
			name: "matching reference with equal amounts on different days",
			tx: func() domain.BankTransaction {
				tx := bankCredit("bt-1", 100, matchDate)
				tx.Reference = "INV-0042"
				return tx
			}(),
			entry: func() domain.LedgerEntry {
				e := ledgerCredit("le-1", 100, matchDate.AddDate(0, 0, 5))
				e.Metadata = map[string]string{"reference": "inv0042"}
				return e
			}(),
			want: recon.RuleReferenceMatch,
		},
		{
			name:  "sub-unit amount drift within three days",
			tx:    bankCredit("bt-1", 100.30, matchDate),
			entry: ledgerCredit("le-1", 100, matchDate.AddDate(0, 0, 2)),
			want:  recon.RuleAmountDateMatch,
		},
		{
			name:  "everything else is fuzzy",
			tx:    bankCredit("bt-1", 102, matchDate),
			entry: ledgerCredit("le-1", 100, matchDate.AddDate(0, 0, 7)),
			want:  recon.RuleFuzzyMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recon.DetermineMatchRule(tt.tx, tt.entry))
		})
	}
}
