package recon_test

import (
	"testing"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/utils/recon"
	"github.com/stretchr/testify/assert"
)

func TestFindPotentialMatches(t *testing.T) {
	cfg := recon.DefaultMatchingConfig()
	tx := bankCredit("bt-1", 100, matchDate)

	entries := []domain.LedgerEntry{
		ledgerCredit("le-near", 100, matchDate.AddDate(0, 0, 2)),
		ledgerCredit("le-exact", 100, matchDate),
		ledgerCredit("le-off", 5000, matchDate),
	}

	candidates := recon.FindPotentialMatches(tx, entries, cfg)

	assert.Len(t, candidates, 2, "the off-amount entry should be rejected")
	assert.Equal(t, "le-exact", candidates[0].LedgerTransactionID, "highest confidence first")
	assert.Equal(t, "le-near", candidates[1].LedgerTransactionID)
	assert.Equal(t, recon.RuleExactMatch, candidates[0].RuleApplied)
	assert.True(t, candidates[0].AmountDifference.IsZero())
	assert.Equal(t, 2, candidates[1].DateDifferenceInDays)
}

func TestAutoMatch(t *testing.T) {
	cfg := recon.DefaultMatchingConfig()

	t.Run("pairs each side at most once", func(t *testing.T) {
		bank := []domain.BankTransaction{
			bankCredit("bt-1", 100, matchDate),
			bankCredit("bt-2", 250, matchDate),
		}
		ledger := []domain.LedgerEntry{
			ledgerCredit("le-1", 100, matchDate),
			ledgerCredit("le-2", 250, matchDate.AddDate(0, 0, 1)),
		}

		result := recon.AutoMatch(bank, ledger, cfg)

		assert.Len(t, result.Matches, 2)
		assert.Equal(t, "le-1", result.Matches[0].LedgerTransactionID)
		assert.Equal(t, "le-2", result.Matches[1].LedgerTransactionID)
		assert.Empty(t, result.UnmatchedBankTransactions)
		assert.Empty(t, result.UnmatchedLedgerEntries)
		assert.InDelta(t, 1.0, result.MatchRatio, 1e-9)
	})

	t.Run("earlier transaction wins a contested entry", func(t *testing.T) {
		bank := []domain.BankTransaction{
			bankCredit("bt-1", 100, matchDate),
			bankCredit("bt-2", 100, matchDate),
		}
		ledger := []domain.LedgerEntry{
			ledgerCredit("le-1", 100, matchDate),
		}

		result := recon.AutoMatch(bank, ledger, cfg)

		assert.Len(t, result.Matches, 1)
		assert.Equal(t, "bt-1", result.Matches[0].BankTransactionID)
		assert.Len(t, result.UnmatchedBankTransactions, 1)
		assert.Equal(t, "bt-2", result.UnmatchedBankTransactions[0].ID)
		assert.InDelta(t, 0.5, result.MatchRatio, 1e-9)
	})

	t.Run("prefers the stronger candidate", func(t *testing.T) {
		bank := []domain.BankTransaction{bankCredit("bt-1", 100, matchDate)}
		ledger := []domain.LedgerEntry{
			ledgerCredit("le-late", 100, matchDate.AddDate(0, 0, 5)),
			ledgerCredit("le-sameday", 100, matchDate),
		}

		result := recon.AutoMatch(bank, ledger, cfg)

		assert.Len(t, result.Matches, 1)
		assert.Equal(t, "le-sameday", result.Matches[0].LedgerTransactionID)
		assert.Len(t, result.UnmatchedLedgerEntries, 1)
		assert.Equal(t, "le-late", result.UnmatchedLedgerEntries[0].LedgerEntryID)
	})

	t.Run("nothing matchable", func(t *testing.T) {
		bank := []domain.BankTransaction{bankCredit("bt-1", 100, matchDate)}
		ledger := []domain.LedgerEntry{ledgerCredit("le-1", 9999, matchDate)}

		result := recon.AutoMatch(bank, ledger, cfg)

		assert.Empty(t, result.Matches)
		assert.Len(t, result.UnmatchedBankTransactions, 1)
		assert.Len(t, result.UnmatchedLedgerEntries, 1)
		assert.Equal(t, 0.0, result.MatchRatio)
	})

	t.Run("empty inputs", func(t *testing.T) {
		result := recon.AutoMatch(nil, nil, cfg)

		assert.Empty(t, result.Matches)
		assert.Empty(t, result.UnmatchedBankTransactions)
		assert.Empty(t, result.UnmatchedLedgerEntries)
		assert.Equal(t, 0.0, result.MatchRatio)
	})

	t.Run("skips transactions without an identifier", func(t *testing.T) {
		bank := []domain.BankTransaction{
			bankCredit("", 100, matchDate),
			bankCredit("bt-2", 100, matchDate),
		}
		ledger := []domain.LedgerEntry{ledgerCredit("le-1", 100, matchDate)}

		result := recon.AutoMatch(bank, ledger, cfg)

		assert.Len(t, result.Matches, 1)
		assert.Equal(t, "bt-2", result.Matches[0].BankTransactionID)
		assert.Empty(t, result.UnmatchedBankTransactions)
	})
}
