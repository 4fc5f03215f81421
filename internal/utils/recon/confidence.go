package recon

import (
	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatchRule tags which rule justified a match, for the audit trail.
type MatchRule string

const (
	RuleExactMatch      MatchRule = "exact_match"
	RuleReferenceMatch  MatchRule = "reference_match"
	RuleAmountDateMatch MatchRule = "amount_date_match"
	RuleFuzzyMatch      MatchRule = "fuzzy_match"
	RuleManual          MatchRule = "manual"
)

var two = decimal.NewFromInt(2)

// ledgerReference pulls the matching reference from a ledger entry's metadata.
func ledgerReference(entry domain.LedgerEntry) string {
	return entry.Metadata["reference"]
}

func ledgerDescription(entry domain.LedgerEntry) string {
	return entry.Metadata["description"]
}

// MatchConfidence computes a weighted [0,1] score for a (bank transaction,
// ledger entry) pair. Amount and date act as hard gates: a pair outside both
// amount tolerances, or beyond the date cutoff, scores exactly 0 regardless
// of reference or description similarity. Never fails; an unscoreable pair
// yields 0.
func MatchConfidence(tx domain.BankTransaction, entry domain.LedgerEntry, cfg MatchingConfig) float64 {
	bankAmount := SignedBankAmount(tx)
	ledgerAmount := SignedLedgerAmount(entry)

	amountDiff := bankAmount.Sub(ledgerAmount).Abs()
	avgAmount := bankAmount.Add(ledgerAmount).Div(two).Abs()

	var amountScore float64
	switch {
	case amountDiff.IsZero():
		amountScore = 1
	case amountDiff.LessThanOrEqual(cfg.MaxAmountDifferenceAbsolute) ||
		(avgAmount.IsPositive() && amountDiff.Div(avgAmount).InexactFloat64() <= cfg.MaxAmountDifferencePercent):
		percentDiff := 1.0
		if avgAmount.IsPositive() {
			percentDiff = amountDiff.Div(avgAmount).InexactFloat64()
		}
		amountScore = 1 - percentDiff/cfg.MaxAmountDifferencePercent
	default:
		return 0
	}

	dateDiff := DateDifferenceInDays(tx.Date, entry.TransactionDate)
	if dateDiff > cfg.MaxDateDifferenceInDays {
		return 0
	}
	dateScore := 1 - float64(dateDiff)/float64(cfg.MaxDateDifferenceInDays)

	refScore := ReferenceMatchScore(tx.Reference, ledgerReference(entry))
	descScore := TextSimilarity(tx.Description, ledgerDescription(entry))

	confidence := amountScore*cfg.AmountWeight +
		dateScore*cfg.DateWeight +
		refScore*cfg.ReferenceWeight +
		descScore*cfg.DescriptionWeight

	return clamp01(confidence)
}

var (
	centTolerance     = decimal.NewFromFloat(0.01)
	halfUnitTolerance = decimal.NewFromFloat(0.50)
)

// DetermineMatchRule classifies which rule justified a match. Only meaningful
// for pairs whose confidence already passed the threshold.
func DetermineMatchRule(tx domain.BankTransaction, entry domain.LedgerEntry) MatchRule {
	bankAmount := SignedBankAmount(tx)
	ledgerAmount := SignedLedgerAmount(entry)
	amountDiff := bankAmount.Sub(ledgerAmount).Abs()
	dateDiff := DateDifferenceInDays(tx.Date, entry.TransactionDate)

	if bankAmount.Equal(ledgerAmount) && dateDiff == 0 {
		return RuleExactMatch
	}

	if ReferenceMatchScore(tx.Reference, ledgerReference(entry)) >= 0.8 &&
		amountDiff.LessThan(centTolerance) {
		return RuleReferenceMatch
	}

	if amountDiff.LessThan(halfUnitTolerance) && dateDiff <= 3 {
		return RuleAmountDateMatch
	}

	return RuleFuzzyMatch
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
