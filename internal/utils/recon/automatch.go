package recon

import (
	"sort"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Candidate is one scored (bank transaction, ledger entry) pairing.
type Candidate struct {
	BankTransactionID    string
	LedgerTransactionID  string
	AmountDifference     decimal.Decimal
	DateDifferenceInDays int
	Confidence           float64
	RuleApplied          MatchRule
	BankTransaction      domain.BankTransaction
	LedgerEntry          domain.LedgerEntry
}

// AutoMatchResult is the outcome of one matching run. Absence of matches is a
// normal outcome, surfaced via the unmatched lists and a zero ratio.
type AutoMatchResult struct {
	Matches                   []Candidate
	UnmatchedBankTransactions []domain.BankTransaction
	UnmatchedLedgerEntries    []domain.LedgerEntry
	MatchRatio                float64
}

// FindPotentialMatches scores a bank transaction against every ledger entry,
// keeps candidates meeting the confidence threshold, and returns them sorted
// by confidence descending.
func FindPotentialMatches(tx domain.BankTransaction, entries []domain.LedgerEntry, cfg MatchingConfig) []Candidate {
	bankAmount := SignedBankAmount(tx)

	var candidates []Candidate
	for _, entry := range entries {
		confidence := MatchConfidence(tx, entry, cfg)
		if confidence < cfg.MinConfidenceThreshold {
			continue
		}

		candidates = append(candidates, Candidate{
			BankTransactionID:    tx.ID,
			LedgerTransactionID:  entry.LedgerEntryID,
			AmountDifference:     bankAmount.Sub(SignedLedgerAmount(entry)).Abs(),
			DateDifferenceInDays: DateDifferenceInDays(tx.Date, entry.TransactionDate),
			Confidence:           confidence,
			RuleApplied:          DetermineMatchRule(tx, entry),
			BankTransaction:      tx,
			LedgerEntry:          entry,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

// AutoMatch greedily pairs bank transactions to ledger entries in input
// order: for each bank transaction the highest-confidence not-yet-consumed
// ledger entry wins, and both sides are consumed. A ledger entry matches at
// most one bank transaction and vice versa.
//
// Greedy-by-input-order is a simplicity/throughput trade-off over a globally
// optimal assignment; the hard amount/date rejects in the scorer keep false
// positives rare. A globally optimal matcher can be substituted behind this
// signature without changing callers.
func AutoMatch(bankTransactions []domain.BankTransaction, ledgerEntries []domain.LedgerEntry, cfg MatchingConfig) AutoMatchResult {
	matches := make([]Candidate, 0)
	matchedBankIDs := make(map[string]struct{})
	matchedLedgerIDs := make(map[string]struct{})

	for _, tx := range bankTransactions {
		// A transaction without a stable identifier cannot be tracked as
		// matched across runs; skip it.
		if tx.ID == "" {
			continue
		}

		available := make([]domain.LedgerEntry, 0, len(ledgerEntries))
		for _, entry := range ledgerEntries {
			if _, consumed := matchedLedgerIDs[entry.LedgerEntryID]; !consumed {
				available = append(available, entry)
			}
		}

		candidates := FindPotentialMatches(tx, available, cfg)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		matches = append(matches, best)
		matchedBankIDs[tx.ID] = struct{}{}
		matchedLedgerIDs[best.LedgerTransactionID] = struct{}{}
	}

	var unmatchedBank []domain.BankTransaction
	for _, tx := range bankTransactions {
		if _, ok := matchedBankIDs[tx.ID]; tx.ID != "" && !ok {
			unmatchedBank = append(unmatchedBank, tx)
		}
	}

	var unmatchedLedger []domain.LedgerEntry
	for _, entry := range ledgerEntries {
		if _, ok := matchedLedgerIDs[entry.LedgerEntryID]; !ok {
			unmatchedLedger = append(unmatchedLedger, entry)
		}
	}

	matchRatio := 0.0
	if len(bankTransactions) > 0 {
		matchRatio = float64(len(matches)) / float64(len(bankTransactions))
	}

	return AutoMatchResult{
		Matches:                   matches,
		UnmatchedBankTransactions: unmatchedBank,
		UnmatchedLedgerEntries:    unmatchedLedger,
		MatchRatio:                matchRatio,
	}
}
