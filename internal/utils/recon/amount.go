package recon

import (
	"strings"
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBankAmount derives a single signed amount from a bank transaction:
// negative = outflow, positive = inflow. Statement parsers populate the
// debit/credit/balance/type fields inconsistently, so the fields are tried in
// order of trustworthiness. A zero result with no populated fields is a
// data-quality signal the caller should log.
func SignedBankAmount(tx domain.BankTransaction) decimal.Decimal {
	if tx.Debit != nil && tx.Debit.IsPositive() {
		return tx.Debit.Abs().Neg()
	}

	if tx.Credit != nil && tx.Credit.IsPositive() {
		return tx.Credit.Abs()
	}

	// Infer direction from the type tag against the balance magnitude.
	if tx.Type != "" {
		var amount decimal.Decimal
		if tx.Balance != nil {
			amount = tx.Balance.Abs()
		}
		switch strings.ToLower(tx.Type) {
		case "withdrawal", "fee", "debit", "payment":
			return amount.Neg()
		case "deposit", "credit", "interest":
			return amount
		}
	}

	// Last resort: trust the balance field verbatim.
	if tx.Balance != nil {
		return *tx.Balance
	}

	return decimal.Zero
}

// SignedLedgerAmount converts a ledger line to a signed cash movement as seen
// from the bank account: a credit to the bank's ledger account is money in
// (positive), a debit is money out (negative).
//
// This is the asset-account convention. Reconciliation only ever runs against
// bank/cash accounts; reusing credit-debit for a liability or contra account
// would flip the intended sign.
func SignedLedgerAmount(entry domain.LedgerEntry) decimal.Decimal {
	return entry.Credit.Sub(entry.Debit)
}

// DateDifferenceInDays returns the whole number of days between two dates,
// always non-negative.
func DateDifferenceInDays(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}
