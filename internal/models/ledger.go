package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger_entries row. Immutable once written.
type LedgerEntry struct {
	LedgerEntryID     string            `db:"ledger_entry_id"`
	TenantID          string            `db:"tenant_id"`
	JournalEntryID    string            `db:"journal_entry_id"`
	JournalLineID     string            `db:"journal_line_id"`
	AccountID         string            `db:"account_id"`
	AccountCode       string            `db:"account_code"`
	AccountName       string            `db:"account_name"`
	Debit             decimal.Decimal   `db:"debit"`
	Credit            decimal.Decimal   `db:"credit"`
	CumulativeBalance decimal.Decimal   `db:"cumulative_balance"`
	CurrencyCode      string            `db:"currency_code"`
	TransactionDate   time.Time         `db:"transaction_date"`
	PostingDate       time.Time         `db:"posting_date"`
	FiscalPeriodID    string            `db:"fiscal_period_id"` // empty when no period resolved
	Source            string            `db:"source"`
	Description       string            `db:"description"`
	Metadata          map[string]string `db:"metadata"`   // jsonb
	Dimensions        map[string]string `db:"dimensions"` // jsonb
	CreatedAt         time.Time         `db:"created_at"`
}
