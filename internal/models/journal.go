package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// JournalEntry is the journal_entries row. Lines are stored separately in
// journal_lines.
type JournalEntry struct {
	JournalEntryID  string            `db:"journal_entry_id"`
	TenantID        string            `db:"tenant_id"`
	FiscalPeriodID  string            `db:"fiscal_period_id"` // empty when no period resolved
	JournalCode     string            `db:"journal_code"`
	Reference       string            `db:"reference"`
	Description     string            `db:"description"`
	Status          JournalStatus     `db:"status"`
	Source          string            `db:"source"`
	TransactionDate time.Time         `db:"transaction_date"`
	PostingDate     *time.Time        `db:"posting_date"` // Nullable until posted
	CreatedBy       string            `db:"created_by"`
	UpdatedBy       string            `db:"updated_by"`
	ReversalOf      *string           `db:"reversal_of"` // Nullable
	Metadata        map[string]string `db:"metadata"`    // jsonb
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

// JournalLine is the journal_lines row.
type JournalLine struct {
	LineID         string            `db:"line_id"`
	JournalEntryID string            `db:"journal_entry_id"`
	AccountID      string            `db:"account_id"`
	AccountCode    string            `db:"account_code"`
	AccountName    string            `db:"account_name"`
	Description    string            `db:"description"`
	Debit          decimal.Decimal   `db:"debit"`
	Credit         decimal.Decimal   `db:"credit"`
	CurrencyCode   string            `db:"currency_code"`
	ExchangeRate   *decimal.Decimal  `db:"exchange_rate"` // Nullable
	Dimensions     map[string]string `db:"dimensions"`    // jsonb
}
