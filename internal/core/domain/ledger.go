package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one posted, immutable line of the general ledger. Created
// only by the posting engine; never mutated afterwards. Corrections happen via
// reversing entries, not edits.
type LedgerEntry struct {
	LedgerEntryID  string            `json:"ledgerEntryID"`
	TenantID       string            `json:"tenantID"`
	JournalEntryID string            `json:"journalEntryID"`
	JournalLineID  string            `json:"journalLineID"`
	AccountID      string            `json:"accountID"`
	AccountCode    string            `json:"accountCode"`
	AccountName    string            `json:"accountName,omitempty"`
	Debit          decimal.Decimal   `json:"debit"`
	Credit         decimal.Decimal   `json:"credit"`
	// CumulativeBalance is a placeholder written as zero at posting time;
	// running balances are a read-side reporting concern.
	CumulativeBalance decimal.Decimal `json:"cumulativeBalance"`
	CurrencyCode   string            `json:"currencyCode"`
	TransactionDate time.Time        `json:"transactionDate"`
	PostingDate    time.Time         `json:"postingDate"`
	FiscalPeriodID string            `json:"fiscalPeriodID"`
	Source         JournalSource     `json:"source"`
	Description    string            `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"` // may carry reference/description for matching
	Dimensions     map[string]string `json:"dimensions,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// PostingResult is returned by a successful post: the journal entry id and
// the ledger lines materialized from it.
type PostingResult struct {
	JournalEntryID string        `json:"journalEntryID"`
	Entries        []LedgerEntry `json:"entries"`
}
