package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft  JournalStatus = "DRAFT"
	JournalPosted JournalStatus = "POSTED"
)

// JournalSource enumerates where a journal entry originated.
type JournalSource string

const (
	SourceManual             JournalSource = "manual"
	SourceBankImport         JournalSource = "bank_import"
	SourceAccountsReceivable JournalSource = "accounts_receivable"
	SourceAccountsPayable    JournalSource = "accounts_payable"
	SourceAccrual            JournalSource = "accrual"
	SourceRevaluation        JournalSource = "revaluation"
	SourceAdjustment         JournalSource = "adjustment"
	SourceBankTransfer       JournalSource = "bank_transfer"
)

// JournalLine is one side of a journal entry before posting. Amounts are
// non-negative; exactly one of Debit/Credit is expected to be nonzero per
// accounting convention, though suspense lines with both zero are tolerated.
type JournalLine struct {
	LineID       string            `json:"lineID"`
	AccountID    string            `json:"accountID"`
	AccountCode  string            `json:"accountCode"`
	AccountName  string            `json:"accountName,omitempty"`
	Description  string            `json:"description,omitempty"`
	Debit        decimal.Decimal   `json:"debit"`
	Credit       decimal.Decimal   `json:"credit"`
	CurrencyCode string            `json:"currencyCode"`
	ExchangeRate *decimal.Decimal  `json:"exchangeRate,omitempty"`
	Dimensions   map[string]string `json:"dimensions,omitempty"` // drill-down tags, e.g. customerID/invoiceID
}

// JournalEntry is a balanced set of lines representing one business
// transaction. Once Status is JournalPosted the entry is logically immutable;
// corrections are new reversing or adjusting entries, never edits.
type JournalEntry struct {
	JournalEntryID string            `json:"journalEntryID"`
	TenantID       string            `json:"tenantID"`
	FiscalPeriodID string            `json:"fiscalPeriodID"`
	JournalCode    string            `json:"journalCode"`
	Reference      string            `json:"reference,omitempty"`
	Description    string            `json:"description,omitempty"`
	Status         JournalStatus     `json:"status"`
	Source         JournalSource     `json:"source"`
	TransactionDate time.Time        `json:"transactionDate"`
	PostingDate    *time.Time        `json:"postingDate,omitempty"`
	CreatedBy      string            `json:"createdBy"`
	ReversalOf     *string           `json:"reversalOf,omitempty"` // journal entry this one reverses
	Metadata       map[string]string `json:"metadata,omitempty"`
	Lines          []JournalLine     `json:"lines"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ValidationIssue is a single problem found while validating a journal entry.
type ValidationIssue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error" or "warning"
}

// JournalValidationResult reports whether an entry may be posted.
// IsBalanced is true iff no issue has severity "error".
type JournalValidationResult struct {
	IsBalanced bool              `json:"isBalanced"`
	Issues     []ValidationIssue `json:"issues"`
}
