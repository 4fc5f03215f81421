package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is one line from an imported bank statement. It is owned by
// the statement-import side of the application and is read-only here: the
// reconciliation core never mutates statement lines.
//
// Debit, Credit and Balance are pointers because statement parsers populate
// them inconsistently; absence of a field is a real case, not a zero.
type BankTransaction struct {
	ID          string           `json:"id"`
	StatementID string           `json:"statementID,omitempty"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Debit       *decimal.Decimal `json:"debit,omitempty"`   // money out, positive when present
	Credit      *decimal.Decimal `json:"credit,omitempty"`  // money in, positive when present
	Balance     *decimal.Decimal `json:"balance,omitempty"` // running balance after the transaction
	Reference   string           `json:"reference,omitempty"`
	Type        string           `json:"type,omitempty"` // e.g. "withdrawal", "deposit", "fee"
	Category    string           `json:"category,omitempty"`
}

// BankStatement groups the transactions of one statement import for a bank
// account. Only the fields the reconciliation core reads are modeled.
type BankStatement struct {
	StatementID   string            `json:"statementID"`
	CompanyID     string            `json:"companyID"`
	BankAccountID string            `json:"bankAccountID"`
	PeriodStart   time.Time         `json:"periodStart"`
	PeriodEnd     time.Time         `json:"periodEnd"`
	Transactions  []BankTransaction `json:"transactions,omitempty"`
}
