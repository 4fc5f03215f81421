package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStatement is the bank_statements row.
type BankStatement struct {
	StatementID   string    `db:"statement_id"`
	CompanyID     string    `db:"company_id"`
	BankAccountID string    `db:"bank_account_id"`
	PeriodStart   time.Time `db:"period_start"`
	PeriodEnd     time.Time `db:"period_end"`
	CreatedAt     time.Time `db:"created_at"`
}

// BankTransaction is the bank_transactions row. The debit/credit/balance
// columns are all nullable because statement formats disagree on which of
// them carry the amount.
type BankTransaction struct {
	BankTransactionID string           `db:"bank_transaction_id"`
	StatementID       string           `db:"statement_id"`
	TransactionDate   time.Time        `db:"transaction_date"`
	Description       string           `db:"description"`
	Debit             *decimal.Decimal `db:"debit"`
	Credit            *decimal.Decimal `db:"credit"`
	Balance           *decimal.Decimal `db:"balance"`
	Reference         string           `db:"reference"`
	Type              string           `db:"type"`
	Category          string           `db:"category"`
}
