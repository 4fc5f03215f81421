package repositories

import (
	"context"
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
)

// BankStatementReader defines read operations for imported statements.
type BankStatementReader interface {
	// FindStatementByID retrieves a statement with its transactions.
	FindStatementByID(ctx context.Context, companyID, statementID string) (*domain.BankStatement, error)

	// ListBankTransactions retrieves the imported transactions of one bank
	// account within a date range, ordered by date ascending.
	ListBankTransactions(ctx context.Context, companyID, bankAccountID string, from, to time.Time) ([]domain.BankTransaction, error)
}

// BankStatementWriter defines write operations for imported statements.
type BankStatementWriter interface {
	// SaveStatement persists a statement and its transactions.
	SaveStatement(ctx context.Context, statement domain.BankStatement) error
}

// BankStatementRepositoryFacade combines all bank statement repository interfaces
type BankStatementRepositoryFacade interface {
	BankStatementReader
	BankStatementWriter
}
