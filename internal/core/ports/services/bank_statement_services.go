package services

import (
	"context"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// BankStatementSvc imports parsed statements and serves them back for
// reconciliation.
type BankStatementSvc interface {
	// ImportStatement persists a parsed statement and its transactions.
	ImportStatement(ctx context.Context, companyID string, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error)

	// GetStatementByID retrieves a statement with its transactions.
	GetStatementByID(ctx context.Context, companyID, statementID string) (*domain.BankStatement, error)
}
