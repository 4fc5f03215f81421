package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
)

// bankStatementService imports parsed statements for later reconciliation.
type bankStatementService struct {
	statementRepo portsrepo.BankStatementRepositoryFacade
}

// NewBankStatementService creates a new BankStatementSvc.
func NewBankStatementService(statementRepo portsrepo.BankStatementRepositoryFacade) portssvc.BankStatementSvc {
	return &bankStatementService{statementRepo: statementRepo}
}

// Ensure bankStatementService implements the portssvc.BankStatementSvc interface
var _ portssvc.BankStatementSvc = (*bankStatementService)(nil)

// ImportStatement validates and persists one parsed statement.
func (s *bankStatementService) ImportStatement(ctx context.Context, companyID string, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, apperrors.NewAppError(400, "statement period end must be after period start", apperrors.ErrValidation)
	}

	statement := domain.BankStatement{
		StatementID:   uuid.NewString(),
		CompanyID:     companyID,
		BankAccountID: req.BankAccountID,
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		Transactions:  make([]domain.BankTransaction, len(req.Transactions)),
	}
	for i, t := range req.Transactions {
		if t.Date.Before(req.PeriodStart) || t.Date.After(req.PeriodEnd) {
			return nil, apperrors.NewAppError(400,
				fmt.Sprintf("transaction %d dated %s falls outside the statement period", i, t.Date.Format("2006-01-02")),
				apperrors.ErrValidation)
		}
		if t.Debit == nil && t.Credit == nil {
			return nil, apperrors.NewAppError(400,
				fmt.Sprintf("transaction %d has neither a debit nor a credit amount", i),
				apperrors.ErrValidation)
		}
		statement.Transactions[i] = domain.BankTransaction{
			ID:          uuid.NewString(),
			StatementID: statement.StatementID,
			Date:        t.Date,
			Description: t.Description,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     t.Balance,
			Reference:   t.Reference,
			Type:        t.Type,
			Category:    t.Category,
		}
	}

	if err := s.statementRepo.SaveStatement(ctx, statement); err != nil {
		logger.Error("Failed to save bank statement", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bank statement imported",
		slog.String("statement_id", statement.StatementID),
		slog.String("bank_account_id", statement.BankAccountID),
		slog.Int("transactions", len(statement.Transactions)),
		slog.String("imported_by", userID),
	)
	return &statement, nil
}

// GetStatementByID retrieves a statement with its transactions.
func (s *bankStatementService) GetStatementByID(ctx context.Context, companyID, statementID string) (*domain.BankStatement, error) {
	return s.statementRepo.FindStatementByID(ctx, companyID, statementID)
}
