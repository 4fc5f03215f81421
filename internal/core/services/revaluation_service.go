package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// revaluationService restates foreign-currency account balances at current
// rates and books the unrealized gain or loss as a revaluation journal.
type revaluationService struct {
	ledgerReader portsrepo.LedgerReader
	converter    portssvc.CurrencyConverter
	journalSvc   portssvc.JournalSvcFacade
}

// NewRevaluationService creates a new RevaluationService.
func NewRevaluationService(ledgerReader portsrepo.LedgerReader, converter portssvc.CurrencyConverter, journalSvc portssvc.JournalSvcFacade) portssvc.RevaluationSvc {
	return &revaluationService{
		ledgerReader: ledgerReader,
		converter:    converter,
		journalSvc:   journalSvc,
	}
}

var _ portssvc.RevaluationSvc = (*revaluationService)(nil)

// RunRevaluation computes per-account deltas as of a date. Book value uses
// the rate at each entry's transaction date (historical cost); revalued value
// uses the rate as of the run date. A nonzero total produces a posted journal
// against the gain or loss account.
func (s *revaluationService) RunRevaluation(ctx context.Context, tenantID string, req dto.RunRevaluationRequest, userID string) (*dto.RevaluationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.AccountIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one account is required for a revaluation run", apperrors.ErrValidation)
	}

	var (
		lines      []dto.RevaluationLineResponse
		totalDelta = decimal.Zero
	)

	// Ledger history starts well before any configured period.
	historyStart := time.Time{}

	for _, accountID := range req.AccountIDs {
		entries, err := s.ledgerReader.ListLedgerEntriesByAccount(ctx, tenantID, accountID, historyStart, req.AsOfDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger entries for account %s: %w", accountID, err)
		}
		if len(entries) == 0 {
			continue
		}

		currencyCode := entries[0].CurrencyCode
		if currencyCode == req.BaseCurrencyCode {
			continue
		}

		foreignBalance := decimal.Zero
		bookValue := decimal.Zero
		for _, entry := range entries {
			movement := entry.Debit.Sub(entry.Credit)
			foreignBalance = foreignBalance.Add(movement)

			historicalRate, err := s.converter.RateAsOf(ctx, currencyCode, req.BaseCurrencyCode, entry.TransactionDate)
			if err != nil {
				return nil, fmt.Errorf("no rate for %s/%s at %s: %w", currencyCode, req.BaseCurrencyCode, entry.TransactionDate.Format("2006-01-02"), err)
			}
			bookValue = bookValue.Add(movement.Mul(historicalRate))
		}

		currentRate, err := s.converter.RateAsOf(ctx, currencyCode, req.BaseCurrencyCode, req.AsOfDate)
		if err != nil {
			return nil, fmt.Errorf("no rate for %s/%s at %s: %w", currencyCode, req.BaseCurrencyCode, req.AsOfDate.Format("2006-01-02"), err)
		}

		revaluedValue := foreignBalance.Mul(currentRate)
		delta := revaluedValue.Sub(bookValue)

		lines = append(lines, dto.RevaluationLineResponse{
			AccountID:       accountID,
			CurrencyCode:    currencyCode,
			ForeignBalance:  foreignBalance,
			BookValue:       bookValue,
			RevaluedValue:   revaluedValue,
			UnrealizedDelta: delta,
			Rate:            currentRate,
		})
		totalDelta = totalDelta.Add(delta)
	}

	response := &dto.RevaluationResponse{
		AsOfDate:   req.AsOfDate,
		Lines:      lines,
		TotalDelta: totalDelta,
	}

	if totalDelta.IsZero() || len(lines) == 0 {
		logger.Info("Revaluation run produced no delta", slog.Time("as_of", req.AsOfDate))
		return response, nil
	}

	entry, err := s.postRevaluationJournal(ctx, tenantID, req, lines, totalDelta, userID)
	if err != nil {
		return nil, err
	}
	response.JournalEntryID = &entry.JournalEntryID

	logger.Info("Revaluation journal posted",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("total_delta", totalDelta.String()),
		slog.Int("account_count", len(lines)))
	return response, nil
}

// postRevaluationJournal books one line per revalued account plus a balancing
// line on the gain or loss account, then posts it.
func (s *revaluationService) postRevaluationJournal(ctx context.Context, tenantID string, req dto.RunRevaluationRequest, lines []dto.RevaluationLineResponse, totalDelta decimal.Decimal, userID string) (*domain.JournalEntry, error) {
	journalLines := make([]dto.JournalLineRequest, 0, len(lines)+1)
	for _, line := range lines {
		if line.UnrealizedDelta.IsZero() {
			continue
		}
		jl := dto.JournalLineRequest{
			AccountID:    line.AccountID,
			Description:  fmt.Sprintf("Revaluation of %s balance", line.CurrencyCode),
			CurrencyCode: req.BaseCurrencyCode,
		}
		if line.UnrealizedDelta.IsPositive() {
			jl.Debit = line.UnrealizedDelta
		} else {
			jl.Credit = line.UnrealizedDelta.Abs()
		}
		journalLines = append(journalLines, jl)
	}

	balancing := dto.JournalLineRequest{
		Description:  "Unrealized exchange difference",
		CurrencyCode: req.BaseCurrencyCode,
	}
	if totalDelta.IsPositive() {
		balancing.AccountID = req.GainAccountID
		balancing.Credit = totalDelta
	} else {
		balancing.AccountID = req.LossAccountID
		balancing.Debit = totalDelta.Abs()
	}
	journalLines = append(journalLines, balancing)

	createReq := dto.CreateJournalRequest{
		Description:     fmt.Sprintf("Currency revaluation as of %s", req.AsOfDate.Format("2006-01-02")),
		Source:          domain.SourceRevaluation,
		TransactionDate: req.AsOfDate,
		Lines:           journalLines,
	}

	entry, err := s.journalSvc.CreateJournal(ctx, tenantID, createReq, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create revaluation journal: %w", err)
	}
	if _, err := s.journalSvc.PostJournal(ctx, tenantID, entry.JournalEntryID, dto.PostJournalRequest{}, userID); err != nil {
		return nil, fmt.Errorf("failed to post revaluation journal: %w", err)
	}
	return entry, nil
}
