package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalUnbalanced  = errors.New("journal lines do not balance")
	ErrJournalMinLines    = errors.New("journal must have at least two lines")
	ErrDescriptionMissing = errors.New("journal description is required")
	ErrAlreadyPosted      = errors.New("journal is already posted")
	ErrNotPosted          = errors.New("journal must be posted to be reversed")
	ErrPeriodNotOpen      = errors.New("fiscal period is not open for posting")
	ErrPeriodRequired     = errors.New("no fiscal period covers the transaction date")
)

// balanceTolerance absorbs sub-cent representation drift in imported data.
// Anything larger is a genuinely unbalanced entry.
var balanceTolerance = decimal.NewFromFloat(0.0001)

// journalService provides journal entry creation, validation and posting.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	periodRepo  portsrepo.FiscalPeriodRepositoryFacade
	// strictPeriods rejects postings whose date is not covered by any fiscal
	// period. When false, such postings proceed with a warning.
	strictPeriods bool
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, periodRepo portsrepo.FiscalPeriodRepositoryFacade, strictPeriods bool) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		periodRepo:    periodRepo,
		strictPeriods: strictPeriods,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetJournalByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, tenantID, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, tenantID, journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", journalEntryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListJournals retrieves journal entries matching the filter.
func (s *journalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListJournalEntries(ctx, tenantID, params)
}

// CreateJournal persists a new draft journal entry after validation.
func (s *journalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinLines)
	}

	now := time.Now().UTC()
	journalEntryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Debit.IsNegative() || lineReq.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line amounts must be non-negative for account %s", apperrors.ErrValidation, lineReq.AccountID)
		}
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			AccountID:    lineReq.AccountID,
			AccountCode:  lineReq.AccountCode,
			AccountName:  lineReq.AccountName,
			Description:  lineReq.Description,
			Debit:        lineReq.Debit,
			Credit:       lineReq.Credit,
			CurrencyCode: lineReq.CurrencyCode,
			ExchangeRate: lineReq.ExchangeRate,
			Dimensions:   lineReq.Dimensions,
		}
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	entry := domain.JournalEntry{
		JournalEntryID:  journalEntryID,
		TenantID:        tenantID,
		FiscalPeriodID:  req.FiscalPeriodID,
		JournalCode:     req.JournalCode,
		Reference:       req.Reference,
		Description:     req.Description,
		Status:          domain.JournalDraft,
		Source:          source,
		TransactionDate: req.TransactionDate,
		CreatedBy:       creatorUserID,
		Metadata:        req.Metadata,
		Lines:           lines,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if result := s.ValidateJournal(ctx, entry); !result.IsBalanced {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, firstErrorMessage(result))
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("source", string(source)),
		slog.Int("line_count", len(lines)))
	return &entry, nil
}

// ValidateJournal checks that an entry is postable. Findings are reported in
// the result; the entry is balanced iff no finding has severity error.
func (s *journalService) ValidateJournal(_ context.Context, entry domain.JournalEntry) domain.JournalValidationResult {
	var issues []domain.ValidationIssue

	if len(entry.Lines) == 0 {
		issues = append(issues, domain.ValidationIssue{
			Code:     "NO_LINES",
			Message:  "journal entry has no lines",
			Severity: "error",
		})
		return domain.JournalValidationResult{IsBalanced: false, Issues: issues}
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, line := range entry.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			issues = append(issues, domain.ValidationIssue{
				Code:     "NEGATIVE_AMOUNT",
				Message:  fmt.Sprintf("line %s has a negative amount", line.LineID),
				Severity: "error",
			})
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			issues = append(issues, domain.ValidationIssue{
				Code:     "BOTH_SIDES_SET",
				Message:  fmt.Sprintf("line %s has both debit and credit set", line.LineID),
				Severity: "warning",
			})
		}
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}

	if debitTotal.Sub(creditTotal).Abs().GreaterThan(balanceTolerance) {
		issues = append(issues, domain.ValidationIssue{
			Code:     "UNBALANCED_ENTRY",
			Message:  fmt.Sprintf("debits %s do not equal credits %s", debitTotal.String(), creditTotal.String()),
			Severity: "error",
		})
	}

	isBalanced := true
	for _, issue := range issues {
		if issue.Severity == "error" {
			isBalanced = false
			break
		}
	}
	return domain.JournalValidationResult{IsBalanced: isBalanced, Issues: issues}
}

// PostJournal validates a draft entry and atomically writes its ledger lines
// and status flip. The ledger writes and the status change commit in one
// database transaction or not at all.
func (s *journalService) PostJournal(ctx context.Context, tenantID, journalEntryID string, req dto.PostJournalRequest, userID string) (*domain.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetJournalByID(ctx, tenantID, journalEntryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.JournalPosted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyPosted)
	}

	if result := s.ValidateJournal(ctx, *entry); !result.IsBalanced {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, firstErrorMessage(result))
	}

	postingDate := time.Now().UTC()
	if req.PostingDate != nil {
		postingDate = *req.PostingDate
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin posting transaction: %w", err)
	}
	defer func() {
		_ = s.journalRepo.Rollback(ctx, tx)
	}()

	// The period gate runs inside the posting transaction; a concurrent close
	// or lock cannot slip in between the check and the commit.
	fiscalPeriodID, err := s.resolveFiscalPeriod(ctx, tx, tenantID, entry.TransactionDate)
	if err != nil {
		return nil, err
	}

	ledgerEntries := materializeLedgerEntries(*entry, fiscalPeriodID, postingDate)

	if err := s.journalRepo.SaveLedgerEntries(ctx, tx, ledgerEntries); err != nil {
		logger.Error("Failed to write ledger entries", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to write ledger entries: %w", err)
	}
	if err := s.journalRepo.MarkJournalPosted(ctx, tx, tenantID, journalEntryID, postingDate, userID); err != nil {
		logger.Error("Failed to mark journal posted", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to mark journal posted: %w", err)
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting transaction: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("fiscal_period_id", fiscalPeriodID),
		slog.Int("ledger_entry_count", len(ledgerEntries)))

	return &domain.PostingResult{JournalEntryID: journalEntryID, Entries: ledgerEntries}, nil
}

// ReverseJournal creates and posts a new entry with debits and credits
// swapped, back-linked to the original. The original is never edited.
func (s *journalService) ReverseJournal(ctx context.Context, tenantID, journalEntryID, reason, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetJournalByID(ctx, tenantID, journalEntryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.JournalPosted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNotPosted)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			AccountID:    line.AccountID,
			AccountCode:  line.AccountCode,
			AccountName:  line.AccountName,
			Description:  line.Description,
			Debit:        line.Credit,
			Credit:       line.Debit,
			CurrencyCode: line.CurrencyCode,
			ExchangeRate: line.ExchangeRate,
			Dimensions:   line.Dimensions,
		}
	}

	description := fmt.Sprintf("Reversal of %s", original.Description)
	metadata := map[string]string{"reversalReason": reason}

	reversal := domain.JournalEntry{
		JournalEntryID:  reversalID,
		TenantID:        tenantID,
		JournalCode:     original.JournalCode,
		Reference:       original.Reference,
		Description:     description,
		Status:          domain.JournalDraft,
		Source:          original.Source,
		TransactionDate: now,
		CreatedBy:       userID,
		ReversalOf:      &original.JournalEntryID,
		Metadata:        metadata,
		Lines:           lines,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, reversal); err != nil {
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	if _, err := s.PostJournal(ctx, tenantID, reversalID, dto.PostJournalRequest{}, userID); err != nil {
		return nil, fmt.Errorf("failed to post reversal entry: %w", err)
	}

	if err := s.journalRepo.UpdateJournalReversalLink(ctx, tenantID, journalEntryID, reversalID, now); err != nil {
		logger.Error("Failed to back-link reversal", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to back-link reversal: %w", err)
	}

	logger.Info("Journal entry reversed",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("reversal_journal_id", reversalID))

	return s.GetJournalByID(ctx, tenantID, reversalID)
}

// resolveFiscalPeriod applies the posting gate within the posting
// transaction. A period that exists but is closed or locked always rejects; a
// missing period rejects only in strict mode.
func (s *journalService) resolveFiscalPeriod(ctx context.Context, tx pgx.Tx, tenantID string, transactionDate time.Time) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindFiscalPeriodByDateTx(ctx, tx, tenantID, transactionDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if s.strictPeriods {
				return "", apperrors.NewAppError(http.StatusConflict, ErrPeriodRequired.Error(), apperrors.ErrConflict)
			}
			logger.Warn("No fiscal period covers the transaction date; posting anyway",
				slog.Time("transaction_date", transactionDate))
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve fiscal period: %w", err)
	}

	if period.Status != domain.PeriodOpen {
		return "", apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("fiscal period %s is %s", period.Name, period.Status), apperrors.ErrConflict)
	}
	return period.FiscalPeriodID, nil
}

// materializeLedgerEntries turns the lines of a validated entry into ledger
// rows. CumulativeBalance is written as zero; running balances are computed on
// the read side.
func materializeLedgerEntries(entry domain.JournalEntry, fiscalPeriodID string, postingDate time.Time) []domain.LedgerEntry {
	now := time.Now().UTC()
	entries := make([]domain.LedgerEntry, len(entry.Lines))
	for i, line := range entry.Lines {
		metadata := map[string]string{}
		if entry.Reference != "" {
			metadata["reference"] = entry.Reference
		}
		description := line.Description
		if description == "" {
			description = entry.Description
		}
		if description != "" {
			metadata["description"] = description
		}

		entries[i] = domain.LedgerEntry{
			LedgerEntryID:     uuid.NewString(),
			TenantID:          entry.TenantID,
			JournalEntryID:    entry.JournalEntryID,
			JournalLineID:     line.LineID,
			AccountID:         line.AccountID,
			AccountCode:       line.AccountCode,
			AccountName:       line.AccountName,
			Debit:             line.Debit,
			Credit:            line.Credit,
			CumulativeBalance: decimal.Zero,
			CurrencyCode:      line.CurrencyCode,
			TransactionDate:   entry.TransactionDate,
			PostingDate:       postingDate,
			FiscalPeriodID:    fiscalPeriodID,
			Source:            entry.Source,
			Description:       description,
			Metadata:          metadata,
			Dimensions:        line.Dimensions,
			CreatedAt:         now,
		}
	}
	return entries
}

// firstErrorMessage returns the message of the first error-severity issue.
func firstErrorMessage(result domain.JournalValidationResult) string {
	for _, issue := range result.Issues {
		if issue.Severity == "error" {
			return issue.Message
		}
	}
	return "journal entry failed validation"
}
