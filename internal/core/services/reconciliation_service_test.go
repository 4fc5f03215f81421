package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/core/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/utils/recon"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryWithTx = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindSessionByID(ctx context.Context, companyID, sessionID string) (*domain.ReconciliationSession, error) {
	args := m.Called(ctx, companyID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSession), args.Error(1)
}

func (m *MockReconciliationRepository) ListSessions(ctx context.Context, companyID string, params dto.ListSessionsParams) ([]domain.ReconciliationSession, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationSession), args.Error(1)
}

func (m *MockReconciliationRepository) SaveSession(ctx context.Context, session domain.ReconciliationSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateSession(ctx context.Context, session domain.ReconciliationSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockReconciliationRepository) FindMatchByID(ctx context.Context, sessionID, matchID string) (*domain.ReconciliationMatch, error) {
	args := m.Called(ctx, sessionID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationMatch), args.Error(1)
}

func (m *MockReconciliationRepository) ListMatchesBySession(ctx context.Context, sessionID string, status *domain.MatchStatus) ([]domain.ReconciliationMatch, error) {
	args := m.Called(ctx, sessionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationMatch), args.Error(1)
}

func (m *MockReconciliationRepository) SaveMatches(ctx context.Context, matches []domain.ReconciliationMatch) error {
	args := m.Called(ctx, matches)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateMatchStatus(ctx context.Context, sessionID, matchID string, status domain.MatchStatus, updatedBy string) error {
	args := m.Called(ctx, sessionID, matchID, status, updatedBy)
	return args.Error(0)
}

func (m *MockReconciliationRepository) DeleteMatch(ctx context.Context, sessionID, matchID string) error {
	args := m.Called(ctx, sessionID, matchID)
	return args.Error(0)
}

func (m *MockReconciliationRepository) DeleteSuggestedMatches(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockReconciliationRepository) FindAdjustmentByID(ctx context.Context, sessionID, adjustmentID string) (*domain.ReconciliationAdjustment, error) {
	args := m.Called(ctx, sessionID, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationAdjustment), args.Error(1)
}

func (m *MockReconciliationRepository) ListAdjustmentsBySession(ctx context.Context, sessionID string) ([]domain.ReconciliationAdjustment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationAdjustment), args.Error(1)
}

func (m *MockReconciliationRepository) SaveAdjustment(ctx context.Context, adjustment domain.ReconciliationAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockReconciliationRepository) SaveAdjustments(ctx context.Context, adjustments []domain.ReconciliationAdjustment) error {
	args := m.Called(ctx, adjustments)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateAdjustment(ctx context.Context, adjustment domain.ReconciliationAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockReconciliationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockReconciliationRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReconciliationRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock BankStatementRepository ---
type MockBankStatementRepository struct {
	mock.Mock
}

var _ portsrepo.BankStatementRepositoryFacade = (*MockBankStatementRepository)(nil)

func (m *MockBankStatementRepository) FindStatementByID(ctx context.Context, companyID, statementID string) (*domain.BankStatement, error) {
	args := m.Called(ctx, companyID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatement), args.Error(1)
}

func (m *MockBankStatementRepository) ListBankTransactions(ctx context.Context, companyID, bankAccountID string, from, to time.Time) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, companyID, bankAccountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankStatementRepository) SaveStatement(ctx context.Context, statement domain.BankStatement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

// --- Mock LedgerReader ---
type MockLedgerReader struct {
	mock.Mock
}

var _ portsrepo.LedgerReader = (*MockLedgerReader)(nil)

func (m *MockLedgerReader) FindLedgerEntriesByJournalID(ctx context.Context, tenantID, journalEntryID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerReader) ListLedgerEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock JournalService (as used by ReconciliationService) ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetJournalByID(ctx context.Context, tenantID, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ValidateJournal(ctx context.Context, entry domain.JournalEntry) domain.JournalValidationResult {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.JournalValidationResult)
}

func (m *MockJournalService) PostJournal(ctx context.Context, tenantID, journalEntryID string, req dto.PostJournalRequest, userID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, tenantID, journalEntryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockJournalService) ReverseJournal(ctx context.Context, tenantID, journalEntryID, reason, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalEntryID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconRepo     *MockReconciliationRepository
	mockStatementRepo *MockBankStatementRepository
	mockLedgerReader  *MockLedgerReader
	mockJournalSvc    *MockJournalService
	service           portssvc.ReconciliationSvcFacade
	companyID         string
	userID            string
	periodStart       time.Time
	periodEnd         time.Time
}

func (s *ReconciliationServiceTestSuite) SetupTest() {
	s.mockReconRepo = new(MockReconciliationRepository)
	s.mockStatementRepo = new(MockBankStatementRepository)
	s.mockLedgerReader = new(MockLedgerReader)
	s.mockJournalSvc = new(MockJournalService)
	s.service = services.NewReconciliationService(
		s.mockReconRepo, s.mockStatementRepo, s.mockLedgerReader, s.mockJournalSvc,
		recon.DefaultMatchingConfig())
	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.periodStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.periodEnd = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (s *ReconciliationServiceTestSuite) session(status domain.ReconciliationStatus) *domain.ReconciliationSession {
	return &domain.ReconciliationSession{
		SessionID:      uuid.NewString(),
		CompanyID:      s.companyID,
		BankAccountID:  "acc-bank",
		CurrencyCode:   "USD",
		PeriodStart:    s.periodStart,
		PeriodEnd:      s.periodEnd,
		OpeningBalance: decimal.NewFromInt(100),
		ClosingBalance: decimal.NewFromInt(100),
		Status:         status,
	}
}

func (s *ReconciliationServiceTestSuite) TestCreateSession_Success() {
	ctx := context.Background()

	s.mockReconRepo.On("SaveSession", ctx, mock.AnythingOfType("domain.ReconciliationSession")).Return(nil).Once()

	session, err := s.service.CreateSession(ctx, s.companyID, dto.CreateSessionRequest{
		BankAccountID: "acc-bank",
		CurrencyCode:  "USD",
		PeriodStart:   s.periodStart,
		PeriodEnd:     s.periodEnd,
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ReconciliationDraft, session.Status)
	s.Equal(s.companyID, session.CompanyID)
	s.NotEmpty(session.SessionID)
}

func (s *ReconciliationServiceTestSuite) TestCreateSession_InvertedPeriod() {
	ctx := context.Background()

	_, err := s.service.CreateSession(ctx, s.companyID, dto.CreateSessionRequest{
		BankAccountID: "acc-bank",
		CurrencyCode:  "USD",
		PeriodStart:   s.periodEnd,
		PeriodEnd:     s.periodStart,
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockReconRepo.AssertNotCalled(s.T(), "SaveSession", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestPerformAutoMatch_FreshSession() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationDraft)
	matchDay := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	bankTxns := []domain.BankTransaction{
		{ID: "bt-1", Date: matchDay, Credit: decimalPtrSvc(decimal.NewFromInt(100))},
		{ID: "bt-2", Date: matchDay.AddDate(0, 0, 2), Debit: decimalPtrSvc(decimal.NewFromInt(50))},
	}
	ledgerEntries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", TransactionDate: matchDay, Credit: decimal.NewFromInt(100), Debit: decimal.Zero},
		{LedgerEntryID: "le-2", TransactionDate: matchDay.AddDate(0, 0, 2), Debit: decimal.NewFromInt(50), Credit: decimal.Zero},
	}

	var savedMatches []domain.ReconciliationMatch
	var updatedSession domain.ReconciliationSession

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockStatementRepo.On("ListBankTransactions", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(bankTxns, nil).Once()
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(ledgerEntries, nil).Once()
	s.mockReconRepo.On("ListMatchesBySession", ctx, session.SessionID, (*domain.MatchStatus)(nil)).Return([]domain.ReconciliationMatch{}, nil).Once()
	s.mockReconRepo.On("SaveMatches", ctx, mock.AnythingOfType("[]domain.ReconciliationMatch")).Run(func(args mock.Arguments) {
		savedMatches = args.Get(1).([]domain.ReconciliationMatch)
	}).Return(nil).Once()
	s.mockReconRepo.On("UpdateSession", ctx, mock.AnythingOfType("domain.ReconciliationSession")).Run(func(args mock.Arguments) {
		updatedSession = args.Get(1).(domain.ReconciliationSession)
	}).Return(nil).Once()

	resp, err := s.service.PerformAutoMatch(ctx, s.companyID, session.SessionID, s.userID)

	s.Require().NoError(err)
	s.Require().Len(resp.Matches, 2)
	s.InDelta(1.0, resp.MatchRatio, 1e-9)
	s.Equal(0, resp.UnmatchedBankTransactions)
	s.Equal(0, resp.UnmatchedLedgerEntries)

	s.Require().Len(savedMatches, 2)
	s.Equal(domain.MatchSuggested, savedMatches[0].Status)
	s.Equal("bt-1", savedMatches[0].BankTransactionID)
	s.Equal("le-1", savedMatches[0].LedgerTransactionID)
	s.Equal(string(recon.RuleExactMatch), savedMatches[0].Metadata["ruleApplied"])
	s.True(savedMatches[0].Amount.Equal(decimal.NewFromInt(100)))
	s.True(savedMatches[1].Amount.Equal(decimal.NewFromInt(-50)))

	s.Equal(domain.ReconciliationInProgress, updatedSession.Status)
	s.InDelta(1.0, updatedSession.AutoMatchRatio, 1e-9)
}

func (s *ReconciliationServiceTestSuite) TestPerformAutoMatch_ExcludesAlreadyMatched() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	matchDay := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	bankTxns := []domain.BankTransaction{
		{ID: "bt-1", Date: matchDay, Credit: decimalPtrSvc(decimal.NewFromInt(100))},
		{ID: "bt-2", Date: matchDay, Debit: decimalPtrSvc(decimal.NewFromInt(50))},
	}
	ledgerEntries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", TransactionDate: matchDay, Credit: decimal.NewFromInt(100), Debit: decimal.Zero},
		{LedgerEntryID: "le-2", TransactionDate: matchDay, Debit: decimal.NewFromInt(50), Credit: decimal.Zero},
	}
	existing := []domain.ReconciliationMatch{
		{MatchID: "m-1", SessionID: session.SessionID, BankTransactionID: "bt-1", LedgerTransactionID: "le-1", Status: domain.MatchConfirmed},
	}

	var savedMatches []domain.ReconciliationMatch

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockStatementRepo.On("ListBankTransactions", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(bankTxns, nil).Once()
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(ledgerEntries, nil).Once()
	s.mockReconRepo.On("ListMatchesBySession", ctx, session.SessionID, (*domain.MatchStatus)(nil)).Return(existing, nil).Once()
	s.mockReconRepo.On("SaveMatches", ctx, mock.AnythingOfType("[]domain.ReconciliationMatch")).Run(func(args mock.Arguments) {
		savedMatches = args.Get(1).([]domain.ReconciliationMatch)
	}).Return(nil).Once()
	s.mockReconRepo.On("UpdateSession", ctx, mock.AnythingOfType("domain.ReconciliationSession")).Return(nil).Once()

	resp, err := s.service.PerformAutoMatch(ctx, s.companyID, session.SessionID, s.userID)

	s.Require().NoError(err)
	s.Require().Len(savedMatches, 1)
	s.Equal("bt-2", savedMatches[0].BankTransactionID)
	s.Equal("le-2", savedMatches[0].LedgerTransactionID)
	s.Require().Len(resp.Matches, 1)
}

func (s *ReconciliationServiceTestSuite) TestPerformAutoMatch_PinnedStatement() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	session.Metadata = map[string]string{"statementID": "stmt-1"}
	matchDay := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	statement := &domain.BankStatement{
		StatementID:   "stmt-1",
		CompanyID:     s.companyID,
		BankAccountID: "acc-bank",
		PeriodStart:   s.periodStart,
		PeriodEnd:     s.periodEnd,
		Transactions: []domain.BankTransaction{
			{ID: "bt-1", Date: matchDay, Credit: decimalPtrSvc(decimal.NewFromInt(100))},
		},
	}
	ledgerEntries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", TransactionDate: matchDay, Credit: decimal.NewFromInt(100), Debit: decimal.Zero},
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockStatementRepo.On("FindStatementByID", ctx, s.companyID, "stmt-1").Return(statement, nil).Once()
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(ledgerEntries, nil).Once()
	s.mockReconRepo.On("ListMatchesBySession", ctx, session.SessionID, (*domain.MatchStatus)(nil)).Return([]domain.ReconciliationMatch{}, nil).Once()
	s.mockReconRepo.On("SaveMatches", ctx, mock.AnythingOfType("[]domain.ReconciliationMatch")).Return(nil).Once()
	s.mockReconRepo.On("UpdateSession", ctx, mock.AnythingOfType("domain.ReconciliationSession")).Return(nil).Once()

	resp, err := s.service.PerformAutoMatch(ctx, s.companyID, session.SessionID, s.userID)

	s.Require().NoError(err)
	s.Require().Len(resp.Matches, 1)
	s.mockStatementRepo.AssertNotCalled(s.T(), "ListBankTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestPerformAutoMatch_CompletedSession() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationCompleted)

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()

	_, err := s.service.PerformAutoMatch(ctx, s.companyID, session.SessionID, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockStatementRepo.AssertNotCalled(s.T(), "ListBankTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestConfirmMatches() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	match := &domain.ReconciliationMatch{
		MatchID:   "m-1",
		SessionID: session.SessionID,
		Status:    domain.MatchSuggested,
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockReconRepo.On("FindMatchByID", ctx, session.SessionID, "m-1").Return(match, nil).Once()
	s.mockReconRepo.On("UpdateMatchStatus", ctx, session.SessionID, "m-1", domain.MatchConfirmed, s.userID).Return(nil).Once()

	confirmed, err := s.service.ConfirmMatches(ctx, s.companyID, session.SessionID, []string{"m-1"}, s.userID)

	s.Require().NoError(err)
	s.Require().Len(confirmed, 1)
	s.Equal(domain.MatchConfirmed, confirmed[0].Status)
}

func (s *ReconciliationServiceTestSuite) TestConfirmMatches_AlreadyConfirmed() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	match := &domain.ReconciliationMatch{
		MatchID:   "m-1",
		SessionID: session.SessionID,
		Status:    domain.MatchConfirmed,
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockReconRepo.On("FindMatchByID", ctx, session.SessionID, "m-1").Return(match, nil).Once()

	_, err := s.service.ConfirmMatches(ctx, s.companyID, session.SessionID, []string{"m-1"}, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockReconRepo.AssertNotCalled(s.T(), "UpdateMatchStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestCreateManualMatch_SideAlreadyClaimed() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	existing := []domain.ReconciliationMatch{
		{MatchID: "m-1", BankTransactionID: "bt-1", LedgerTransactionID: "le-1", Status: domain.MatchConfirmed},
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockReconRepo.On("ListMatchesBySession", ctx, session.SessionID, (*domain.MatchStatus)(nil)).Return(existing, nil).Once()

	_, err := s.service.CreateManualMatch(ctx, s.companyID, session.SessionID, dto.CreateManualMatchRequest{
		BankTransactionID:   "bt-1",
		LedgerTransactionID: "le-9",
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ReconciliationServiceTestSuite) TestRecordAdjustment_ZeroAmount() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()

	_, err := s.service.RecordAdjustment(ctx, s.companyID, session.SessionID, dto.CreateAdjustmentRequest{
		Description:     "monthly fee",
		Amount:          decimal.Zero,
		AdjustmentType:  domain.AdjustmentFee,
		LedgerAccountID: "acc-fees",
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ReconciliationServiceTestSuite) TestBulkRecordAdjustments() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	session.ClosingBalance = decimal.NewFromFloat(96.25) // statement moved -3.75

	var saved []domain.ReconciliationAdjustment

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil)
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return([]domain.LedgerEntry{}, nil).Once()
	s.mockReconRepo.On("ListAdjustmentsBySession", ctx, session.SessionID).Return([]domain.ReconciliationAdjustment{}, nil).Once()
	s.mockReconRepo.On("SaveAdjustments", ctx, mock.AnythingOfType("[]domain.ReconciliationAdjustment")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.ReconciliationAdjustment)
	}).Return(nil).Once()

	adjustments, err := s.service.BulkRecordAdjustments(ctx, s.companyID, session.SessionID, dto.BulkCreateAdjustmentsRequest{
		Adjustments: []dto.CreateAdjustmentRequest{
			{Description: "monthly fee", Amount: decimal.NewFromInt(-5), AdjustmentType: domain.AdjustmentFee, LedgerAccountID: "acc-fees"},
			{Description: "interest earned", Amount: decimal.NewFromFloat(1.25), AdjustmentType: domain.AdjustmentInterest, LedgerAccountID: "acc-interest"},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.Len(adjustments, 2)
	s.Require().Len(saved, 2)
	s.NotEmpty(saved[0].AdjustmentID)
	s.Equal(session.SessionID, saved[1].SessionID)
}

func (s *ReconciliationServiceTestSuite) TestBulkRecordAdjustments_UnbalancedBatchRejected() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress) // statement moved 0

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil)
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return([]domain.LedgerEntry{}, nil).Once()
	s.mockReconRepo.On("ListAdjustmentsBySession", ctx, session.SessionID).Return([]domain.ReconciliationAdjustment{}, nil).Once()

	_, err := s.service.BulkRecordAdjustments(ctx, s.companyID, session.SessionID, dto.BulkCreateAdjustmentsRequest{
		Adjustments: []dto.CreateAdjustmentRequest{
			{Description: "monthly fee", Amount: decimal.NewFromInt(-5), AdjustmentType: domain.AdjustmentFee, LedgerAccountID: "acc-fees"},
		},
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockReconRepo.AssertNotCalled(s.T(), "SaveAdjustments", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestBulkRecordAdjustments_SkipBalanceValidation() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockReconRepo.On("SaveAdjustments", ctx, mock.AnythingOfType("[]domain.ReconciliationAdjustment")).Return(nil).Once()

	adjustments, err := s.service.BulkRecordAdjustments(ctx, s.companyID, session.SessionID, dto.BulkCreateAdjustmentsRequest{
		Adjustments: []dto.CreateAdjustmentRequest{
			{Description: "monthly fee", Amount: decimal.NewFromInt(-5), AdjustmentType: domain.AdjustmentFee, LedgerAccountID: "acc-fees"},
		},
		SkipBalanceValidation: true,
	}, s.userID)

	s.Require().NoError(err)
	s.Len(adjustments, 1)
	s.mockReconRepo.AssertNotCalled(s.T(), "ListAdjustmentsBySession", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestBulkRecordAdjustments_OneBadItemRejectsBatch() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()

	_, err := s.service.BulkRecordAdjustments(ctx, s.companyID, session.SessionID, dto.BulkCreateAdjustmentsRequest{
		Adjustments: []dto.CreateAdjustmentRequest{
			{Description: "monthly fee", Amount: decimal.NewFromInt(-5), AdjustmentType: domain.AdjustmentFee, LedgerAccountID: "acc-fees"},
			{Description: "", Amount: decimal.NewFromInt(1), AdjustmentType: domain.AdjustmentOther, LedgerAccountID: "acc-misc"},
		},
	}, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockReconRepo.AssertNotCalled(s.T(), "SaveAdjustments", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestPostAdjustmentJournal_NegativeAmountCreditsBank() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	adjustment := &domain.ReconciliationAdjustment{
		AdjustmentID:    "adj-1",
		SessionID:       session.SessionID,
		Description:     "monthly fee",
		Amount:          decimal.NewFromInt(-5),
		AdjustmentType:  domain.AdjustmentFee,
		LedgerAccountID: "acc-fees",
	}
	journalEntry := &domain.JournalEntry{JournalEntryID: "je-1", TenantID: s.companyID}

	var capturedReq dto.CreateJournalRequest
	var updatedAdjustment domain.ReconciliationAdjustment

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockReconRepo.On("FindAdjustmentByID", ctx, session.SessionID, "adj-1").Return(adjustment, nil).Once()
	s.mockJournalSvc.On("CreateJournal", ctx, s.companyID, mock.AnythingOfType("dto.CreateJournalRequest"), s.userID).Run(func(args mock.Arguments) {
		capturedReq = args.Get(2).(dto.CreateJournalRequest)
	}).Return(journalEntry, nil).Once()
	s.mockJournalSvc.On("PostJournal", ctx, s.companyID, "je-1", dto.PostJournalRequest{}, s.userID).Return(&domain.PostingResult{JournalEntryID: "je-1"}, nil).Once()
	s.mockReconRepo.On("UpdateAdjustment", ctx, mock.AnythingOfType("domain.ReconciliationAdjustment")).Run(func(args mock.Arguments) {
		updatedAdjustment = args.Get(1).(domain.ReconciliationAdjustment)
	}).Return(nil).Once()
	s.mockJournalSvc.On("GetJournalByID", ctx, s.companyID, "je-1").Return(journalEntry, nil).Once()

	entry, err := s.service.PostAdjustmentJournal(ctx, s.companyID, session.SessionID, "adj-1", s.userID)

	s.Require().NoError(err)
	s.Equal("je-1", entry.JournalEntryID)

	s.Equal(domain.SourceAdjustment, capturedReq.Source)
	s.Require().Len(capturedReq.Lines, 2)
	// Outflow adjustment: credit the bank account, debit the expense account.
	s.Equal("acc-bank", capturedReq.Lines[0].AccountID)
	s.True(capturedReq.Lines[0].Credit.Equal(decimal.NewFromInt(5)))
	s.Equal("acc-fees", capturedReq.Lines[1].AccountID)
	s.True(capturedReq.Lines[1].Debit.Equal(decimal.NewFromInt(5)))

	s.Require().NotNil(updatedAdjustment.PostedJournalID)
	s.Equal("je-1", *updatedAdjustment.PostedJournalID)
}

func (s *ReconciliationServiceTestSuite) TestPostAdjustmentJournal_AlreadyPosted() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	postedID := "je-existing"
	adjustment := &domain.ReconciliationAdjustment{
		AdjustmentID:    "adj-1",
		SessionID:       session.SessionID,
		Amount:          decimal.NewFromInt(-5),
		PostedJournalID: &postedID,
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockReconRepo.On("FindAdjustmentByID", ctx, session.SessionID, "adj-1").Return(adjustment, nil).Once()

	_, err := s.service.PostAdjustmentJournal(ctx, s.companyID, session.SessionID, "adj-1", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestReverseAdjustmentJournal() {
	ctx := context.Background()
	postedID := "je-1"
	adjustment := &domain.ReconciliationAdjustment{
		AdjustmentID:    "adj-1",
		SessionID:       "sess-1",
		Amount:          decimal.NewFromInt(-5),
		PostedJournalID: &postedID,
	}
	reversal := &domain.JournalEntry{JournalEntryID: "je-2"}

	var updated domain.ReconciliationAdjustment

	s.mockReconRepo.On("FindAdjustmentByID", ctx, "sess-1", "adj-1").Return(adjustment, nil).Once()
	s.mockJournalSvc.On("ReverseJournal", ctx, s.companyID, "je-1", "fee was valid", s.userID).Return(reversal, nil).Once()
	s.mockReconRepo.On("UpdateAdjustment", ctx, mock.AnythingOfType("domain.ReconciliationAdjustment")).Run(func(args mock.Arguments) {
		updated = args.Get(1).(domain.ReconciliationAdjustment)
	}).Return(nil).Once()

	entry, err := s.service.ReverseAdjustmentJournal(ctx, s.companyID, "sess-1", "adj-1", "fee was valid", s.userID)

	s.Require().NoError(err)
	s.Equal("je-2", entry.JournalEntryID)
	s.Require().NotNil(updated.ReversalJournalID)
	s.Equal("je-2", *updated.ReversalJournalID)
	s.Equal("fee was valid", updated.ReversalReason)
	s.NotNil(updated.ReversedAt)
}

func (s *ReconciliationServiceTestSuite) TestReverseAdjustmentJournal_NotPosted() {
	ctx := context.Background()
	adjustment := &domain.ReconciliationAdjustment{
		AdjustmentID: "adj-1",
		SessionID:    "sess-1",
		Amount:       decimal.NewFromInt(-5),
	}

	s.mockReconRepo.On("FindAdjustmentByID", ctx, "sess-1", "adj-1").Return(adjustment, nil).Once()

	_, err := s.service.ReverseAdjustmentJournal(ctx, s.companyID, "sess-1", "adj-1", "oops", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ReconciliationServiceTestSuite) TestValidateSessionBalance() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	session.ClosingBalance = decimal.NewFromInt(120)

	bankTxns := []domain.BankTransaction{
		{ID: "bt-1", Credit: decimalPtrSvc(decimal.NewFromInt(50))},
		{ID: "bt-2", Debit: decimalPtrSvc(decimal.NewFromInt(30))},
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockStatementRepo.On("ListBankTransactions", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(bankTxns, nil).Once()

	resp, err := s.service.ValidateSessionBalance(ctx, s.companyID, session.SessionID)

	s.Require().NoError(err)
	s.True(resp.IsValid)
	s.True(resp.ExpectedBalance.Equal(decimal.NewFromInt(120)))
}

func (s *ReconciliationServiceTestSuite) TestValidateAdjustmentBalance() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	session.ClosingBalance = decimal.NewFromInt(70) // statement moved -30

	// Ledger only explains -25 of the movement.
	ledgerEntries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", Debit: decimal.NewFromInt(25), Credit: decimal.Zero},
	}
	adjustments := []domain.ReconciliationAdjustment{
		{AdjustmentID: "adj-1", Amount: decimal.NewFromInt(-5), AdjustmentType: domain.AdjustmentFee},
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(ledgerEntries, nil).Once()
	s.mockReconRepo.On("ListAdjustmentsBySession", ctx, session.SessionID).Return(adjustments, nil).Once()

	resp, err := s.service.ValidateAdjustmentBalance(ctx, s.companyID, session.SessionID, nil)

	s.Require().NoError(err)
	s.True(resp.IsBalanced)
	s.True(resp.UnexplainedDifference.Equal(decimal.NewFromInt(-5)))
	s.True(resp.AdjustmentTotal.Equal(decimal.NewFromInt(-5)))
}

func (s *ReconciliationServiceTestSuite) TestValidateAdjustmentBalance_ProposedCounted() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	session.ClosingBalance = decimal.NewFromInt(70) // statement moved -30

	// Ledger explains -25; nothing recorded yet, but a -5 adjustment is
	// proposed.
	ledgerEntries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", Debit: decimal.NewFromInt(25), Credit: decimal.Zero},
	}
	proposed := []dto.CreateAdjustmentRequest{
		{Description: "monthly fee", Amount: decimal.NewFromInt(-5), AdjustmentType: domain.AdjustmentFee, LedgerAccountID: "acc-fees"},
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(ledgerEntries, nil).Once()
	s.mockReconRepo.On("ListAdjustmentsBySession", ctx, session.SessionID).Return([]domain.ReconciliationAdjustment{}, nil).Once()

	resp, err := s.service.ValidateAdjustmentBalance(ctx, s.companyID, session.SessionID, proposed)

	s.Require().NoError(err)
	s.True(resp.IsBalanced)
	s.True(resp.AdjustmentTotal.Equal(decimal.NewFromInt(-5)))
}

func (s *ReconciliationServiceTestSuite) TestValidateAdjustmentBalance_ReversedAdjustmentExcluded() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	session.ClosingBalance = decimal.NewFromInt(70)

	ledgerEntries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", Debit: decimal.NewFromInt(25), Credit: decimal.Zero},
	}
	reversalID := "je-2"
	adjustments := []domain.ReconciliationAdjustment{
		{AdjustmentID: "adj-1", Amount: decimal.NewFromInt(-5), ReversalJournalID: &reversalID},
	}

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil).Once()
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return(ledgerEntries, nil).Once()
	s.mockReconRepo.On("ListAdjustmentsBySession", ctx, session.SessionID).Return(adjustments, nil).Once()

	resp, err := s.service.ValidateAdjustmentBalance(ctx, s.companyID, session.SessionID, nil)

	s.Require().NoError(err)
	s.False(resp.IsBalanced)
	s.True(resp.AdjustmentTotal.IsZero())
}

func (s *ReconciliationServiceTestSuite) TestCompleteSession_Balanced() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)

	var updated domain.ReconciliationSession

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil)
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return([]domain.LedgerEntry{}, nil).Once()
	s.mockReconRepo.On("ListAdjustmentsBySession", ctx, session.SessionID).Return([]domain.ReconciliationAdjustment{}, nil).Once()
	s.mockReconRepo.On("DeleteSuggestedMatches", ctx, session.SessionID).Return(nil).Once()
	s.mockReconRepo.On("UpdateSession", ctx, mock.AnythingOfType("domain.ReconciliationSession")).Run(func(args mock.Arguments) {
		updated = args.Get(1).(domain.ReconciliationSession)
	}).Return(nil).Once()

	completed, err := s.service.CompleteSession(ctx, s.companyID, session.SessionID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ReconciliationCompleted, completed.Status)
	s.NotNil(completed.CompletedAt)
	s.Equal(domain.ReconciliationCompleted, updated.Status)
}

func (s *ReconciliationServiceTestSuite) TestCompleteSession_Unbalanced() {
	ctx := context.Background()
	session := s.session(domain.ReconciliationInProgress)
	session.ClosingBalance = decimal.NewFromInt(150) // +50 unexplained

	s.mockReconRepo.On("FindSessionByID", ctx, s.companyID, session.SessionID).Return(session, nil)
	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.companyID, "acc-bank", s.periodStart, s.periodEnd).Return([]domain.LedgerEntry{}, nil).Once()
	s.mockReconRepo.On("ListAdjustmentsBySession", ctx, session.SessionID).Return([]domain.ReconciliationAdjustment{}, nil).Once()

	_, err := s.service.CompleteSession(ctx, s.companyID, session.SessionID, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockReconRepo.AssertNotCalled(s.T(), "UpdateSession", mock.Anything, mock.Anything)
}

func decimalPtrSvc(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
