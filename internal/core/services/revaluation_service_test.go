package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/core/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyConverter ---
type MockCurrencyConverter struct {
	mock.Mock
}

var _ portssvc.CurrencyConverter = (*MockCurrencyConverter)(nil)

func (m *MockCurrencyConverter) RateAsOf(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RevaluationServiceTestSuite struct {
	suite.Suite
	mockLedgerReader *MockLedgerReader
	mockConverter    *MockCurrencyConverter
	mockJournalSvc   *MockJournalService
	service          portssvc.RevaluationSvc
	tenantID         string
	userID           string
	asOf             time.Time
}

func (s *RevaluationServiceTestSuite) SetupTest() {
	s.mockLedgerReader = new(MockLedgerReader)
	s.mockConverter = new(MockCurrencyConverter)
	s.mockJournalSvc = new(MockJournalService)
	s.service = services.NewRevaluationService(s.mockLedgerReader, s.mockConverter, s.mockJournalSvc)
	s.tenantID = uuid.NewString()
	s.userID = uuid.NewString()
	s.asOf = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (s *RevaluationServiceTestSuite) request() dto.RunRevaluationRequest {
	return dto.RunRevaluationRequest{
		AsOfDate:         s.asOf,
		BaseCurrencyCode: "USD",
		AccountIDs:       []string{"acc-eur"},
		GainAccountID:    "acc-fx-gain",
		LossAccountID:    "acc-fx-loss",
	}
}

func (s *RevaluationServiceTestSuite) TestRunRevaluation_GainPostsJournal() {
	ctx := context.Background()
	entryDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	// EUR 100 booked at 1.10, revalued at 1.20: +10 unrealized gain.
	entries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", CurrencyCode: "EUR", Debit: decimal.NewFromInt(100), Credit: decimal.Zero, TransactionDate: entryDate},
	}
	journalEntry := &domain.JournalEntry{JournalEntryID: "je-1"}

	var capturedReq dto.CreateJournalRequest

	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.tenantID, "acc-eur", mock.AnythingOfType("time.Time"), s.asOf).Return(entries, nil).Once()
	s.mockConverter.On("RateAsOf", ctx, "EUR", "USD", entryDate).Return(decimal.NewFromFloat(1.10), nil).Once()
	s.mockConverter.On("RateAsOf", ctx, "EUR", "USD", s.asOf).Return(decimal.NewFromFloat(1.20), nil).Once()
	s.mockJournalSvc.On("CreateJournal", ctx, s.tenantID, mock.AnythingOfType("dto.CreateJournalRequest"), s.userID).Run(func(args mock.Arguments) {
		capturedReq = args.Get(2).(dto.CreateJournalRequest)
	}).Return(journalEntry, nil).Once()
	s.mockJournalSvc.On("PostJournal", ctx, s.tenantID, "je-1", dto.PostJournalRequest{}, s.userID).Return(&domain.PostingResult{JournalEntryID: "je-1"}, nil).Once()

	resp, err := s.service.RunRevaluation(ctx, s.tenantID, s.request(), s.userID)

	s.Require().NoError(err)
	s.Require().Len(resp.Lines, 1)
	s.True(resp.Lines[0].ForeignBalance.Equal(decimal.NewFromInt(100)))
	s.True(resp.Lines[0].BookValue.Equal(decimal.NewFromInt(110)))
	s.True(resp.Lines[0].RevaluedValue.Equal(decimal.NewFromInt(120)))
	s.True(resp.TotalDelta.Equal(decimal.NewFromInt(10)))
	s.Require().NotNil(resp.JournalEntryID)
	s.Equal("je-1", *resp.JournalEntryID)

	s.Equal(domain.SourceRevaluation, capturedReq.Source)
	s.Require().Len(capturedReq.Lines, 2)
	s.Equal("acc-eur", capturedReq.Lines[0].AccountID)
	s.True(capturedReq.Lines[0].Debit.Equal(decimal.NewFromInt(10)))
	s.Equal("acc-fx-gain", capturedReq.Lines[1].AccountID)
	s.True(capturedReq.Lines[1].Credit.Equal(decimal.NewFromInt(10)))
}

func (s *RevaluationServiceTestSuite) TestRunRevaluation_LossBooksAgainstLossAccount() {
	ctx := context.Background()
	entryDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	entries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", CurrencyCode: "EUR", Debit: decimal.NewFromInt(100), Credit: decimal.Zero, TransactionDate: entryDate},
	}
	journalEntry := &domain.JournalEntry{JournalEntryID: "je-1"}

	var capturedReq dto.CreateJournalRequest

	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.tenantID, "acc-eur", mock.AnythingOfType("time.Time"), s.asOf).Return(entries, nil).Once()
	s.mockConverter.On("RateAsOf", ctx, "EUR", "USD", entryDate).Return(decimal.NewFromFloat(1.20), nil).Once()
	s.mockConverter.On("RateAsOf", ctx, "EUR", "USD", s.asOf).Return(decimal.NewFromFloat(1.10), nil).Once()
	s.mockJournalSvc.On("CreateJournal", ctx, s.tenantID, mock.AnythingOfType("dto.CreateJournalRequest"), s.userID).Run(func(args mock.Arguments) {
		capturedReq = args.Get(2).(dto.CreateJournalRequest)
	}).Return(journalEntry, nil).Once()
	s.mockJournalSvc.On("PostJournal", ctx, s.tenantID, "je-1", dto.PostJournalRequest{}, s.userID).Return(&domain.PostingResult{JournalEntryID: "je-1"}, nil).Once()

	resp, err := s.service.RunRevaluation(ctx, s.tenantID, s.request(), s.userID)

	s.Require().NoError(err)
	s.True(resp.TotalDelta.Equal(decimal.NewFromInt(-10)))

	s.Require().Len(capturedReq.Lines, 2)
	s.True(capturedReq.Lines[0].Credit.Equal(decimal.NewFromInt(10)))
	s.Equal("acc-fx-loss", capturedReq.Lines[1].AccountID)
	s.True(capturedReq.Lines[1].Debit.Equal(decimal.NewFromInt(10)))
}

func (s *RevaluationServiceTestSuite) TestRunRevaluation_NoDeltaSkipsJournal() {
	ctx := context.Background()
	entryDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	entries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", CurrencyCode: "EUR", Debit: decimal.NewFromInt(100), Credit: decimal.Zero, TransactionDate: entryDate},
	}

	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.tenantID, "acc-eur", mock.AnythingOfType("time.Time"), s.asOf).Return(entries, nil).Once()
	s.mockConverter.On("RateAsOf", ctx, "EUR", "USD", mock.AnythingOfType("time.Time")).Return(decimal.NewFromFloat(1.10), nil)

	resp, err := s.service.RunRevaluation(ctx, s.tenantID, s.request(), s.userID)

	s.Require().NoError(err)
	s.True(resp.TotalDelta.IsZero())
	s.Nil(resp.JournalEntryID)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RevaluationServiceTestSuite) TestRunRevaluation_BaseCurrencyAccountSkipped() {
	ctx := context.Background()

	entries := []domain.LedgerEntry{
		{LedgerEntryID: "le-1", CurrencyCode: "USD", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
	}

	s.mockLedgerReader.On("ListLedgerEntriesByAccount", ctx, s.tenantID, "acc-eur", mock.AnythingOfType("time.Time"), s.asOf).Return(entries, nil).Once()

	resp, err := s.service.RunRevaluation(ctx, s.tenantID, s.request(), s.userID)

	s.Require().NoError(err)
	s.Empty(resp.Lines)
	s.mockConverter.AssertNotCalled(s.T(), "RateAsOf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RevaluationServiceTestSuite) TestRunRevaluation_NoAccounts() {
	ctx := context.Background()
	req := s.request()
	req.AccountIDs = nil

	_, err := s.service.RunRevaluation(ctx, s.tenantID, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestRevaluationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RevaluationServiceTestSuite))
}
