package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/core/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BankStatementServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBankStatementRepository
	service  portssvc.BankStatementSvc
	ctx      context.Context
}

func (s *BankStatementServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockBankStatementRepository)
	s.service = services.NewBankStatementService(s.mockRepo)
	s.ctx = context.Background()
}

func TestBankStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankStatementServiceTestSuite))
}

func (s *BankStatementServiceTestSuite) importRequest() dto.ImportStatementRequest {
	credit := decimal.NewFromFloat(250.00)
	debit := decimal.NewFromFloat(42.50)
	return dto.ImportStatementRequest{
		BankAccountID: "acct-operating",
		PeriodStart:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Transactions: []dto.ImportBankTransactionRequest{
			{
				Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
				Description: "Customer payment INV-104",
				Credit:      &credit,
				Reference:   "INV-104",
			},
			{
				Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
				Description: "Card processing fee",
				Debit:       &debit,
			},
		},
	}
}

func (s *BankStatementServiceTestSuite) TestImportStatement_Success() {
	req := s.importRequest()

	var saved domain.BankStatement
	s.mockRepo.On("SaveStatement", s.ctx, mock.AnythingOfType("domain.BankStatement")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.BankStatement) }).
		Return(nil).Once()

	statement, err := s.service.ImportStatement(s.ctx, "comp-1", req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(statement)
	s.NotEmpty(statement.StatementID)
	s.Equal("comp-1", statement.CompanyID)
	s.Equal("acct-operating", statement.BankAccountID)
	s.Len(statement.Transactions, 2)
	for _, txn := range statement.Transactions {
		s.NotEmpty(txn.ID)
		s.Equal(statement.StatementID, txn.StatementID)
	}
	s.Equal(statement.StatementID, saved.StatementID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *BankStatementServiceTestSuite) TestImportStatement_PeriodInverted() {
	req := s.importRequest()
	req.PeriodStart, req.PeriodEnd = req.PeriodEnd, req.PeriodStart

	_, err := s.service.ImportStatement(s.ctx, "comp-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveStatement", mock.Anything, mock.Anything)
}

func (s *BankStatementServiceTestSuite) TestImportStatement_TransactionOutsidePeriod() {
	req := s.importRequest()
	req.Transactions[1].Date = time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	_, err := s.service.ImportStatement(s.ctx, "comp-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BankStatementServiceTestSuite) TestImportStatement_AmountMissing() {
	req := s.importRequest()
	req.Transactions[0].Debit = nil
	req.Transactions[0].Credit = nil

	_, err := s.service.ImportStatement(s.ctx, "comp-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BankStatementServiceTestSuite) TestImportStatement_RepoError() {
	req := s.importRequest()
	repoErr := errors.New("connection reset")
	s.mockRepo.On("SaveStatement", s.ctx, mock.AnythingOfType("domain.BankStatement")).Return(repoErr).Once()

	_, err := s.service.ImportStatement(s.ctx, "comp-1", req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, repoErr)
}

func (s *BankStatementServiceTestSuite) TestGetStatementByID() {
	want := &domain.BankStatement{StatementID: "stmt-1", CompanyID: "comp-1"}
	s.mockRepo.On("FindStatementByID", s.ctx, "comp-1", "stmt-1").Return(want, nil).Once()

	got, err := s.service.GetStatementByID(s.ctx, "comp-1", "stmt-1")

	s.Require().NoError(err)
	s.Equal(want, got)
}
