package dto

import (
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest defines one line of a journal entry to create.
type JournalLineRequest struct {
	AccountID    string            `json:"accountID" binding:"required"`
	AccountCode  string            `json:"accountCode"`
	AccountName  string            `json:"accountName"`
	Description  string            `json:"description"`
	Debit        decimal.Decimal   `json:"debit"`
	Credit       decimal.Decimal   `json:"credit"`
	CurrencyCode string            `json:"currencyCode" binding:"required"`
	ExchangeRate *decimal.Decimal  `json:"exchangeRate"`
	Dimensions   map[string]string `json:"dimensions"`
}

// CreateJournalRequest defines the data needed to create a draft journal entry.
type CreateJournalRequest struct {
	JournalCode     string               `json:"journalCode"`
	Reference       string               `json:"reference"`
	Description     string               `json:"description" binding:"required"`
	Source          domain.JournalSource `json:"source"`
	TransactionDate time.Time            `json:"transactionDate" binding:"required"`
	FiscalPeriodID  string               `json:"fiscalPeriodID"`
	Metadata        map[string]string    `json:"metadata"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostJournalRequest defines the inputs of a posting run.
type PostJournalRequest struct {
	// PostingDate defaults to now when omitted.
	PostingDate *time.Time `json:"postingDate"`
}

// ReverseJournalRequest reverses a posted journal entry.
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string            `json:"lineID"`
	AccountID    string            `json:"accountID"`
	AccountCode  string            `json:"accountCode"`
	AccountName  string            `json:"accountName"`
	Description  string            `json:"description"`
	Debit        decimal.Decimal   `json:"debit"`
	Credit       decimal.Decimal   `json:"credit"`
	CurrencyCode string            `json:"currencyCode"`
	Dimensions   map[string]string `json:"dimensions,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalEntryID  string                `json:"journalEntryID"`
	JournalCode     string                `json:"journalCode"`
	Reference       string                `json:"reference"`
	Description     string                `json:"description"`
	Status          domain.JournalStatus  `json:"status"`
	Source          domain.JournalSource  `json:"source"`
	TransactionDate time.Time             `json:"transactionDate"`
	PostingDate     *time.Time            `json:"postingDate,omitempty"`
	FiscalPeriodID  string                `json:"fiscalPeriodID,omitempty"`
	ReversalOf      *string               `json:"reversalOf,omitempty"`
	Lines           []JournalLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ValidationIssueResponse mirrors one validation finding.
type ValidationIssueResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// JournalValidationResponse defines the result of validating a journal entry.
type JournalValidationResponse struct {
	IsBalanced bool                      `json:"isBalanced"`
	Issues     []ValidationIssueResponse `json:"issues"`
}

// ListJournalsParams filters a journal listing.
type ListJournalsParams struct {
	Status *domain.JournalStatus `form:"status"`
	Source *domain.JournalSource `form:"source"`
	From   *time.Time            `form:"from" time_format:"2006-01-02"`
	To     *time.Time            `form:"to" time_format:"2006-01-02"`
	Limit  int                   `form:"limit,default=50"`
	Offset int                   `form:"offset,default=0"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       line.LineID,
		AccountID:    line.AccountID,
		AccountCode:  line.AccountCode,
		AccountName:  line.AccountName,
		Description:  line.Description,
		Debit:        line.Debit,
		Credit:       line.Credit,
		CurrencyCode: line.CurrencyCode,
		Dimensions:   line.Dimensions,
	}
}

// ToJournalResponse converts a domain.JournalEntry to its DTO.
func ToJournalResponse(entry *domain.JournalEntry) JournalResponse {
	lines := make([]JournalLineResponse, len(entry.Lines))
	for i := range entry.Lines {
		lines[i] = ToJournalLineResponse(&entry.Lines[i])
	}
	return JournalResponse{
		JournalEntryID:  entry.JournalEntryID,
		JournalCode:     entry.JournalCode,
		Reference:       entry.Reference,
		Description:     entry.Description,
		Status:          entry.Status,
		Source:          entry.Source,
		TransactionDate: entry.TransactionDate,
		PostingDate:     entry.PostingDate,
		FiscalPeriodID:  entry.FiscalPeriodID,
		ReversalOf:      entry.ReversalOf,
		Lines:           lines,
		CreatedAt:       entry.CreatedAt,
		CreatedBy:       entry.CreatedBy,
	}
}

// ToJournalValidationResponse converts a domain validation result to its DTO.
func ToJournalValidationResponse(result *domain.JournalValidationResult) JournalValidationResponse {
	issues := make([]ValidationIssueResponse, len(result.Issues))
	for i, issue := range result.Issues {
		issues[i] = ValidationIssueResponse{
			Code:     issue.Code,
			Message:  issue.Message,
			Severity: issue.Severity,
		}
	}
	return JournalValidationResponse{
		IsBalanced: result.IsBalanced,
		Issues:     issues,
	}
}
