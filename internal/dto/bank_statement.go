package dto

import (
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImportBankTransactionRequest is one statement line in an import payload.
// Debit, Credit and Balance are pointers because statement exports populate
// them inconsistently.
type ImportBankTransactionRequest struct {
	Date        time.Time        `json:"date" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Debit       *decimal.Decimal `json:"debit"`
	Credit      *decimal.Decimal `json:"credit"`
	Balance     *decimal.Decimal `json:"balance"`
	Reference   string           `json:"reference"`
	Type        string           `json:"type"`
	Category    string           `json:"category"`
}

// ImportStatementRequest uploads one parsed bank statement.
type ImportStatementRequest struct {
	BankAccountID string                         `json:"bankAccountID" binding:"required"`
	PeriodStart   time.Time                      `json:"periodStart" binding:"required"`
	PeriodEnd     time.Time                      `json:"periodEnd" binding:"required"`
	Transactions  []ImportBankTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// BankTransactionResponse defines the data returned for one statement line.
type BankTransactionResponse struct {
	ID          string           `json:"id"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Debit       *decimal.Decimal `json:"debit,omitempty"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	Type        string           `json:"type,omitempty"`
	Category    string           `json:"category,omitempty"`
}

// StatementResponse defines the data returned for an imported statement.
type StatementResponse struct {
	StatementID   string                    `json:"statementID"`
	CompanyID     string                    `json:"companyID"`
	BankAccountID string                    `json:"bankAccountID"`
	PeriodStart   time.Time                 `json:"periodStart"`
	PeriodEnd     time.Time                 `json:"periodEnd"`
	Transactions  []BankTransactionResponse `json:"transactions"`
}

// ToStatementResponse converts a domain statement to its DTO.
func ToStatementResponse(s *domain.BankStatement) StatementResponse {
	transactions := make([]BankTransactionResponse, len(s.Transactions))
	for i, t := range s.Transactions {
		transactions[i] = BankTransactionResponse{
			ID:          t.ID,
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
	return StatementResponse{
		StatementID:   s.StatementID,
		CompanyID:     s.CompanyID,
		BankAccountID: s.BankAccountID,
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		Transactions:  transactions,
	}
}
