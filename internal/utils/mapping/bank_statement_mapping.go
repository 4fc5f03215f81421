package mapping

import (
	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/models"
)

func ToModelBankStatement(d domain.BankStatement) models.BankStatement {
	return models.BankStatement{
		StatementID:   d.StatementID,
		CompanyID:     d.CompanyID,
		BankAccountID: d.BankAccountID,
		PeriodStart:   d.PeriodStart,
		PeriodEnd:     d.PeriodEnd,
	}
}

func ToDomainBankStatement(m models.BankStatement) domain.BankStatement {
	return domain.BankStatement{
		StatementID:   m.StatementID,
		CompanyID:     m.CompanyID,
		BankAccountID: m.BankAccountID,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
	}
}

func ToModelBankTransaction(statementID string, d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTransactionID: d.ID,
		StatementID:       statementID,
		TransactionDate:   d.Date,
		Description:       d.Description,
		Debit:             d.Debit,
		Credit:            d.Credit,
		Balance:           d.Balance,
		Reference:         d.Reference,
		Type:              d.Type,
		Category:          d.Category,
	}
}

func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		ID:          m.BankTransactionID,
		StatementID: m.StatementID,
		Date:        m.TransactionDate,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Balance:     m.Balance,
		Reference:   m.Reference,
		Type:        m.Type,
		Category:    m.Category,
	}
}

func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	txns := make([]domain.BankTransaction, 0, len(ms))
	for _, m := range ms {
		txns = append(txns, ToDomainBankTransaction(m))
	}
	return txns
}
