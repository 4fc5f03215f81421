package mapping

import (
	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/models"
)

// ToModelJournalEntry converts a domain journal entry to its row form. Lines
// are converted separately because they live in their own table.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:  d.JournalEntryID,
		TenantID:        d.TenantID,
		FiscalPeriodID:  d.FiscalPeriodID,
		JournalCode:     d.JournalCode,
		Reference:       d.Reference,
		Description:     d.Description,
		Status:          models.JournalStatus(d.Status),
		Source:          string(d.Source),
		TransactionDate: d.TransactionDate,
		PostingDate:     d.PostingDate,
		CreatedBy:       d.CreatedBy,
		UpdatedBy:       d.CreatedBy,
		ReversalOf:      d.ReversalOf,
		Metadata:        d.Metadata,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDomainJournalEntry converts a journal row to the domain type. Lines must
// be attached by the caller.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:  m.JournalEntryID,
		TenantID:        m.TenantID,
		FiscalPeriodID:  m.FiscalPeriodID,
		JournalCode:     m.JournalCode,
		Reference:       m.Reference,
		Description:     m.Description,
		Status:          domain.JournalStatus(m.Status),
		Source:          domain.JournalSource(m.Source),
		TransactionDate: m.TransactionDate,
		PostingDate:     m.PostingDate,
		CreatedBy:       m.CreatedBy,
		ReversalOf:      m.ReversalOf,
		Metadata:        m.Metadata,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToModelJournalLine(journalEntryID string, d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		JournalEntryID: journalEntryID,
		AccountID:      d.AccountID,
		AccountCode:    d.AccountCode,
		AccountName:    d.AccountName,
		Description:    d.Description,
		Debit:          d.Debit,
		Credit:         d.Credit,
		CurrencyCode:   d.CurrencyCode,
		ExchangeRate:   d.ExchangeRate,
		Dimensions:     d.Dimensions,
	}
}

func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		AccountID:    m.AccountID,
		AccountCode:  m.AccountCode,
		AccountName:  m.AccountName,
		Description:  m.Description,
		Debit:        m.Debit,
		Credit:       m.Credit,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		Dimensions:   m.Dimensions,
	}
}

func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, 0, len(ms))
	for _, m := range ms {
		lines = append(lines, ToDomainJournalLine(m))
	}
	return lines
}
