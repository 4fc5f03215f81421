package mapping

import (
	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/models"
)

func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerEntryID:     d.LedgerEntryID,
		TenantID:          d.TenantID,
		JournalEntryID:    d.JournalEntryID,
		JournalLineID:     d.JournalLineID,
		AccountID:         d.AccountID,
		AccountCode:       d.AccountCode,
		AccountName:       d.AccountName,
		Debit:             d.Debit,
		Credit:            d.Credit,
		CumulativeBalance: d.CumulativeBalance,
		CurrencyCode:      d.CurrencyCode,
		TransactionDate:   d.TransactionDate,
		PostingDate:       d.PostingDate,
		FiscalPeriodID:    d.FiscalPeriodID,
		Source:            string(d.Source),
		Description:       d.Description,
		Metadata:          d.Metadata,
		Dimensions:        d.Dimensions,
		CreatedAt:         d.CreatedAt,
	}
}

func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:     m.LedgerEntryID,
		TenantID:          m.TenantID,
		JournalEntryID:    m.JournalEntryID,
		JournalLineID:     m.JournalLineID,
		AccountID:         m.AccountID,
		AccountCode:       m.AccountCode,
		AccountName:       m.AccountName,
		Debit:             m.Debit,
		Credit:            m.Credit,
		CumulativeBalance: m.CumulativeBalance,
		CurrencyCode:      m.CurrencyCode,
		TransactionDate:   m.TransactionDate,
		PostingDate:       m.PostingDate,
		FiscalPeriodID:    m.FiscalPeriodID,
		Source:            domain.JournalSource(m.Source),
		Description:       m.Description,
		Metadata:          m.Metadata,
		Dimensions:        m.Dimensions,
		CreatedAt:         m.CreatedAt,
	}
}

func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(ms))
	for _, m := range ms {
		entries = append(entries, ToDomainLedgerEntry(m))
	}
	return entries
}
