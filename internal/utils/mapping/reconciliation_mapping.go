package mapping

import (
	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/models"
)

func ToModelReconciliationSession(d domain.ReconciliationSession) models.ReconciliationSession {
	return models.ReconciliationSession{
		SessionID:       d.SessionID,
		CompanyID:       d.CompanyID,
		BankAccountID:   d.BankAccountID,
		BankAccountName: d.BankAccountName,
		CurrencyCode:    d.CurrencyCode,
		PeriodStart:     d.PeriodStart,
		PeriodEnd:       d.PeriodEnd,
		OpeningBalance:  d.OpeningBalance,
		ClosingBalance:  d.ClosingBalance,
		Status:          string(d.Status),
		AutoMatchRatio:  d.AutoMatchRatio,
		CompletedAt:     d.CompletedAt,
		Notes:           d.Notes,
		Metadata:        d.Metadata,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReconciliationSession(m models.ReconciliationSession) domain.ReconciliationSession {
	return domain.ReconciliationSession{
		SessionID:       m.SessionID,
		CompanyID:       m.CompanyID,
		BankAccountID:   m.BankAccountID,
		BankAccountName: m.BankAccountName,
		CurrencyCode:    m.CurrencyCode,
		PeriodStart:     m.PeriodStart,
		PeriodEnd:       m.PeriodEnd,
		OpeningBalance:  m.OpeningBalance,
		ClosingBalance:  m.ClosingBalance,
		Status:          domain.ReconciliationStatus(m.Status),
		AutoMatchRatio:  m.AutoMatchRatio,
		CompletedAt:     m.CompletedAt,
		Notes:           m.Notes,
		Metadata:        m.Metadata,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainReconciliationSessionSlice(ms []models.ReconciliationSession) []domain.ReconciliationSession {
	sessions := make([]domain.ReconciliationSession, 0, len(ms))
	for _, m := range ms {
		sessions = append(sessions, ToDomainReconciliationSession(m))
	}
	return sessions
}

func ToModelReconciliationMatch(d domain.ReconciliationMatch) models.ReconciliationMatch {
	return models.ReconciliationMatch{
		MatchID:             d.MatchID,
		SessionID:           d.SessionID,
		BankTransactionID:   d.BankTransactionID,
		LedgerTransactionID: d.LedgerTransactionID,
		Amount:              d.Amount,
		MatchDate:           d.MatchDate,
		Status:              string(d.Status),
		Confidence:          d.Confidence,
		Notes:               d.Notes,
		Metadata:            d.Metadata,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReconciliationMatch(m models.ReconciliationMatch) domain.ReconciliationMatch {
	return domain.ReconciliationMatch{
		MatchID:             m.MatchID,
		SessionID:           m.SessionID,
		BankTransactionID:   m.BankTransactionID,
		LedgerTransactionID: m.LedgerTransactionID,
		Amount:              m.Amount,
		MatchDate:           m.MatchDate,
		Status:              domain.MatchStatus(m.Status),
		Confidence:          m.Confidence,
		Notes:               m.Notes,
		Metadata:            m.Metadata,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainReconciliationMatchSlice(ms []models.ReconciliationMatch) []domain.ReconciliationMatch {
	matches := make([]domain.ReconciliationMatch, 0, len(ms))
	for _, m := range ms {
		matches = append(matches, ToDomainReconciliationMatch(m))
	}
	return matches
}

func ToModelReconciliationAdjustment(d domain.ReconciliationAdjustment) models.ReconciliationAdjustment {
	return models.ReconciliationAdjustment{
		AdjustmentID:      d.AdjustmentID,
		SessionID:         d.SessionID,
		Description:       d.Description,
		Amount:            d.Amount,
		AdjustmentType:    string(d.AdjustmentType),
		LedgerAccountID:   d.LedgerAccountID,
		LedgerAccountCode: d.LedgerAccountCode,
		PostedJournalID:   d.PostedJournalID,
		ReversalJournalID: d.ReversalJournalID,
		ReversalReason:    d.ReversalReason,
		ReversedAt:        d.ReversedAt,
		Metadata:          d.Metadata,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReconciliationAdjustment(m models.ReconciliationAdjustment) domain.ReconciliationAdjustment {
	return domain.ReconciliationAdjustment{
		AdjustmentID:      m.AdjustmentID,
		SessionID:         m.SessionID,
		Description:       m.Description,
		Amount:            m.Amount,
		AdjustmentType:    domain.AdjustmentType(m.AdjustmentType),
		LedgerAccountID:   m.LedgerAccountID,
		LedgerAccountCode: m.LedgerAccountCode,
		PostedJournalID:   m.PostedJournalID,
		ReversalJournalID: m.ReversalJournalID,
		ReversalReason:    m.ReversalReason,
		ReversedAt:        m.ReversedAt,
		Metadata:          m.Metadata,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainReconciliationAdjustmentSlice(ms []models.ReconciliationAdjustment) []domain.ReconciliationAdjustment {
	adjustments := make([]domain.ReconciliationAdjustment, 0, len(ms))
	for _, m := range ms {
		adjustments = append(adjustments, ToDomainReconciliationAdjustment(m))
	}
	return adjustments
}
