package services

import (
	"context"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal entry with its lines.
	GetJournalByID(ctx context.Context, tenantID, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournals retrieves journal entries matching the filter.
	ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entries.
type JournalWriterSvc interface {
	// CreateJournal persists a new draft journal entry.
	CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// JournalValidatorSvc defines validation operations for journal entries.
type JournalValidatorSvc interface {
	// ValidateJournal checks that an entry is postable. Never returns an
	// error for validation findings; those go in the result.
	ValidateJournal(ctx context.Context, entry domain.JournalEntry) domain.JournalValidationResult
}

// PostingSvc defines the posting pipeline for journal entries.
type PostingSvc interface {
	// PostJournal validates a draft entry and atomically writes its ledger
	// lines and status flip. Returns the materialized ledger entries.
	PostJournal(ctx context.Context, tenantID, journalEntryID string, req dto.PostJournalRequest, userID string) (*domain.PostingResult, error)

	// ReverseJournal creates and posts a new entry with debits and credits
	// swapped, back-linked to the original.
	ReverseJournal(ctx context.Context, tenantID, journalEntryID, reason, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalValidatorSvc
	PostingSvc
}
