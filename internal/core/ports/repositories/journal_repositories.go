package repositories

import (
	"context"
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindJournalEntryByID retrieves a journal entry with its lines.
	FindJournalEntryByID(ctx context.Context, tenantID, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves journal entries for a tenant, filtered and
	// ordered by transaction date descending.
	ListJournalEntries(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveJournalEntry persists a draft journal entry and its lines.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkJournalPosted flips an entry to posted and stamps the posting date.
	// Runs inside tx so the status change commits atomically with the ledger
	// writes.
	MarkJournalPosted(ctx context.Context, tx pgx.Tx, tenantID, journalEntryID string, postingDate time.Time, updatedBy string) error

	// UpdateJournalReversalLink back-links an entry to the journal that
	// reverses it.
	UpdateJournalReversalLink(ctx context.Context, tenantID, journalEntryID, reversingJournalID string, updatedAt time.Time) error
}

// LedgerReader defines read operations for posted ledger entries.
type LedgerReader interface {
	// FindLedgerEntriesByJournalID retrieves the ledger lines of one posting.
	FindLedgerEntriesByJournalID(ctx context.Context, tenantID, journalEntryID string) ([]domain.LedgerEntry, error)

	// ListLedgerEntriesByAccount retrieves ledger entries for one account
	// within a date range, ordered by transaction date ascending.
	ListLedgerEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	// SaveLedgerEntries persists the materialized lines of a posting inside tx.
	SaveLedgerEntries(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerReader
	LedgerWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
