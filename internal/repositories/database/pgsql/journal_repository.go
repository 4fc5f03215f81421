package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/finledger/bank_recon_app/internal/models"
	"github.com/finledger/bank_recon_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and ledger data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveJournalEntry persists a journal entry and its lines within a DB transaction.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (
			journal_entry_id, tenant_id, fiscal_period_id, journal_code, reference,
			description, status, source, transaction_date, posting_date,
			created_by, updated_by, reversal_of, metadata, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.JournalEntryID,
		modelEntry.TenantID,
		modelEntry.FiscalPeriodID,
		modelEntry.JournalCode,
		modelEntry.Reference,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.Source,
		modelEntry.TransactionDate,
		modelEntry.PostingDate,
		modelEntry.CreatedBy,
		modelEntry.UpdatedBy,
		modelEntry.ReversalOf,
		modelEntry.Metadata,
		modelEntry.CreatedAt,
		modelEntry.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.JournalEntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (
			line_id, journal_entry_id, account_id, account_code, account_name,
			description, debit, credit, currency_code, exchange_rate, dimensions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range entry.Lines {
		modelLine := mapping.ToModelJournalLine(entry.JournalEntryID, line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.JournalEntryID,
			modelLine.AccountID,
			modelLine.AccountCode,
			modelLine.AccountName,
			modelLine.Description,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.CurrencyCode,
			modelLine.ExchangeRate,
			modelLine.Dimensions,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+modelEntry.JournalEntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, tenantID, journalEntryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT journal_entry_id, tenant_id, fiscal_period_id, journal_code, reference,
		       description, status, source, transaction_date, posting_date,
		       created_by, reversal_of, metadata, created_at, updated_at
		FROM journal_entries
		WHERE tenant_id = $1 AND journal_entry_id = $2;
	`
	var modelEntry models.JournalEntry
	var postingDate sql.NullTime
	var reversalOf sql.NullString

	err := r.Pool.QueryRow(ctx, query, tenantID, journalEntryID).Scan(
		&modelEntry.JournalEntryID,
		&modelEntry.TenantID,
		&modelEntry.FiscalPeriodID,
		&modelEntry.JournalCode,
		&modelEntry.Reference,
		&modelEntry.Description,
		&modelEntry.Status,
		&modelEntry.Source,
		&modelEntry.TransactionDate,
		&postingDate,
		&modelEntry.CreatedBy,
		&reversalOf,
		&modelEntry.Metadata,
		&modelEntry.CreatedAt,
		&modelEntry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+journalEntryID, err)
	}

	if postingDate.Valid {
		modelEntry.PostingDate = &postingDate.Time
	}
	if reversalOf.Valid {
		modelEntry.ReversalOf = &reversalOf.String
	}

	entry := mapping.ToDomainJournalEntry(modelEntry)

	lines, err := r.findLinesByJournalIDs(ctx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[journalEntryID]

	return &entry, nil
}

// ListJournalEntries retrieves journal entries for a tenant, filtered and
// ordered by transaction date descending.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.JournalEntry, error) {
	query := `
		SELECT journal_entry_id, tenant_id, fiscal_period_id, journal_code, reference,
		       description, status, source, transaction_date, posting_date,
		       created_by, reversal_of, metadata, created_at, updated_at
		FROM journal_entries
		WHERE tenant_id = $1`
	args := []any{tenantID}

	if params.Status != nil {
		args = append(args, string(*params.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if params.Source != nil {
		args = append(args, string(*params.Source))
		query += " AND source = $" + strconv.Itoa(len(args))
	}
	if params.From != nil {
		args = append(args, *params.From)
		query += " AND transaction_date >= $" + strconv.Itoa(len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		query += " AND transaction_date <= $" + strconv.Itoa(len(args))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += " ORDER BY transaction_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, params.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	entryIDs := make([]string, 0)
	for rows.Next() {
		var modelEntry models.JournalEntry
		var postingDate sql.NullTime
		var reversalOf sql.NullString
		if err := rows.Scan(
			&modelEntry.JournalEntryID,
			&modelEntry.TenantID,
			&modelEntry.FiscalPeriodID,
			&modelEntry.JournalCode,
			&modelEntry.Reference,
			&modelEntry.Description,
			&modelEntry.Status,
			&modelEntry.Source,
			&modelEntry.TransactionDate,
			&postingDate,
			&modelEntry.CreatedBy,
			&reversalOf,
			&modelEntry.Metadata,
			&modelEntry.CreatedAt,
			&modelEntry.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		if postingDate.Valid {
			modelEntry.PostingDate = &postingDate.Time
		}
		if reversalOf.Valid {
			modelEntry.ReversalOf = &reversalOf.String
		}
		entries = append(entries, mapping.ToDomainJournalEntry(modelEntry))
		entryIDs = append(entryIDs, modelEntry.JournalEntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	if len(entryIDs) == 0 {
		return entries, nil
	}

	linesByEntry, err := r.findLinesByJournalIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].JournalEntryID]
	}

	return entries, nil
}

// findLinesByJournalIDs loads lines for a set of journal entries in one query,
// grouped by journal entry ID.
func (r *PgxJournalRepository) findLinesByJournalIDs(ctx context.Context, journalEntryIDs []string) (map[string][]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_entry_id, account_id, account_code, account_name,
		       description, debit, credit, currency_code, exchange_rate, dimensions
		FROM journal_lines
		WHERE journal_entry_id = ANY($1)
		ORDER BY journal_entry_id, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load journal lines", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]domain.JournalLine)
	for rows.Next() {
		var modelLine models.JournalLine
		var exchangeRate decimal.NullDecimal
		if err := rows.Scan(
			&modelLine.LineID,
			&modelLine.JournalEntryID,
			&modelLine.AccountID,
			&modelLine.AccountCode,
			&modelLine.AccountName,
			&modelLine.Description,
			&modelLine.Debit,
			&modelLine.Credit,
			&modelLine.CurrencyCode,
			&exchangeRate,
			&modelLine.Dimensions,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		if exchangeRate.Valid {
			modelLine.ExchangeRate = &exchangeRate.Decimal
		}
		linesByEntry[modelLine.JournalEntryID] = append(linesByEntry[modelLine.JournalEntryID], mapping.ToDomainJournalLine(modelLine))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}

	return linesByEntry, nil
}

// MarkJournalPosted flips an entry to posted inside the caller's transaction.
func (r *PgxJournalRepository) MarkJournalPosted(ctx context.Context, tx pgx.Tx, tenantID, journalEntryID string, postingDate time.Time, updatedBy string) error {
	query := `
		UPDATE journal_entries
		SET status = $1, posting_date = $2, updated_by = $3, updated_at = $4
		WHERE tenant_id = $5 AND journal_entry_id = $6 AND status = $7;
	`
	tag, err := tx.Exec(ctx, query,
		models.Posted,
		postingDate,
		updatedBy,
		time.Now().UTC(),
		tenantID,
		journalEntryID,
		models.Draft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal entry "+journalEntryID+" posted", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateJournalReversalLink back-links an entry to the journal that reverses it.
func (r *PgxJournalRepository) UpdateJournalReversalLink(ctx context.Context, tenantID, journalEntryID, reversingJournalID string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET metadata = COALESCE(metadata, '{}'::jsonb) || jsonb_build_object('reversedBy', $1::text), updated_at = $2
		WHERE tenant_id = $3 AND journal_entry_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, reversingJournalID, updatedAt, tenantID, journalEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update reversal link for journal entry "+journalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveLedgerEntries persists the materialized lines of a posting inside tx.
func (r *PgxJournalRepository) SaveLedgerEntries(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO ledger_entries (
			ledger_entry_id, tenant_id, journal_entry_id, journal_line_id,
			account_id, account_code, account_name, debit, credit,
			cumulative_balance, currency_code, transaction_date, posting_date,
			fiscal_period_id, source, description, metadata, dimensions, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	for _, entry := range entries {
		modelEntry := mapping.ToModelLedgerEntry(entry)
		batch.Queue(query,
			modelEntry.LedgerEntryID,
			modelEntry.TenantID,
			modelEntry.JournalEntryID,
			modelEntry.JournalLineID,
			modelEntry.AccountID,
			modelEntry.AccountCode,
			modelEntry.AccountName,
			modelEntry.Debit,
			modelEntry.Credit,
			modelEntry.CumulativeBalance,
			modelEntry.CurrencyCode,
			modelEntry.TransactionDate,
			modelEntry.PostingDate,
			modelEntry.FiscalPeriodID,
			modelEntry.Source,
			modelEntry.Description,
			modelEntry.Metadata,
			modelEntry.Dimensions,
			modelEntry.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entries", err)
	}
	return nil
}

// FindLedgerEntriesByJournalID retrieves the ledger lines of one posting.
func (r *PgxJournalRepository) FindLedgerEntriesByJournalID(ctx context.Context, tenantID, journalEntryID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ledger_entry_id, tenant_id, journal_entry_id, journal_line_id,
		       account_id, account_code, account_name, debit, credit,
		       cumulative_balance, currency_code, transaction_date, posting_date,
		       fiscal_period_id, source, description, metadata, dimensions, created_at
		FROM ledger_entries
		WHERE tenant_id = $1 AND journal_entry_id = $2
		ORDER BY ledger_entry_id;
	`
	return r.queryLedgerEntries(ctx, query, tenantID, journalEntryID)
}

// ListLedgerEntriesByAccount retrieves ledger entries for one account within a
// date range, ordered by transaction date ascending. Zero-valued bounds are
// treated as unbounded.
func (r *PgxJournalRepository) ListLedgerEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ledger_entry_id, tenant_id, journal_entry_id, journal_line_id,
		       account_id, account_code, account_name, debit, credit,
		       cumulative_balance, currency_code, transaction_date, posting_date,
		       fiscal_period_id, source, description, metadata, dimensions, created_at
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2`
	args := []any{tenantID, accountID}

	if !from.IsZero() {
		args = append(args, from)
		query += " AND transaction_date >= $" + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += " AND transaction_date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY transaction_date, created_at;"

	return r.queryLedgerEntries(ctx, query, args...)
}

func (r *PgxJournalRepository) queryLedgerEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		var modelEntry models.LedgerEntry
		if err := rows.Scan(
			&modelEntry.LedgerEntryID,
			&modelEntry.TenantID,
			&modelEntry.JournalEntryID,
			&modelEntry.JournalLineID,
			&modelEntry.AccountID,
			&modelEntry.AccountCode,
			&modelEntry.AccountName,
			&modelEntry.Debit,
			&modelEntry.Credit,
			&modelEntry.CumulativeBalance,
			&modelEntry.CurrencyCode,
			&modelEntry.TransactionDate,
			&modelEntry.PostingDate,
			&modelEntry.FiscalPeriodID,
			&modelEntry.Source,
			&modelEntry.Description,
			&modelEntry.Metadata,
			&modelEntry.Dimensions,
			&modelEntry.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		modelEntries = append(modelEntries, modelEntry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}
