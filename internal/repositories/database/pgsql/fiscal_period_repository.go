package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	"github.com/finledger/bank_recon_app/internal/models"
	"github.com/finledger/bank_recon_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

// FindFiscalPeriodByID retrieves a fiscal period by its identifier.
func (r *PgxFiscalPeriodRepository) FindFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT fiscal_period_id, tenant_id, name, start_date, end_date, status
		FROM fiscal_periods
		WHERE tenant_id = $1 AND fiscal_period_id = $2;
	`
	return r.queryOne(ctx, query, tenantID, fiscalPeriodID)
}

const fiscalPeriodByDateQuery = `
	SELECT fiscal_period_id, tenant_id, name, start_date, end_date, status
	FROM fiscal_periods
	WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2
	ORDER BY start_date DESC
	LIMIT 1;
`

// FindFiscalPeriodByDateTx retrieves the period covering a date. When periods
// overlap the most recently started one wins. The lookup runs on tx so the
// posting gate and the ledger writes it guards see one snapshot.
func (r *PgxFiscalPeriodRepository) FindFiscalPeriodByDateTx(ctx context.Context, tx pgx.Tx, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	return scanFiscalPeriod(tx.QueryRow(ctx, fiscalPeriodByDateQuery, tenantID, date))
}

func (r *PgxFiscalPeriodRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.FiscalPeriod, error) {
	return scanFiscalPeriod(r.Pool.QueryRow(ctx, query, args...))
}

func scanFiscalPeriod(row pgx.Row) (*domain.FiscalPeriod, error) {
	var modelPeriod models.FiscalPeriod
	err := row.Scan(
		&modelPeriod.FiscalPeriodID,
		&modelPeriod.TenantID,
		&modelPeriod.Name,
		&modelPeriod.StartDate,
		&modelPeriod.EndDate,
		&modelPeriod.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal period", err)
	}

	period := mapping.ToDomainFiscalPeriod(modelPeriod)
	return &period, nil
}

// SaveFiscalPeriod persists a new fiscal period.
func (r *PgxFiscalPeriodRepository) SaveFiscalPeriod(ctx context.Context, period domain.FiscalPeriod) error {
	modelPeriod := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (fiscal_period_id, tenant_id, name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelPeriod.FiscalPeriodID,
		modelPeriod.TenantID,
		modelPeriod.Name,
		modelPeriod.StartDate,
		modelPeriod.EndDate,
		modelPeriod.Status,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fiscal period "+modelPeriod.FiscalPeriodID, err)
	}
	return nil
}

// UpdateFiscalPeriodStatus transitions a period between open, closed and locked.
func (r *PgxFiscalPeriodRepository) UpdateFiscalPeriodStatus(ctx context.Context, tenantID, fiscalPeriodID string, status domain.FiscalPeriodStatus) error {
	query := `
		UPDATE fiscal_periods
		SET status = $1
		WHERE tenant_id = $2 AND fiscal_period_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), tenantID, fiscalPeriodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of fiscal period "+fiscalPeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
