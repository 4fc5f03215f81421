package repositories

import (
	"context"
	"time"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FiscalPeriodReader defines read operations for fiscal periods.
type FiscalPeriodReader interface {
	// FindFiscalPeriodByID retrieves a fiscal period by its identifier.
	FindFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// FindFiscalPeriodByDateTx retrieves the period covering a date, or
	// apperrors.ErrNotFound when none is configured. It runs inside tx so the
	// posting gate observes the period in the same snapshot as the writes it
	// guards.
	FindFiscalPeriodByDateTx(ctx context.Context, tx pgx.Tx, tenantID string, date time.Time) (*domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal periods.
type FiscalPeriodWriter interface {
	// SaveFiscalPeriod persists a new fiscal period.
	SaveFiscalPeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdateFiscalPeriodStatus transitions a period between open, closed and
	// locked.
	UpdateFiscalPeriodStatus(ctx context.Context, tenantID, fiscalPeriodID string, status domain.FiscalPeriodStatus) error
}

// FiscalPeriodRepositoryFacade combines all fiscal period repository interfaces
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
