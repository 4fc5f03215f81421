package pgsql

import (
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider constructs all pgsql-backed repositories over one
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		JournalRepo:        newPgxJournalRepository(pool),
		ReconciliationRepo: newPgxReconciliationRepository(pool),
		FiscalPeriodRepo:   newPgxFiscalPeriodRepository(pool),
		BankStatementRepo:  newPgxBankStatementRepository(pool),
		ExchangeRateRepo:   newPgxExchangeRateRepository(pool),
	}
}
