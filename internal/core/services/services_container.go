package services

import (
	portsrepo "github.com/finledger/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/bank_recon_app/internal/core/ports/services"
	"github.com/finledger/bank_recon_app/internal/utils/recon"
	"github.com/finledger/bank_recon_app/pkg/config"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Journal service first since reconciliation and revaluation post through it
	container.Journal = NewJournalService(repos.JournalRepo, repos.FiscalPeriodRepo, cfg.StrictFiscalPeriods)

	container.Reconciliation = NewReconciliationService(
		repos.ReconciliationRepo,
		repos.BankStatementRepo,
		repos.JournalRepo,
		container.Journal,
		matchingConfigFrom(cfg),
	)

	container.BankStatement = NewBankStatementService(repos.BankStatementRepo)
	container.FiscalPeriod = NewFiscalPeriodService(repos.FiscalPeriodRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	container.Revaluation = NewRevaluationService(
		repos.JournalRepo,
		NewCurrencyConverter(repos.ExchangeRateRepo),
		container.Journal,
	)

	return container
}

func matchingConfigFrom(cfg *config.Config) recon.MatchingConfig {
	matchingCfg := recon.DefaultMatchingConfig()
	matchingCfg.MaxDateDifferenceInDays = cfg.MatchMaxDateDifferenceDays
	matchingCfg.MaxAmountDifferencePercent = cfg.MatchMaxAmountDiffPercent
	matchingCfg.MaxAmountDifferenceAbsolute = decimal.NewFromFloat(cfg.MatchMaxAmountDiffAbsolute)
	matchingCfg.MinConfidenceThreshold = cfg.MatchMinConfidenceThreshold
	return matchingCfg
}
