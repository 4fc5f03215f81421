package recon

import "github.com/shopspring/decimal"

// MatchingConfig holds the tunable weights and tolerances of the auto-match
// algorithm. Construct with DefaultMatchingConfig and override as needed;
// there is no package-level mutable default.
type MatchingConfig struct {
	// MaxDateDifferenceInDays is the hard cutoff between bank and ledger dates.
	MaxDateDifferenceInDays int
	// MaxAmountDifferencePercent is the relative amount tolerance (0.05 = 5%).
	MaxAmountDifferencePercent float64
	// MaxAmountDifferenceAbsolute is the absolute amount tolerance for small
	// transactions.
	MaxAmountDifferenceAbsolute decimal.Decimal
	// MinConfidenceThreshold is the minimum score for a pair to be suggested.
	MinConfidenceThreshold float64

	AmountWeight      float64
	DateWeight        float64
	ReferenceWeight   float64
	DescriptionWeight float64
}

// DefaultMatchingConfig returns the standard tuning: two weeks of date slack
// for delayed clearances, 5% / 5.00 amount tolerance for exchange-rate and
// fee drift, and a low suggestion threshold to catch more potential matches.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		MaxDateDifferenceInDays:     14,
		MaxAmountDifferencePercent:  0.05,
		MaxAmountDifferenceAbsolute: decimal.NewFromInt(5),
		MinConfidenceThreshold:      0.4,
		AmountWeight:                0.4,
		DateWeight:                  0.3,
		ReferenceWeight:             0.2,
		DescriptionWeight:           0.1,
	}
}
