package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// StrictFiscalPeriods rejects postings when no fiscal period covers the
	// posting date; the lenient default posts with a warning instead.
	StrictFiscalPeriods bool

	// Auto-match tuning.
	MatchMaxDateDifferenceDays  int
	MatchMaxAmountDiffPercent   float64
	MatchMaxAmountDiffAbsolute  float64
	MatchMinConfidenceThreshold float64

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STRICT_FISCAL_PERIODS", false)
	viper.SetDefault("MATCH_MAX_DATE_DIFF_DAYS", 14)
	viper.SetDefault("MATCH_MAX_AMOUNT_DIFF_PERCENT", 0.05)
	viper.SetDefault("MATCH_MAX_AMOUNT_DIFF_ABSOLUTE", 5.0)
	viper.SetDefault("MATCH_MIN_CONFIDENCE_THRESHOLD", 0.4)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.StrictFiscalPeriods = viper.GetBool("STRICT_FISCAL_PERIODS")

	cfg.MatchMaxDateDifferenceDays = viper.GetInt("MATCH_MAX_DATE_DIFF_DAYS")
	if cfg.MatchMaxDateDifferenceDays <= 0 {
		log.Printf("Warning: Invalid MATCH_MAX_DATE_DIFF_DAYS (%d). Defaulting to 14.\n", cfg.MatchMaxDateDifferenceDays)
		cfg.MatchMaxDateDifferenceDays = 14
	}
	cfg.MatchMaxAmountDiffPercent = viper.GetFloat64("MATCH_MAX_AMOUNT_DIFF_PERCENT")
	cfg.MatchMaxAmountDiffAbsolute = viper.GetFloat64("MATCH_MAX_AMOUNT_DIFF_ABSOLUTE")
	cfg.MatchMinConfidenceThreshold = viper.GetFloat64("MATCH_MIN_CONFIDENCE_THRESHOLD")
	if cfg.MatchMinConfidenceThreshold < 0 || cfg.MatchMinConfidenceThreshold > 1 {
		log.Printf("Warning: MATCH_MIN_CONFIDENCE_THRESHOLD (%f) out of range. Defaulting to 0.4.\n", cfg.MatchMinConfidenceThreshold)
		cfg.MatchMinConfidenceThreshold = 0.4
	}

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
