package tax

import (
	"os"

	"github.com/shopspring/decimal"
)

// Slab is one marginal income-tax bracket. Threshold is the exclusive lower
// bound of annual income the Rate applies to; the slice of income between a
// slab's Threshold and the next slab's Threshold is taxed at Rate. The last
// slab is open-ended.
type Slab struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// Config carries every policy constant the engine needs. Nothing in the
// engine's control flow hard-codes a bracket or rate, so a different schedule
// is a config change, not a code change.
type Config struct {
	PFRate                   decimal.Decimal
	ProfessionalTaxThreshold decimal.Decimal
	ProfessionalTaxAmount    decimal.Decimal
	MonthsPerYear            int64
	Slabs                    []Slab
}

// DefaultConfig is the fixed four-bracket schedule: 0% up to 250k annual,
// 5% to 500k, 20% to 1M, 30% above. PF 12% of basic, professional tax 200
// above a monthly gross of 15,000.
func DefaultConfig() Config {
	return Config{
		PFRate:                   decimal.RequireFromString("0.12"),
		ProfessionalTaxThreshold: decimal.NewFromInt(15000),
		ProfessionalTaxAmount:    decimal.NewFromInt(200),
		MonthsPerYear:            12,
		Slabs: []Slab{
			{Threshold: decimal.Zero, Rate: decimal.Zero},
			{Threshold: decimal.NewFromInt(250000), Rate: decimal.RequireFromString("0.05")},
			{Threshold: decimal.NewFromInt(500000), Rate: decimal.RequireFromString("0.20")},
			{Threshold: decimal.NewFromInt(1000000), Rate: decimal.RequireFromString("0.30")},
		},
	}
}

// ConfigFromEnv starts from DefaultConfig and applies overrides from
// TAX_PF_RATE, TAX_PTAX_THRESHOLD and TAX_PTAX_AMOUNT when set.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TAX_PF_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.PFRate = d
		}
	}
	if v := os.Getenv("TAX_PTAX_THRESHOLD"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.ProfessionalTaxThreshold = d
		}
	}
	if v := os.Getenv("TAX_PTAX_AMOUNT"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.ProfessionalTaxAmount = d
		}
	}

	return cfg
}
