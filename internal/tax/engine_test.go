package tax_test

import (
	"testing"

	"go-payroll/internal/tax"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute_FullBreakdown(t *testing.T) {
	cfg := tax.DefaultConfig()

	out := tax.Compute(cfg, tax.Input{
		BasicPay:         dec("50000"),
		HRA:              dec("10000"),
		VariablePay:      dec("5000"),
		SpecialAllowance: dec("2000"),
		OtherAllowances:  dec("1000"),
	})

	assert.True(t, out.Gross.Equal(dec("68000")), "gross = %s", out.Gross)
	assert.True(t, out.ProvidentFund.Equal(dec("6000.00")), "pf = %s", out.ProvidentFund)
	assert.True(t, out.ProfessionalTax.Equal(dec("200")), "ptax = %s", out.ProfessionalTax)
	// annual gross 816000 -> 12500 + 63200 = 75700 per year
	assert.True(t, out.IncomeTax.Equal(dec("6308.33")), "income tax = %s", out.IncomeTax)
	assert.True(t, out.TotalDeductions.Equal(dec("12508.33")), "total deductions = %s", out.TotalDeductions)
	assert.True(t, out.Net.Equal(dec("55491.67")), "net = %s", out.Net)
}

func TestCompute_ProfessionalTaxBoundary(t *testing.T) {
	cfg := tax.DefaultConfig()

	t.Run("below threshold", func(t *testing.T) {
		out := tax.Compute(cfg, tax.Input{BasicPay: dec("14999.99")})
		assert.True(t, out.ProfessionalTax.IsZero())
	})

	t.Run("exactly at threshold", func(t *testing.T) {
		out := tax.Compute(cfg, tax.Input{BasicPay: dec("15000")})
		assert.True(t, out.ProfessionalTax.IsZero(), "threshold itself is not taxed")
	})

	t.Run("just above threshold", func(t *testing.T) {
		out := tax.Compute(cfg, tax.Input{BasicPay: dec("15000.01")})
		assert.True(t, out.ProfessionalTax.Equal(dec("200")))
	})
}

func TestCompute_IncomeTaxSlabs(t *testing.T) {
	cfg := tax.DefaultConfig()

	t.Run("zero below first slab", func(t *testing.T) {
		// 250000 annual / 12 months, exactly at the boundary
		out := tax.Compute(cfg, tax.Input{BasicPay: dec("20833.333333333333")})
		assert.True(t, out.IncomeTax.IsZero(), "income tax = %s", out.IncomeTax)
	})

	t.Run("top slab marginal only", func(t *testing.T) {
		// 100000/month = 1.2M/year: 12500 + 100000 + 60000 = 172500 -> 14375/month
		out := tax.Compute(cfg, tax.Input{BasicPay: dec("100000")})
		assert.True(t, out.IncomeTax.Equal(dec("14375.00")), "income tax = %s", out.IncomeTax)
	})

	t.Run("monotonic in gross", func(t *testing.T) {
		prev := decimal.Zero
		for _, basic := range []string{"0", "10000", "20833", "20834", "41666", "41667", "83333", "83334", "200000"} {
			out := tax.Compute(cfg, tax.Input{BasicPay: dec(basic)})
			assert.True(t, out.IncomeTax.GreaterThanOrEqual(prev),
				"tax decreased at basic=%s: %s < %s", basic, out.IncomeTax, prev)
			prev = out.IncomeTax
		}
	})
}

func TestCompute_NegativeNetIsReported(t *testing.T) {
	cfg := tax.DefaultConfig()

	out := tax.Compute(cfg, tax.Input{
		BasicPay:        dec("1000"),
		OtherDeductions: dec("5000"),
	})

	assert.True(t, out.Net.IsNegative(), "net = %s", out.Net)
	assert.True(t, out.Net.Equal(out.Gross.Sub(out.TotalDeductions)))
}

func TestCompute_Idempotent(t *testing.T) {
	cfg := tax.DefaultConfig()
	in := tax.Input{
		BasicPay:         dec("33333.33"),
		HRA:              dec("12000.50"),
		VariablePay:      dec("0.01"),
		SpecialAllowance: dec("999.99"),
		OtherAllowances:  dec("1"),
		OtherDeductions:  dec("250"),
	}

	first := tax.Compute(cfg, in)
	second := tax.Compute(cfg, in)

	assert.Equal(t, first.Gross.String(), second.Gross.String())
	assert.Equal(t, first.IncomeTax.String(), second.IncomeTax.String())
	assert.Equal(t, first.TotalDeductions.String(), second.TotalDeductions.String())
	assert.Equal(t, first.Net.String(), second.Net.String())
}

func TestCompute_ConfigOverride(t *testing.T) {
	cfg := tax.DefaultConfig()
	cfg.ProfessionalTaxThreshold = decimal.NewFromInt(10000)
	cfg.ProfessionalTaxAmount = decimal.NewFromInt(300)

	out := tax.Compute(cfg, tax.Input{BasicPay: dec("12000")})
	assert.True(t, out.ProfessionalTax.Equal(dec("300")))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TAX_PF_RATE", "0.10")
	t.Setenv("TAX_PTAX_AMOUNT", "150")

	cfg := tax.ConfigFromEnv()
	assert.True(t, cfg.PFRate.Equal(dec("0.10")))
	assert.True(t, cfg.ProfessionalTaxAmount.Equal(dec("150")))
	assert.True(t, cfg.ProfessionalTaxThreshold.Equal(dec("15000")), "untouched values keep defaults")
}
