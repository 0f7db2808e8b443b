package tax

import "github.com/shopspring/decimal"

// Input is one employee's monthly salary figures. All values are expected
// non-negative; rejecting bad input is the validator's job, not the engine's.
type Input struct {
	BasicPay         decimal.Decimal
	HRA              decimal.Decimal
	VariablePay      decimal.Decimal
	SpecialAllowance decimal.Decimal
	OtherAllowances  decimal.Decimal
	OtherDeductions  decimal.Decimal
}

// Breakdown is the full monthly salary calculation for one employee.
type Breakdown struct {
	Gross           decimal.Decimal
	ProvidentFund   decimal.Decimal
	ProfessionalTax decimal.Decimal
	IncomeTax       decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// Compute is pure and deterministic: identical inputs always yield identical
// outputs. Net may come out negative when deductions exceed gross; that is a
// real financial event and is reported as-is.
func Compute(cfg Config, in Input) Breakdown {
	gross := in.BasicPay.
		Add(in.HRA).
		Add(in.VariablePay).
		Add(in.SpecialAllowance).
		Add(in.OtherAllowances)

	pf := in.BasicPay.Mul(cfg.PFRate).Round(2)

	ptax := decimal.Zero
	if gross.GreaterThan(cfg.ProfessionalTaxThreshold) {
		ptax = cfg.ProfessionalTaxAmount
	}

	// Income tax is evaluated on the annualized gross. The annual figure is
	// kept exact and rounding happens once, at the monthly divide, so cent
	// drift cannot accumulate across the slabs.
	annual := gross.Mul(decimal.NewFromInt(cfg.MonthsPerYear))
	incomeTax := annualSlabTax(annual, cfg.Slabs).
		Div(decimal.NewFromInt(cfg.MonthsPerYear)).
		Round(2)

	total := pf.Add(ptax).Add(incomeTax).Add(in.OtherDeductions)

	return Breakdown{
		Gross:           gross,
		ProvidentFund:   pf,
		ProfessionalTax: ptax,
		IncomeTax:       incomeTax,
		TotalDeductions: total,
		Net:             gross.Sub(total),
	}
}

// annualSlabTax applies each slab to its marginal slice only. Income exactly
// at a slab boundary belongs to the lower slab.
func annualSlabTax(annual decimal.Decimal, slabs []Slab) decimal.Decimal {
	tax := decimal.Zero
	for i, slab := range slabs {
		if annual.LessThanOrEqual(slab.Threshold) {
			break
		}
		upper := annual
		if i+1 < len(slabs) && annual.GreaterThan(slabs[i+1].Threshold) {
			upper = slabs[i+1].Threshold
		}
		tax = tax.Add(upper.Sub(slab.Threshold).Mul(slab.Rate))
	}
	return tax
}
