package payroll

import (
	"os"

	"github.com/shopspring/decimal"
)

// RateTable parameterizes every deduction rule. Rates are data, not
// constants in the calculation path, so a deployment can localize
// them without touching the engine.
type RateTable struct {
	IncomeTaxPercent decimal.Decimal

	ProfessionalTaxFlat decimal.Decimal

	// PF is a percentage of gross capped at a statutory base; a zero
	// cap disables capping.
	ProvidentFundPercent decimal.Decimal
	ProvidentFundCapBase decimal.Decimal

	// ESI applies only while gross is at or under the eligibility
	// ceiling; a zero ceiling disables the rule entirely.
	ESIPercent            decimal.Decimal
	ESIEligibilityCeiling decimal.Decimal

	HealthInsuranceFlat decimal.Decimal

	RetirementPercent decimal.Decimal
}

func DefaultRateTable() RateTable {
	return RateTable{
		IncomeTaxPercent:      decimal.NewFromInt(12),
		ProfessionalTaxFlat:   decimal.NewFromInt(200),
		ProvidentFundPercent:  decimal.NewFromInt(12),
		ProvidentFundCapBase:  decimal.NewFromInt(15000),
		ESIPercent:            decimal.RequireFromString("0.75"),
		ESIEligibilityCeiling: decimal.NewFromInt(21000),
		HealthInsuranceFlat:   decimal.NewFromInt(150),
		RetirementPercent:     decimal.NewFromInt(5),
	}
}

// RateTableFromEnv applies env var overrides on top of the defaults.
func RateTableFromEnv() RateTable {
	rates := DefaultRateTable()

	overrideRate(&rates.IncomeTaxPercent, "RATE_INCOME_TAX_PERCENT")
	overrideRate(&rates.ProfessionalTaxFlat, "RATE_PROFESSIONAL_TAX_FLAT")
	overrideRate(&rates.ProvidentFundPercent, "RATE_PROVIDENT_FUND_PERCENT")
	overrideRate(&rates.ProvidentFundCapBase, "RATE_PROVIDENT_FUND_CAP_BASE")
	overrideRate(&rates.ESIPercent, "RATE_ESI_PERCENT")
	overrideRate(&rates.ESIEligibilityCeiling, "RATE_ESI_ELIGIBILITY_CEILING")
	overrideRate(&rates.HealthInsuranceFlat, "RATE_HEALTH_INSURANCE_FLAT")
	overrideRate(&rates.RetirementPercent, "RATE_RETIREMENT_PERCENT")

	return rates
}

func overrideRate(dst *decimal.Decimal, envKey string) {
	raw := os.Getenv(envKey)
	if raw == "" {
		return
	}
	if v, err := decimal.NewFromString(raw); err == nil && v.Sign() >= 0 {
		*dst = v
	}
}
