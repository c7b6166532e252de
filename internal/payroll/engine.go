package payroll

import (
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/money"

	"github.com/shopspring/decimal"
)

// Average days per month over the Gregorian cycle; used to prorate
// salaried pay for periods that are not a calendar month.
var avgDaysPerMonth = decimal.RequireFromString("365.25").Div(decimal.NewFromInt(12))

// Deductions holds one rounded amount per statutory/voluntary
// component. Each is rounded independently before summation, so the
// stored breakdown always adds up to exactly gross - net.
type Deductions struct {
	IncomeTax              decimal.Decimal
	ProfessionalTax        decimal.Decimal
	ProvidentFund          decimal.Decimal
	ESI                    decimal.Decimal
	HealthInsurance        decimal.Decimal
	RetirementContribution decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return d.IncomeTax.
		Add(d.ProfessionalTax).
		Add(d.ProvidentFund).
		Add(d.ESI).
		Add(d.HealthInsurance).
		Add(d.RetirementContribution)
}

// SalariedGross computes period gross for an annual salary. A full
// calendar month pays exactly annual/12; any other period prorates
// linearly by day count. The optional bonus adds
// annual/12 * bonus% on top, all rounded once at the end.
func SalariedGross(annualSalary, bonusPercentage decimal.Decimal, start, end time.Time, applyBonus bool) decimal.Decimal {
	monthly := annualSalary.Div(decimal.NewFromInt(12))

	gross := monthly
	if !isCalendarMonth(start, end) {
		days := decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)
		gross = monthly.Mul(days).Div(avgDaysPerMonth)
	}

	if applyBonus {
		gross = gross.Add(monthly.Mul(bonusPercentage).Div(decimal.NewFromInt(100)))
	}

	return money.Round(gross)
}

// HourlyGross computes period gross from approved hour totals.
func HourlyGross(hourlyRate, overtimeMultiplier, regularHours, overtimeHours decimal.Decimal) decimal.Decimal {
	regularPay := hourlyRate.Mul(regularHours)
	overtimePay := hourlyRate.Mul(overtimeMultiplier).Mul(overtimeHours)
	return money.Round(regularPay.Add(overtimePay))
}

// ComputeDeductions applies the rate table to a rounded gross. Every
// component must stay within gross and net pay must not go negative;
// otherwise the period is not processable with these rates.
func ComputeDeductions(gross decimal.Decimal, rates RateTable) (Deductions, decimal.Decimal, error) {
	esi := decimal.Zero
	if rates.ESIEligibilityCeiling.IsPositive() && gross.LessThanOrEqual(rates.ESIEligibilityCeiling) {
		esi = money.Percent(gross, rates.ESIPercent)
	}

	d := Deductions{
		IncomeTax:              money.Percent(gross, rates.IncomeTaxPercent),
		ProfessionalTax:        money.Round(rates.ProfessionalTaxFlat),
		ProvidentFund:          money.PercentCapped(gross, rates.ProvidentFundPercent, rates.ProvidentFundCapBase),
		ESI:                    esi,
		HealthInsurance:        money.Round(rates.HealthInsuranceFlat),
		RetirementContribution: money.Percent(gross, rates.RetirementPercent),
	}

	for _, component := range []decimal.Decimal{
		d.IncomeTax, d.ProfessionalTax, d.ProvidentFund,
		d.ESI, d.HealthInsurance, d.RetirementContribution,
	} {
		if component.GreaterThan(gross) {
			return Deductions{}, decimal.Zero, payrollerrors.ErrDeductionsExceedGross
		}
	}

	net := gross.Sub(d.Total())
	if money.IsNegative(net) {
		return Deductions{}, decimal.Zero, payrollerrors.ErrDeductionsExceedGross
	}

	return d, net, nil
}

func isCalendarMonth(start, end time.Time) bool {
	if start.Day() != 1 {
		return false
	}
	lastDay := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, start.Location())
	return end.Year() == start.Year() && end.Month() == start.Month() && end.Day() == lastDay.Day()
}
