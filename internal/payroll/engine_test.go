package payroll_test

import (
	"testing"
	"time"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSalariedGross_CalendarMonth(t *testing.T) {
	annual := decimal.NewFromInt(96000)

	got := payroll.SalariedGross(annual, decimal.Zero, date(2026, 2, 1), date(2026, 2, 28), false)
	assert.Equal(t, "8000.00", got.StringFixed(2))

	// Leap February behaves the same: a full month is annual/12
	got = payroll.SalariedGross(annual, decimal.Zero, date(2028, 2, 1), date(2028, 2, 29), false)
	assert.Equal(t, "8000.00", got.StringFixed(2))
}

func TestSalariedGross_Bonus(t *testing.T) {
	annual := decimal.NewFromInt(96000)
	bonus := decimal.NewFromInt(10)

	got := payroll.SalariedGross(annual, bonus, date(2026, 2, 1), date(2026, 2, 28), true)
	assert.Equal(t, "8800.00", got.StringFixed(2))

	// Flag off means the configured percentage is ignored
	got = payroll.SalariedGross(annual, bonus, date(2026, 2, 1), date(2026, 2, 28), false)
	assert.Equal(t, "8000.00", got.StringFixed(2))
}

func TestSalariedGross_ProratedPartialPeriod(t *testing.T) {
	annual := decimal.NewFromInt(96000)

	// 15 days at monthly 8000 against the 30.4375-day average month
	got := payroll.SalariedGross(annual, decimal.Zero, date(2026, 3, 1), date(2026, 3, 15), false)
	assert.Equal(t, "3942.51", got.StringFixed(2))
}

func TestHourlyGross(t *testing.T) {
	got := payroll.HourlyGross(
		decimal.RequireFromString("25.00"),
		decimal.RequireFromString("1.5"),
		decimal.NewFromInt(150),
		decimal.NewFromInt(10),
	)
	assert.Equal(t, "4125.00", got.StringFixed(2))
}

func TestComputeDeductions_WorkedExample(t *testing.T) {
	gross := payroll.HourlyGross(
		decimal.RequireFromString("25.00"),
		decimal.RequireFromString("1.5"),
		decimal.NewFromInt(150),
		decimal.NewFromInt(10),
	)
	assert.Equal(t, "4125.00", gross.StringFixed(2))

	d, net, err := payroll.ComputeDeductions(gross, payroll.DefaultRateTable())
	assert.NoError(t, err)

	assert.Equal(t, "495.00", d.IncomeTax.StringFixed(2))
	assert.Equal(t, "200.00", d.ProfessionalTax.StringFixed(2))
	assert.Equal(t, "495.00", d.ProvidentFund.StringFixed(2))
	assert.Equal(t, "30.94", d.ESI.StringFixed(2))
	assert.Equal(t, "150.00", d.HealthInsurance.StringFixed(2))
	assert.Equal(t, "206.25", d.RetirementContribution.StringFixed(2))

	assert.Equal(t, "1577.19", d.Total().StringFixed(2))
	assert.Equal(t, "2547.81", net.StringFixed(2))

	// The stored breakdown reconciles exactly
	assert.True(t, gross.Sub(d.Total()).Equal(net))
}

func TestComputeDeductions_ESIAboveCeiling(t *testing.T) {
	d, _, err := payroll.ComputeDeductions(decimal.NewFromInt(25000), payroll.DefaultRateTable())
	assert.NoError(t, err)
	assert.True(t, d.ESI.IsZero())
}

func TestComputeDeductions_PFCapped(t *testing.T) {
	d, _, err := payroll.ComputeDeductions(decimal.NewFromInt(50000), payroll.DefaultRateTable())
	assert.NoError(t, err)
	// 12% of the 15000 cap, not of gross
	assert.Equal(t, "1800.00", d.ProvidentFund.StringFixed(2))
}

func TestComputeDeductions_ExceedGross(t *testing.T) {
	t.Run("flat component larger than gross", func(t *testing.T) {
		rates := payroll.DefaultRateTable()
		_, _, err := payroll.ComputeDeductions(decimal.NewFromInt(100), rates)
		assert.ErrorIs(t, err, payrollerrors.ErrDeductionsExceedGross)
	})

	t.Run("components sum past gross", func(t *testing.T) {
		rates := payroll.RateTable{
			IncomeTaxPercent:  decimal.NewFromInt(60),
			RetirementPercent: decimal.NewFromInt(50),
		}
		_, _, err := payroll.ComputeDeductions(decimal.NewFromInt(1000), rates)
		assert.ErrorIs(t, err, payrollerrors.ErrDeductionsExceedGross)
	})
}

func TestRateTableFromEnv_Override(t *testing.T) {
	t.Setenv("RATE_INCOME_TAX_PERCENT", "20")
	t.Setenv("RATE_ESI_ELIGIBILITY_CEILING", "0")

	rates := payroll.RateTableFromEnv()
	assert.Equal(t, "20", rates.IncomeTaxPercent.String())
	assert.True(t, rates.ESIEligibilityCeiling.IsZero())

	// Untouched entries keep their defaults
	assert.Equal(t, "200", rates.ProfessionalTaxFlat.String())
}
