package employee

import (
	"testing"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestCompensation_Salaried(t *testing.T) {
	e := Employee{
		CompensationType: CompensationSalaried,
		AnnualSalary:     decPtr("96000"),
		BonusPercentage:  decPtr("10"),
	}

	comp, err := e.Compensation()
	assert.NoError(t, err)

	salaried, ok := comp.(SalariedComp)
	assert.True(t, ok)
	assert.True(t, salaried.AnnualSalary.Equal(decimal.NewFromInt(96000)))
	assert.True(t, salaried.BonusPercentage.Equal(decimal.NewFromInt(10)))
}

func TestCompensation_SalariedWithoutBonus(t *testing.T) {
	e := Employee{
		CompensationType: CompensationSalaried,
		AnnualSalary:     decPtr("48000"),
	}

	comp, err := e.Compensation()
	assert.NoError(t, err)
	assert.True(t, comp.(SalariedComp).BonusPercentage.IsZero())
}

func TestCompensation_Hourly_DefaultMultiplier(t *testing.T) {
	e := Employee{
		CompensationType: CompensationHourly,
		HourlyRate:       decPtr("25"),
	}

	comp, err := e.Compensation()
	assert.NoError(t, err)

	hourly, ok := comp.(HourlyComp)
	assert.True(t, ok)
	assert.Equal(t, "1.5", hourly.OvertimeMultiplier.String())
}

func TestCompensation_Hourly_ExplicitMultiplier(t *testing.T) {
	e := Employee{
		CompensationType:   CompensationHourly,
		HourlyRate:         decPtr("30"),
		OvertimeMultiplier: decPtr("2"),
	}

	comp, err := e.Compensation()
	assert.NoError(t, err)
	assert.True(t, comp.(HourlyComp).OvertimeMultiplier.Equal(decimal.NewFromInt(2)))
}

func TestCompensation_InvalidShapes(t *testing.T) {
	cases := []struct {
		name string
		e    Employee
	}{
		{"salaried missing salary", Employee{CompensationType: CompensationSalaried}},
		{"salaried zero salary", Employee{CompensationType: CompensationSalaried, AnnualSalary: decPtr("0")}},
		{"salaried negative bonus", Employee{CompensationType: CompensationSalaried, AnnualSalary: decPtr("50000"), BonusPercentage: decPtr("-5")}},
		{"hourly missing rate", Employee{CompensationType: CompensationHourly}},
		{"hourly negative rate", Employee{CompensationType: CompensationHourly, HourlyRate: decPtr("-1")}},
		{"hourly zero multiplier", Employee{CompensationType: CompensationHourly, HourlyRate: decPtr("25"), OvertimeMultiplier: decPtr("0")}},
		{"unknown type", Employee{CompensationType: "COMMISSION"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.e.Compensation()
			assert.ErrorIs(t, err, employeeerrors.ErrInvalidCompensation)
		})
	}
}
