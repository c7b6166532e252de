package employee

import (
	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/shopspring/decimal"
)

var defaultOvertimeMultiplier = decimal.NewFromFloat(1.5)

// Compensation is the resolved pay basis of an employee. The row
// shape (which nullable columns are set) is checked once here, so
// downstream code never re-infers the type per call site.
type Compensation interface {
	isCompensation()
}

type SalariedComp struct {
	AnnualSalary    decimal.Decimal
	BonusPercentage decimal.Decimal
}

type HourlyComp struct {
	HourlyRate         decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

func (SalariedComp) isCompensation() {}
func (HourlyComp) isCompensation()   {}

// Compensation resolves the employee row into its pay basis variant.
// A row whose columns disagree with compensation_type, or whose rate
// is not strictly positive, is invalid.
func (e *Employee) Compensation() (Compensation, error) {
	switch e.CompensationType {
	case CompensationSalaried:
		if e.AnnualSalary == nil || !e.AnnualSalary.IsPositive() {
			return nil, employeeerrors.ErrInvalidCompensation
		}
		bonus := decimal.Zero
		if e.BonusPercentage != nil {
			if e.BonusPercentage.Sign() < 0 {
				return nil, employeeerrors.ErrInvalidCompensation
			}
			bonus = *e.BonusPercentage
		}
		return SalariedComp{
			AnnualSalary:    *e.AnnualSalary,
			BonusPercentage: bonus,
		}, nil

	case CompensationHourly:
		if e.HourlyRate == nil || !e.HourlyRate.IsPositive() {
			return nil, employeeerrors.ErrInvalidCompensation
		}
		multiplier := defaultOvertimeMultiplier
		if e.OvertimeMultiplier != nil {
			if !e.OvertimeMultiplier.IsPositive() {
				return nil, employeeerrors.ErrInvalidCompensation
			}
			multiplier = *e.OvertimeMultiplier
		}
		return HourlyComp{
			HourlyRate:         *e.HourlyRate,
			OvertimeMultiplier: multiplier,
		}, nil
	}

	return nil, employeeerrors.ErrInvalidCompensation
}
