package calculation

import (
	"time"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// CalculatePeriod derives ages and the enrollment window as of asOf.
// Retirement happens in the birth month of the year the member reaches
// retireAge. A retirement point before the enrollment start clamps
// TotalMonths to zero.
func CalculatePeriod(birthDate time.Time, startYear, startMonth, retireAge int, asOf time.Time, currentAgeOverride *int) domain.PeriodData {
	age := asOf.Year() - birthDate.Year()
	if asOf.Month() < birthDate.Month() || (asOf.Month() == birthDate.Month() && asOf.Day() < birthDate.Day()) {
		age--
	}
	if currentAgeOverride != nil {
		age = *currentAgeOverride
	}

	retireYear := birthDate.Year() + retireAge
	retireMonth := int(birthDate.Month())

	total := domain.MonthIndex(retireYear, retireMonth) - domain.MonthIndex(startYear, startMonth)
	if total < 0 {
		total = 0
	}

	return domain.PeriodData{
		CurrentAge:  age,
		TotalMonths: total,
		RetireYear:  retireYear,
		RetireMonth: retireMonth,
		StartYear:   startYear,
		StartMonth:  startMonth,
		AsOfYear:    asOf.Year(),
		AsOfMonth:   int(asOf.Month()),
	}
}
