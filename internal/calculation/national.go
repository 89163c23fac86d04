package calculation

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// NationalProjector evaluates the national pension benefit formula
type NationalProjector struct {
	policy *domain.PolicyConstants
	logger Logger
}

// NewNationalProjector creates a projector bound to a policy table
func NewNationalProjector(policy *domain.PolicyConstants) *NationalProjector {
	return &NationalProjector{policy: policy, logger: NopLogger{}}
}

// Project is the stateless form of NationalProjector.Project
func Project(in domain.NationalInputs, period domain.PeriodData, policy *domain.PolicyConstants) domain.ProjectionResult {
	return NewNationalProjector(policy).Project(in, period)
}

// accrual accumulates the income side of the projection
type accrual struct {
	revaluedIncome decimal.Decimal
	paidMonths     int
	arrearsCost    decimal.Decimal
	arrearsMonths  int
	futurePremium  decimal.Decimal
	// monthsByYear feeds the per-vintage replacement rate in sweep mode
	monthsByYear map[int]int
}

func newAccrual() *accrual {
	return &accrual{
		revaluedIncome: zero,
		arrearsCost:    zero,
		futurePremium:  zero,
		monthsByYear:   make(map[int]int),
	}
}

// Project runs the income accrual, benefit formula and adjustments for one
// set of inputs. It never fails: insufficient history comes back as a result
// with Eligible false and zero benefit amounts.
func (p *NationalProjector) Project(in domain.NationalInputs, period domain.PeriodData) domain.ProjectionResult {
	rules := p.policy.National
	acc := newAccrual()

	switch in.History.Mode {
	case domain.ModeHybrid:
		p.accrueHybrid(acc, in, period)
	default:
		p.accrueSweep(acc, in, period)
	}

	b := zero
	if acc.paidMonths > 0 {
		b = acc.revaluedIncome.Div(decimal.NewFromInt(int64(acc.paidMonths)))
	}

	a := rules.AValue
	half := a.Add(b).Div(decimal.NewFromInt(2))
	career := decimal.NewFromInt(int64(rules.FullCareerMonths))

	basePension := zero
	if in.History.Mode == domain.ModeHybrid {
		// aggregated history cannot be split back into vintages
		months := decimal.NewFromInt(int64(acc.paidMonths))
		basePension = half.Mul(rules.ReplacementRates.CurrentRate).Mul(months).Div(career).Mul(twelve)
	} else {
		for year, months := range acc.monthsByYear {
			rate := rules.ReplacementRates.RateFor(year)
			m := decimal.NewFromInt(int64(months))
			basePension = basePension.Add(half.Mul(rate).Mul(m).Div(career).Mul(twelve))
		}
	}

	creditMonths := CreditMonths(rules.Credits, in.MilitaryService, in.ChildCount)
	creditYearly := a.Mul(rules.CreditReplacementRate).
		Mul(decimal.NewFromInt(int64(creditMonths))).Div(career).Mul(twelve)

	addOn := DependentAddOn(rules.Dependents, in.Dependents)
	yearly := basePension.Add(creditYearly).Add(addOn)
	yearly = ApplyClaimAdjustment(yearly, addOn, in.Claim, rules)

	reduction := EarningsTestReduction(rules.EarningsTest, in.PostRetireMonthlyIncome, yearly.Div(twelve))
	yearly = nonNegative(yearly.Sub(reduction.Mul(twelve)))

	result := domain.ProjectionResult{
		Mode:                     in.History.Mode,
		Eligible:                 true,
		MonthlyBenefit:           yearly.Div(twelve).Floor(),
		AnnualBenefit:            yearly.Floor(),
		AverageIndexedIncome:     b.Floor(),
		TotalPaidMonths:          acc.paidMonths,
		TotalCreditMonths:        creditMonths,
		MonthlyCreditAmount:      creditYearly.Div(twelve).Floor(),
		TotalArrearsCost:         acc.arrearsCost.Floor(),
		TotalArrearsMonths:       acc.arrearsMonths,
		MonthlyEarningsReduction: reduction.Floor(),
		AnnualDependentAddOn:     addOn.Floor(),
		TotalFuturePremium:       acc.futurePremium.Floor(),
	}

	if acc.paidMonths < rules.MinimumPaidMonths && creditMonths == 0 {
		p.logger.Debugf("insufficient history: %d paid months, no credits", acc.paidMonths)
		result.Eligible = false
		result.MonthlyBenefit = zero
		result.AnnualBenefit = zero
		result.MonthlyEarningsReduction = zero
		result.AnnualDependentAddOn = zero
	}

	p.logger.Debugf("projection mode=%s paid=%d credits=%d B=%s monthly=%s",
		result.Mode, result.TotalPaidMonths, creditMonths, result.AverageIndexedIncome, result.MonthlyBenefit)
	return result
}

// accrueSweep reconstructs every year from the enrollment start
func (p *NationalProjector) accrueSweep(acc *accrual, in domain.NationalInputs, period domain.PeriodData) {
	est := p.estimator(in, period)
	first := max(period.StartYear, p.policy.National.SystemStartYear)
	for year := first; year <= period.RetireYear; year++ {
		p.accrueYear(acc, in, period, year, est.monthly(year), 1)
	}
}

// accrueHybrid trusts the caller's aggregates up to the as-of month and
// projects only the months after it.
func (p *NationalProjector) accrueHybrid(acc *accrual, in domain.NationalInputs, period domain.PeriodData) {
	h := in.History.Hybrid
	if h != nil {
		acc.paidMonths = h.TotalPaidMonths
		acc.revaluedIncome = h.AverageMonthlyIncome.Mul(decimal.NewFromInt(int64(h.TotalPaidMonths)))
	}

	first := max(period.StartYear, p.policy.National.SystemStartYear)

	// bought-back gaps in the settled past are not in the caller's totals
	for year := first; year <= min(period.AsOfYear, period.RetireYear); year++ {
		for m := 1; m <= 12; m++ {
			if !p.inWindow(period, year, m) || domain.MonthIndex(year, m) > domain.MonthIndex(period.AsOfYear, period.AsOfMonth) {
				continue
			}
			if domain.ClassifyMonth(in.ExclusionPeriods, year, m) == domain.ExcludedWithArrears {
				p.accrueArrears(acc, in, period, year)
			}
		}
	}

	est := p.estimator(in, period)
	for year := max(first, period.AsOfYear); year <= period.RetireYear; year++ {
		p.accrueYear(acc, in, period, year, est.monthly(year), domain.MonthIndex(period.AsOfYear, period.AsOfMonth)+1)
	}
}

// accrueYear walks one calendar year. Months indexed below fromIndex are
// skipped.
func (p *NationalProjector) accrueYear(acc *accrual, in domain.NationalInputs, period domain.PeriodData, year int, income decimal.Decimal, fromIndex int) {
	rules := p.policy.National
	income = clamp(income, rules.IncomeFloorMonthly, rules.IncomeCapMonthly)
	revalued := income.Mul(rules.RevaluationFactor(year))
	premiumRate := rules.PremiumRate(year)
	asOf := domain.MonthIndex(period.AsOfYear, period.AsOfMonth)

	for m := 1; m <= 12; m++ {
		if !p.inWindow(period, year, m) || domain.MonthIndex(year, m) < fromIndex {
			continue
		}
		switch domain.ClassifyMonth(in.ExclusionPeriods, year, m) {
		case domain.ExcludedUnpaid:
			continue
		case domain.ExcludedWithArrears:
			p.accrueArrears(acc, in, period, year)
		default:
			acc.paidMonths++
			acc.monthsByYear[year]++
			acc.revaluedIncome = acc.revaluedIncome.Add(revalued)
			if domain.MonthIndex(year, m) > asOf {
				acc.futurePremium = acc.futurePremium.Add(income.Mul(premiumRate))
			}
		}
	}
}

// accrueArrears books one bought-back month at the current capped salary
func (p *NationalProjector) accrueArrears(acc *accrual, in domain.NationalInputs, period domain.PeriodData, year int) {
	rules := p.policy.National
	base := decimal.Min(in.CurrentMonthlyIncome, rules.IncomeCapMonthly)
	acc.paidMonths++
	acc.monthsByYear[year]++
	acc.revaluedIncome = acc.revaluedIncome.Add(base)
	acc.arrearsCost = acc.arrearsCost.Add(base.Mul(rules.PremiumRate(max(period.AsOfYear, rules.ArrearsRateFloorYear))))
	acc.arrearsMonths++
}

// inWindow reports whether a month lies between enrollment and retirement
func (p *NationalProjector) inWindow(period domain.PeriodData, year, month int) bool {
	if year < p.policy.National.SystemStartYear {
		return false
	}
	if year == period.StartYear && month < period.StartMonth {
		return false
	}
	if year < period.StartYear {
		return false
	}
	if year == period.RetireYear && month >= period.RetireMonth {
		return false
	}
	return year <= period.RetireYear
}

// incomeEstimator produces the nominal monthly income assumed for a year
type incomeEstimator struct {
	initial        decimal.Decimal
	current        decimal.Decimal
	growth         decimal.Decimal
	effectiveStart int
	currentYear    int
	peakYear       int
}

func (p *NationalProjector) estimator(in domain.NationalInputs, period domain.PeriodData) incomeEstimator {
	initial := in.CurrentMonthlyIncome
	if in.History.Mode == domain.ModeHistoricalSweep && in.History.Sweep != nil {
		initial = in.History.Sweep.InitialSalary
	}
	return incomeEstimator{
		initial:        initial,
		current:        in.CurrentMonthlyIncome,
		growth:         in.WageGrowthRate,
		effectiveStart: max(period.StartYear, p.policy.National.SystemStartYear),
		currentYear:    period.AsOfYear,
		peakYear:       period.RetireYear - p.policy.National.PeakWindowYears,
	}
}

func (e incomeEstimator) monthly(year int) decimal.Decimal {
	if year <= e.currentYear {
		if e.currentYear <= e.effectiveStart {
			return e.current
		}
		progress := decimal.NewFromInt(int64(year - e.effectiveStart)).
			Div(decimal.NewFromInt(int64(e.currentYear - e.effectiveStart)))
		return e.initial.Add(e.current.Sub(e.initial).Mul(progress))
	}
	if year > e.peakYear {
		// income holds flat through the final years before retirement
		toPeak := max(e.currentYear, e.peakYear) - e.currentYear
		return e.current.Mul(compound(e.growth, max(0, toPeak)))
	}
	return e.current.Mul(compound(e.growth, year-e.currentYear))
}
