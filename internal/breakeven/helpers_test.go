package breakeven

import (
	"testing"
	"time"

	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/config"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	policy, err := config.NewPolicyLoader().LoadDefault()
	require.NoError(t, err)
	engine := calculation.NewCalculationEngine(policy)
	engine.Now = func() time.Time { return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC) }
	return NewDefaultSolver(engine)
}

// shortCareerInputs contributes six months in 2026 and carries the military
// credit; the base monthly benefit is 49,789 won.
func shortCareerInputs() *domain.NationalInputs {
	return &domain.NationalInputs{
		BirthDate:            time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC),
		StartYear:            2026,
		StartMonth:           1,
		RetireAge:            36,
		CurrentMonthlyIncome: decimal.NewFromInt(3000000),
		History:              domain.SweepHistory(decimal.NewFromInt(1000000)),
		WageGrowthRate:       decimal.NewFromFloat(0.03),
		MilitaryService:      true,
	}
}

func intPtr(v int) *int { return &v }

func wonPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
