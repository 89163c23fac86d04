package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/kpgo/internal/config"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func loadPolicy(t *testing.T) *domain.PolicyConstants {
	t.Helper()
	policy, err := config.NewPolicyLoader().LoadDefault()
	require.NoError(t, err)
	return policy
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 0, 0, 0, 0, time.UTC) }
}

// shortCareerInputs is six months of contributions in 2026 plus the
// military credit, which keeps the result eligible.
func shortCareerInputs() domain.NationalInputs {
	return domain.NationalInputs{
		BirthDate:            time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC),
		StartYear:            2026,
		StartMonth:           1,
		RetireAge:            36,
		CurrentMonthlyIncome: d(3000000),
		History:              domain.SweepHistory(d(1000000)),
		WageGrowthRate:       decimal.NewFromFloat(0.03),
		MilitaryService:      true,
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.lines = append(l.lines, "DEBUG "+fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.lines = append(l.lines, "INFO "+fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.lines = append(l.lines, "WARN "+fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.lines = append(l.lines, "ERROR "+fmt.Sprintf(format, args...))
}
