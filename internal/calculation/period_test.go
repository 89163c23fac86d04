package calculation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePeriod(t *testing.T) {
	birth := time.Date(1970, 5, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		asOf      time.Time
		startYear int
		startMon  int
		override  *int
		wantAge   int
		wantTotal int
	}{
		{"day before birthday", time.Date(2026, 5, 19, 0, 0, 0, 0, time.UTC), 1995, 3, nil, 55, 422},
		{"on birthday", time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), 1995, 3, nil, 56, 422},
		{"later month", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), 1995, 3, nil, 56, 422},
		{"override", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 1995, 3, intPtr(48), 48, 422},
		{"start after retirement clamps", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 2031, 1, nil, 55, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CalculatePeriod(birth, tt.startYear, tt.startMon, 60, tt.asOf, tt.override)
			assert.Equal(t, tt.wantAge, p.CurrentAge)
			assert.Equal(t, tt.wantTotal, p.TotalMonths)
			assert.Equal(t, 2030, p.RetireYear)
			assert.Equal(t, 5, p.RetireMonth)
			assert.Equal(t, tt.asOf.Year(), p.AsOfYear)
			assert.Equal(t, int(tt.asOf.Month()), p.AsOfMonth)
		})
	}
}

func intPtr(v int) *int { return &v }
