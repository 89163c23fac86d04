package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter is one national pension input to sweep
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"min_value"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"max_value"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"base_value"`
	Unit        string          `yaml:"unit" json:"unit"` // "rate", "ratio", "years"
	Description string          `yaml:"description" json:"description"`
}

// Values returns Steps evenly spaced points from MinValue to MaxValue.
// Fewer than two steps collapses to the base value.
func (p SensitivityParameter) Values() []decimal.Decimal {
	if p.Steps <= 1 {
		return []decimal.Decimal{p.BaseValue}
	}
	step := p.MaxValue.Sub(p.MinValue).Div(decimal.NewFromInt(int64(p.Steps - 1)))
	values := make([]decimal.Decimal, 0, p.Steps)
	for i := 0; i < p.Steps; i++ {
		values = append(values, p.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// ParameterSensitivityAnalysis is the outcome of one or more sweeps
type ParameterSensitivityAnalysis struct {
	Parameters   []SensitivityParameter `yaml:"parameters" json:"parameters"`
	Base         SensitivityMetrics     `yaml:"base" json:"base"`
	Results      []SensitivityResult    `yaml:"results" json:"results"`
	Summary      SensitivitySummary     `yaml:"summary" json:"summary"`
	AnalysisType string                 `yaml:"analysis_type" json:"analysis_type"` // "single", "multi"
}

// SensitivityResult is the projection at one point of a sweep
type SensitivityResult struct {
	Parameter  string             `yaml:"parameter" json:"parameter"`
	Value      decimal.Decimal    `yaml:"value" json:"value"`
	Label      string             `yaml:"label" json:"label"`
	KeyMetrics SensitivityMetrics `yaml:"key_metrics" json:"key_metrics"`
}

// SensitivityMetrics are the figures compared across a sweep
type SensitivityMetrics struct {
	Eligible       bool            `yaml:"eligible" json:"eligible"`
	ReceiptAge     int             `yaml:"receipt_age" json:"receipt_age"`
	MonthlyBenefit decimal.Decimal `yaml:"monthly_benefit" json:"monthly_benefit"`
	FutureMonthly  decimal.Decimal `yaml:"future_monthly" json:"future_monthly"`
	LifetimeTotal  decimal.Decimal `yaml:"lifetime_total" json:"lifetime_total"`
	// MonthlyChange and MonthlyChangePct are relative to the unmodified inputs
	MonthlyChange    decimal.Decimal `yaml:"monthly_change" json:"monthly_change"`
	MonthlyChangePct decimal.Decimal `yaml:"monthly_change_pct" json:"monthly_change_pct"`
}

// SensitivitySummary ranks the swept parameters
type SensitivitySummary struct {
	MostSensitiveParameter string                     `yaml:"most_sensitive_parameter" json:"most_sensitive_parameter"`
	SensitivityScores      map[string]decimal.Decimal `yaml:"sensitivity_scores" json:"sensitivity_scores"`
	Recommendations        []string                   `yaml:"recommendations" json:"recommendations"`
	RiskLevel              string                     `yaml:"risk_level" json:"risk_level"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
}

// Common sensitivity parameters. Shift and scale parameters are relative to
// the caller's own inputs so the same sweep fits any member.
var (
	WageGrowthRateParam = SensitivityParameter{
		Name:        "wage_growth_rate",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.05),
		Steps:       6,
		BaseValue:   decimal.NewFromFloat(0.03),
		Unit:        "rate",
		Description: "Annual nominal wage growth until the peak window",
	}

	InflationRateParam = SensitivityParameter{
		Name:        "inflation_rate",
		MinValue:    decimal.NewFromFloat(0.01),
		MaxValue:    decimal.NewFromFloat(0.04),
		Steps:       4,
		BaseValue:   decimal.NewFromFloat(0.025),
		Unit:        "rate",
		Description: "Inflation used for the future-value view",
	}

	IncomeScaleParam = SensitivityParameter{
		Name:        "income_scale",
		MinValue:    decimal.NewFromFloat(0.8),
		MaxValue:    decimal.NewFromFloat(1.2),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(1),
		Unit:        "ratio",
		Description: "Multiplier on the current monthly income",
	}

	RetireAgeShiftParam = SensitivityParameter{
		Name:        "retire_age_shift",
		MinValue:    decimal.NewFromInt(-4),
		MaxValue:    decimal.NewFromInt(4),
		Steps:       5,
		BaseValue:   decimal.Zero,
		Unit:        "years",
		Description: "Years added to the contribution end age",
	}

	ClaimOffsetParam = SensitivityParameter{
		Name:        "claim_offset",
		MinValue:    decimal.NewFromInt(-5),
		MaxValue:    decimal.NewFromInt(5),
		Steps:       11,
		BaseValue:   decimal.Zero,
		Unit:        "years",
		Description: "Claim years relative to the normal claim age; negative is early",
	}
)

// GetCommonParameters returns the default sweep set
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		WageGrowthRateParam,
		InflationRateParam,
		IncomeScaleParam,
		RetireAgeShiftParam,
		ClaimOffsetParam,
	}
}

// DetermineRiskLevel grades the largest score
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}

	switch {
	case maxScore.LessThan(decimal.NewFromInt(5)):
		return "LOW"
	case maxScore.LessThan(decimal.NewFromInt(15)):
		return "MEDIUM"
	case maxScore.LessThan(decimal.NewFromInt(30)):
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

// GenerateRecommendations derives advice from the risk level and the most
// sensitive parameter
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	switch ss.DetermineRiskLevel() {
	case "LOW":
		recommendations = append(recommendations, "Projection is robust to the swept assumptions")
	case "MEDIUM":
		recommendations = append(recommendations, "Review the assumptions when your income changes")
	case "HIGH":
		recommendations = append(recommendations, "Projection depends heavily on the swept assumptions")
		recommendations = append(recommendations, "Compare against conservative values before deciding")
	case "CRITICAL":
		recommendations = append(recommendations, "Projection swings widely across plausible assumptions")
		recommendations = append(recommendations, "Treat the point estimate as a rough guide only")
	}

	switch ss.MostSensitiveParameter {
	case "wage_growth_rate", "income_scale":
		recommendations = append(recommendations, "Income history drives the benefit; check your contribution record")
	case "inflation_rate":
		recommendations = append(recommendations, "Read the current-value figures alongside the future values")
	case "retire_age_shift":
		recommendations = append(recommendations, "Each extra contribution year raises the benefit noticeably")
	case "claim_offset":
		recommendations = append(recommendations, "Claim timing matters most; compare claim ages before applying")
	}

	return recommendations
}
