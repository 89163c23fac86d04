package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		ConfigPath:       "/path/to/input.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:    "base",
			Eligible:        true,
			RetireAge:       60,
			ReceiptAge:      65,
			PaidMonths:      240,
			MonthlyBenefit:  decimal.NewFromInt(800000),
			AfterTaxMonthly: decimal.NewFromInt(785000),
			LifetimeTotal:   decimal.NewFromInt(240000000),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:         "base_claim_defer_5",
				Description:          "Defer the claim by 5 years",
				Eligible:             true,
				RetireAge:            60,
				ReceiptAge:           70,
				PaidMonths:           240,
				MonthlyBenefit:       decimal.NewFromInt(1088000),
				AfterTaxMonthly:      decimal.NewFromInt(1060000),
				LifetimeTotal:        decimal.NewFromInt(261120000),
				MonthlyDiffFromBase:  decimal.NewFromInt(288000),
				MonthlyPctFromBase:   decimal.NewFromInt(36),
				LifetimeDiffFromBase: decimal.NewFromInt(21120000),
			},
		},
		Recommendations: []string{
			"Best Monthly: base_claim_defer_5 pays 288,000 won more a month than the base scenario",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	expectedStrings := []string{
		"NATIONAL PENSION SCENARIO COMPARISON",
		"Base Scenario: base",
		"Input File:    /path/to/input.yaml",
		"base (base)",
		"base_claim_defer_5",
		"800,000",
		"1,088,000",
		"COMPARISON TO BASE",
		"Monthly Benefit:  +288,000 won (36.0%)",
		"Lifetime Total:   +21,120,000 won",
		"RECOMMENDATIONS",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(result, expected) {
			t.Errorf("Expected output to contain %q", expected)
		}
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.FormatCompact(sampleComparisonSet())

	expected := "Base: base | base_claim_defer_5: +29만/mo"
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func sampleClaimComparison() *domain.ClaimComparison {
	return &domain.ClaimComparison{
		LifeExpectancyAge: 90,
		Base: domain.ClaimOption{
			Label:          "normal (age 65)",
			ClaimAge:       65,
			MonthlyBenefit: decimal.NewFromInt(100000),
			LifetimeTotal:  decimal.NewFromInt(30000000),
		},
		Alternatives: []domain.ClaimOption{
			{
				Label:                "early_1yr (age 64)",
				EarlyYears:           1,
				ClaimAge:             64,
				MonthlyBenefit:       decimal.NewFromInt(94000),
				LifetimeTotal:        decimal.NewFromInt(29328000),
				MonthlyDiffFromBase:  decimal.NewFromInt(-6000),
				LifetimeDiffFromBase: decimal.NewFromInt(-672000),
				BreakEvenAge:         81,
			},
			{
				Label:                "defer_1yr (age 66)",
				DeferYears:           1,
				ClaimAge:             66,
				MonthlyBenefit:       decimal.NewFromInt(107200),
				LifetimeTotal:        decimal.NewFromInt(30873600),
				MonthlyDiffFromBase:  decimal.NewFromInt(7200),
				LifetimeDiffFromBase: decimal.NewFromInt(873600),
				BreakEvenAge:         80,
			},
		},
		Best:            "defer_1yr (age 66)",
		Recommendations: []string{"Deferring 1 years pays off only past age 80"},
	}
}

func TestTableFormatter_FormatClaimTiming(t *testing.T) {
	result := (&TableFormatter{}).FormatClaimTiming(sampleClaimComparison())

	for _, expected := range []string{
		"CLAIM TIMING COMPARISON",
		"Lifetime totals run to age 90",
		"*defer_1yr (age 66)",
		"-672,000",
		"+873,600",
		"* largest lifetime total: defer_1yr (age 66)",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(result, expected) {
			t.Errorf("Expected output to contain %q", expected)
		}
	}

	early := strings.Index(result, "early_1yr")
	normal := strings.Index(result, "normal (age 65)")
	deferred := strings.Index(result, "defer_1yr")
	if early >= normal || normal >= deferred {
		t.Error("Expected rows ordered early, normal, deferred")
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	result, err := (&CSVFormatter{}).Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines (header + 2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Eligible") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "base,base,true,60,65,240,800000,785000,240000000,0,0.00,0" {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "base_claim_defer_5,alternative,true,60,70,240,1088000") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
}

func TestCSVFormatter_FormatClaimTiming(t *testing.T) {
	result, err := (&CSVFormatter{}).FormatClaimTiming(sampleClaimComparison())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	if lines[1] != "normal (age 65),0,0,65,100000,30000000,0,0,0" {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if lines[2] != "early_1yr (age 64),1,0,64,94000,29328000,-6000,-672000,81" {
		t.Errorf("Unexpected early row: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	result, err := (&JSONFormatter{Pretty: true}).Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, expected := range []string{
		`"base_scenario_name": "base"`,
		`"scenario_name": "base_claim_defer_5"`,
		`"monthly_benefit": "1088000"`,
		`"recommendations"`,
	} {
		if !strings.Contains(result, expected) {
			t.Errorf("Expected JSON to contain %s", expected)
		}
	}
	if strings.Contains(result, `"estimate"`) {
		t.Error("Estimate should not be serialized")
	}

	compact, err := (&JSONFormatter{}).FormatClaimTiming(sampleClaimComparison())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Error("Compact JSON should be a single line")
	}
	if !strings.Contains(compact, `"best":"defer_1yr (age 66)"`) {
		t.Errorf("Unexpected claim timing JSON: %s", compact)
	}
}
