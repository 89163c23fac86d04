package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/breakeven"
	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/transform"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Display name of the unmodified inputs
	Templates        []string // Built-in template names to apply
	Transforms       []string // Custom scenarios, each a ';'-separated transform list
	ConfigPath       string
}

// Compare runs the base inputs and one alternative per template or custom
// transform list
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base *domain.NationalInputs,
	options CompareOptions,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base inputs are required: %w", domain.ErrInvalidInput)
	}
	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, fmt.Errorf("at least one template or transform is required: %w", domain.ErrInvalidInput)
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	baseResult, err := ce.evaluate(ctx, baseName, *base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.evaluate(ctx, baseName+"_"+template.Name, *modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	for i, spec := range options.Transforms {
		transforms, err := ce.TransformRegistry.ParseTransformList(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transforms %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply transforms %q: %w", spec, err)
		}

		altResult, err := ce.evaluate(ctx, fmt.Sprintf("%s_custom%d", baseName, i+1), *modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %q: %w", spec, err)
		}
		altResult.Description = transform.Describe(transforms)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// evaluate estimates one scenario. Insufficient history yields an
// ineligible zero-benefit result rather than an error.
func (ce *CompareEngine) evaluate(ctx context.Context, name string, in domain.NationalInputs) (ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}
	est, err := ce.CalcEngine.EstimateNational(in)
	if err != nil && !errors.Is(err, domain.ErrInsufficientHistory) {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, in, est, ce.CalcEngine.LifeExpectancy(in)), nil
}

// CompareClaimTiming evaluates every early and deferred claiming age the
// policy allows against claiming at the normal age. Any claim adjustment on
// the inputs is replaced.
func (ce *CompareEngine) CompareClaimTiming(ctx context.Context, in domain.NationalInputs) (*domain.ClaimComparison, error) {
	rules := ce.CalcEngine.Policy.National
	life := ce.CalcEngine.LifeExpectancy(in)

	option := func(early, deferYears int) (domain.ClaimOption, error) {
		if err := ctx.Err(); err != nil {
			return domain.ClaimOption{}, err
		}
		variant := in.Clone()
		variant.Claim = domain.ClaimAdjustment{EarlyYears: early, DeferYears: deferYears}
		est, err := ce.CalcEngine.EstimateNational(variant)
		if err != nil {
			return domain.ClaimOption{}, err
		}
		monthly := est.Projection.MonthlyBenefit
		return domain.ClaimOption{
			Label:          claimLabel(early, deferYears, est.ReceiptAge),
			EarlyYears:     early,
			DeferYears:     deferYears,
			ClaimAge:       est.ReceiptAge,
			MonthlyBenefit: monthly,
			LifetimeTotal:  calculation.LifetimeReceipts(monthly, est.ReceiptAge, life),
		}, nil
	}

	base, err := option(0, 0)
	if err != nil {
		return nil, fmt.Errorf("normal claim: %w", err)
	}

	cmp := &domain.ClaimComparison{LifeExpectancyAge: life, Base: base, Best: base.Label}
	best := base

	addAlternative := func(early, deferYears int) error {
		alt, err := option(early, deferYears)
		if err != nil {
			return fmt.Errorf("%s: %w", claimLabel(early, deferYears, 0), err)
		}
		alt.MonthlyDiffFromBase = alt.MonthlyBenefit.Sub(base.MonthlyBenefit)
		alt.LifetimeDiffFromBase = alt.LifetimeTotal.Sub(base.LifetimeTotal)
		alt.BreakEvenAge = breakeven.ClaimBreakEvenAge(base.MonthlyBenefit, alt.MonthlyBenefit, base.ClaimAge, alt.ClaimAge)
		cmp.Alternatives = append(cmp.Alternatives, alt)
		if alt.LifetimeTotal.GreaterThan(best.LifetimeTotal) {
			best = alt
		}
		return nil
	}

	for years := rules.MaxEarlyYears; years >= 1; years-- {
		if err := addAlternative(years, 0); err != nil {
			return nil, err
		}
	}
	for years := 1; years <= rules.MaxDeferYears; years++ {
		if err := addAlternative(0, years); err != nil {
			return nil, err
		}
	}

	cmp.Best = best.Label
	cmp.Recommendations = claimRecommendations(cmp, best)
	ce.CalcEngine.Logger.Debugf("claim timing: %d options, best %s", len(cmp.Alternatives)+1, cmp.Best)
	return cmp, nil
}

func claimLabel(early, deferYears, age int) string {
	var label string
	switch {
	case early > 0:
		label = fmt.Sprintf("early_%dyr", early)
	case deferYears > 0:
		label = fmt.Sprintf("defer_%dyr", deferYears)
	default:
		label = "normal"
	}
	if age > 0 {
		label += fmt.Sprintf(" (age %d)", age)
	}
	return label
}

func claimRecommendations(cmp *domain.ClaimComparison, best domain.ClaimOption) []string {
	var recs []string

	if best.Label == cmp.Base.Label {
		recs = append(recs, fmt.Sprintf("Claiming at the normal age %d gives the largest total to age %d",
			cmp.Base.ClaimAge, cmp.LifeExpectancyAge))
	} else {
		recs = append(recs, fmt.Sprintf("Claiming %s gives the largest total to age %d: %s won more than the normal age",
			best.Label, cmp.LifeExpectancyAge, domain.FormatWon(best.LifetimeTotal.Sub(cmp.Base.LifetimeTotal))))
	}

	var longest *domain.ClaimOption
	for i := range cmp.Alternatives {
		if cmp.Alternatives[i].DeferYears > 0 {
			longest = &cmp.Alternatives[i]
		}
	}
	if longest != nil && longest.BreakEvenAge > 0 {
		recs = append(recs, fmt.Sprintf("Deferring %d years pays off only past age %d",
			longest.DeferYears, longest.BreakEvenAge))
	}

	for _, alt := range cmp.Alternatives {
		if alt.EarlyYears == 1 && !cmp.Base.MonthlyBenefit.IsZero() {
			cut := alt.MonthlyDiffFromBase.Neg().Div(cmp.Base.MonthlyBenefit).Mul(decimal.NewFromInt(100)).Round(1)
			recs = append(recs, fmt.Sprintf("Each year claimed early cuts the monthly benefit by about %s%%", cut.StringFixed(1)))
		}
	}

	return recs
}

// AttachClaimTiming fills report.ClaimTiming from the national inputs that
// produced it. Reports without an eligible national section are left as is.
func (ce *CompareEngine) AttachClaimTiming(ctx context.Context, report *domain.Report, in *domain.NationalInputs) error {
	if report == nil || in == nil || report.National == nil || report.NationalError != "" {
		return nil
	}
	cmp, err := ce.CompareClaimTiming(ctx, *in)
	if err != nil {
		return fmt.Errorf("claim timing: %w", err)
	}
	report.ClaimTiming = cmp
	return nil
}
