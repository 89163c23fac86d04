package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retire_age", createSetRetireAge)
	registry.Register("claim_early", createClaimEarly)
	registry.Register("claim_defer", createClaimDefer)
	registry.Register("claim_normal", func(map[string]string) (InputTransform, error) { return &ClaimAtNormalAge{}, nil })
	registry.Register("set_income", createSetIncome)
	registry.Register("adjust_wage_growth", createAdjustWageGrowth)
	registry.Register("set_post_retire_income", createSetPostRetireIncome)
	registry.Register("buy_back_arrears", func(map[string]string) (InputTransform, error) { return &BuyBackArrears{}, nil })
	registry.Register("skip_arrears", func(map[string]string) (InputTransform, error) { return &SkipArrears{}, nil })
	registry.Register("add_gap", createAddGap)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "claim_defer:years=3". Transforms without parameters may omit
// the colon.
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %q", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformList parses a ';'-separated chain of transform specs
func (r *TransformRegistry) ParseTransformList(specs string) ([]InputTransform, error) {
	var out []InputTransform
	for _, spec := range strings.Split(specs, ";") {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createPostponeRetirement(params map[string]string) (InputTransform, error) {
	years, err := intParam("postpone_retirement", params, "years")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetireAge(params map[string]string) (InputTransform, error) {
	age, err := intParam("set_retire_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetRetireAge{Age: age}, nil
}

func createClaimEarly(params map[string]string) (InputTransform, error) {
	years, err := intParam("claim_early", params, "years")
	if err != nil {
		return nil, err
	}
	return &ClaimEarly{Years: years}, nil
}

func createClaimDefer(params map[string]string) (InputTransform, error) {
	years, err := intParam("claim_defer", params, "years")
	if err != nil {
		return nil, err
	}
	return &ClaimDefer{Years: years}, nil
}

func createSetIncome(params map[string]string) (InputTransform, error) {
	monthly, err := decimalParam("set_income", params, "monthly")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Monthly: monthly}, nil
}

func createAdjustWageGrowth(params map[string]string) (InputTransform, error) {
	rate, err := decimalParam("adjust_wage_growth", params, "rate")
	if err != nil {
		return nil, err
	}
	return &AdjustWageGrowth{Rate: rate}, nil
}

func createSetPostRetireIncome(params map[string]string) (InputTransform, error) {
	monthly, err := decimalParam("set_post_retire_income", params, "monthly")
	if err != nil {
		return nil, err
	}
	return &SetPostRetireIncome{Monthly: monthly}, nil
}

// createAddGap reads from/to as YYYY-MM and an optional arrears flag
func createAddGap(params map[string]string) (InputTransform, error) {
	from, ok := params["from"]
	if !ok {
		return nil, fmt.Errorf("add_gap requires 'from' parameter")
	}
	to, ok := params["to"]
	if !ok {
		return nil, fmt.Errorf("add_gap requires 'to' parameter")
	}

	sy, sm, err := parseYearMonth(from)
	if err != nil {
		return nil, fmt.Errorf("invalid from value: %w", err)
	}
	ey, em, err := parseYearMonth(to)
	if err != nil {
		return nil, fmt.Errorf("invalid to value: %w", err)
	}

	arrears := false
	if v, ok := params["arrears"]; ok {
		arrears = v == "true" || v == "yes" || v == "1"
	}

	return &AddGap{Period: domain.ExclusionPeriod{
		StartYear: sy, StartMonth: sm,
		EndYear: ey, EndMonth: em,
		IsArrearsPayment: arrears,
	}}, nil
}

func parseYearMonth(s string) (int, int, error) {
	y, m, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("expected YYYY-MM, got %q", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
