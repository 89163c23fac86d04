package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common national
// pension what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []int{1, 3, 5} {
		registry.Register(Template{
			Name:        fmt.Sprintf("work_%dyr", years),
			Description: fmt.Sprintf("Keep contributing %d more years", years),
			Transforms:  []InputTransform{&PostponeRetirement{Years: years}},
		})
	}

	for _, years := range []int{1, 3, 5} {
		registry.Register(Template{
			Name:        fmt.Sprintf("claim_early_%d", years),
			Description: fmt.Sprintf("Claim %d years before the normal claim age", years),
			Transforms:  []InputTransform{&ClaimEarly{Years: years}},
		})
		registry.Register(Template{
			Name:        fmt.Sprintf("claim_defer_%d", years),
			Description: fmt.Sprintf("Defer the claim %d years past the normal claim age", years),
			Transforms:  []InputTransform{&ClaimDefer{Years: years}},
		})
	}

	registry.Register(Template{
		Name:        "buy_back",
		Description: "Pay arrears for every contribution gap",
		Transforms:  []InputTransform{&BuyBackArrears{}},
	})

	registry.Register(Template{
		Name:        "skip_buy_back",
		Description: "Leave every contribution gap unpaid",
		Transforms:  []InputTransform{&SkipArrears{}},
	})

	registry.Register(Template{
		Name:        "work_3yr_defer_5",
		Description: "Contribute 3 more years and defer the claim 5 years",
		Transforms: []InputTransform{
			&PostponeRetirement{Years: 3},
			&ClaimDefer{Years: 5},
		},
	})

	registry.Register(Template{
		Name:        "conservative",
		Description: "No wage growth and claim at the normal age",
		Transforms: []InputTransform{
			&AdjustWageGrowth{},
			&ClaimAtNormalAge{},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base inputs
func ApplyTemplate(base *domain.NationalInputs, template Template) (*domain.NationalInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Contribution Period", "Claim Timing", "Contribution Gaps", "Combination Strategies"}
	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.Contains(name, "_defer_") && strings.HasPrefix(name, "work_"):
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		case strings.HasPrefix(name, "work_"):
			categories["Contribution Period"] = append(categories["Contribution Period"], template)
		case strings.HasPrefix(name, "claim_"):
			categories["Claim Timing"] = append(categories["Claim Timing"], template)
		case strings.Contains(name, "buy_back"):
			categories["Contribution Gaps"] = append(categories["Contribution Gaps"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  kpgo compare request.yaml --with work_3yr,claim_defer_5\n")
	sb.WriteString("  kpgo compare request.yaml --with conservative,buy_back\n")

	return sb.String()
}
