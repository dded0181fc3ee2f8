package checks

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// RuleType names a rule kind that can be declared in a rubric file.
type RuleType string

const (
	RuleTypePattern         RuleType = "pattern"
	RuleTypeAnyOf           RuleType = "any_of"
	RuleTypeAllOf           RuleType = "all_of"
	RuleTypeMinArrayNumbers RuleType = "min_array_numbers"
	RuleTypeInTryBlock      RuleType = "in_try_block"
)

// Create builds a rule of the given type from decoded YAML parameters.
func Create(ruleType RuleType, params map[string]any) (Rule, error) {
	switch ruleType {
	case RuleTypePattern, RuleTypeInTryBlock:
		var v struct {
			Pattern    string `mapstructure:"pattern"`
			IgnoreCase bool   `mapstructure:"ignore_case"`
		}
		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, fmt.Errorf("%s rule: %w", ruleType, err)
		}
		if v.Pattern == "" {
			return nil, fmt.Errorf("%s rule: pattern is required", ruleType)
		}
		if ruleType == RuleTypeInTryBlock {
			return compileInTryBlock(v.Pattern, v.IgnoreCase)
		}
		return CompilePattern(v.Pattern, v.IgnoreCase)
	case RuleTypeAnyOf, RuleTypeAllOf:
		var v struct {
			Rules []map[string]any `mapstructure:"rules"`
		}
		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, fmt.Errorf("%s rule: %w", ruleType, err)
		}
		if len(v.Rules) == 0 {
			return nil, fmt.Errorf("%s rule: at least one nested rule is required", ruleType)
		}

		rules := make([]Rule, 0, len(v.Rules))
		for i, spec := range v.Rules {
			r, err := CreateFromSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("%s rule #%d: %w", ruleType, i+1, err)
			}
			rules = append(rules, r)
		}
		if ruleType == RuleTypeAnyOf {
			return AnyOf(rules...), nil
		}
		return AllOf(rules...), nil
	case RuleTypeMinArrayNumbers:
		var v struct {
			Min int `mapstructure:"min"`
		}
		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, fmt.Errorf("%s rule: %w", ruleType, err)
		}
		if v.Min <= 0 {
			return nil, fmt.Errorf("%s rule: min must be positive, got %d", ruleType, v.Min)
		}
		return MinArrayNumbers(v.Min), nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid rule type", ruleType)
	}
}

// CreateFromSpec builds a rule from a map holding a "type" key alongside the
// rule's own parameters.
func CreateFromSpec(spec map[string]any) (Rule, error) {
	t, ok := spec["type"].(string)
	if !ok || t == "" {
		return nil, errors.New("rule is missing a 'type'")
	}
	return Create(RuleType(t), spec)
}
