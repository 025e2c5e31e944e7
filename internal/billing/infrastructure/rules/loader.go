package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	billing "freightops/internal/billing/domain"
)

type ruleFile struct {
	Rules []billing.BillingRule `yaml:"rules"`
}

// Parse decodes a YAML billing rule set and validates every rule. A broken
// rule fails the whole set so evaluation never sees partial configuration.
func Parse(data []byte) ([]billing.BillingRule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("billing rules: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Rules))
	for _, rule := range file.Rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("billing rules: rule without id")
		}
		if _, dup := seen[rule.ID]; dup {
			return nil, fmt.Errorf("billing rules: duplicate rule id %q", rule.ID)
		}
		seen[rule.ID] = struct{}{}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Rules, nil
}

// Load reads and parses a rule set from disk.
func Load(path string) ([]billing.BillingRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("billing rules %s: %w", path, err)
	}
	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("billing rules %s: %w", path, err)
	}
	return rules, nil
}
