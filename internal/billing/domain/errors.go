package billing

import "fmt"

// InvalidRuleError is returned when a billing rule is structurally broken,
// e.g. a tiered rule without tiers.
type InvalidRuleError struct {
	RuleID string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("billing: invalid rule %q: %s", e.RuleID, e.Reason)
}
