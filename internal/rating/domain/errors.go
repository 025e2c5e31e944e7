package rating

import "fmt"

// InvalidRuleError is returned when a rate rule cannot be evaluated safely,
// e.g. a non-positive volumetric divisor or an inverted weight band.
type InvalidRuleError struct {
	RuleID string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("rating: invalid rule %q: %s", e.RuleID, e.Reason)
}
