package memory

import (
	"context"
	"sync"

	billing "freightops/internal/billing/domain"
)

// RuleRepository is an in-memory billing rule store. Rules are validated on
// save so evaluation never sees a broken rule.
type RuleRepository struct {
	mu    sync.RWMutex
	rules map[string]billing.BillingRule
	order []string
}

// NewRuleRepository constructs an empty repository.
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{rules: make(map[string]billing.BillingRule)}
}

// Save stores or replaces a rule.
func (r *RuleRepository) Save(ctx context.Context, rule billing.BillingRule) error {
	_ = ctx
	if err := rule.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[rule.ID]; !exists {
		r.order = append(r.order, rule.ID)
	}
	r.rules[rule.ID] = rule
	return nil
}

// ListForChannel returns rules scoped to the channel plus the unscoped
// ones, in insertion order.
func (r *RuleRepository) ListForChannel(ctx context.Context, channelID string) ([]billing.BillingRule, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]billing.BillingRule, 0, len(r.order))
	for _, id := range r.order {
		rule := r.rules[id]
		if rule.ChannelID == "" || rule.ChannelID == channelID {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// ListAll returns every rule in insertion order.
func (r *RuleRepository) ListAll(ctx context.Context) ([]billing.BillingRule, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]billing.BillingRule, 0, len(r.order))
	for _, id := range r.order {
		rules = append(rules, r.rules[id])
	}
	return rules, nil
}
