package billing

import (
	"strconv"
	"time"
)

// UnitType selects how a billing rule turns a shipment into an amount.
type UnitType string

const (
	UnitPerKG       UnitType = "per_kg"
	UnitPerCBM      UnitType = "per_cbm"
	UnitPerShipment UnitType = "per_shipment"
	UnitPercentage  UnitType = "percentage"
	UnitTiered      UnitType = "tiered"
)

// IsValid reports whether the unit type is known.
func (u UnitType) IsValid() bool {
	switch u {
	case UnitPerKG, UnitPerCBM, UnitPerShipment, UnitPercentage, UnitTiered:
		return true
	}
	return false
}

// Tier is one weight range of a tiered rule. MinWeight is inclusive,
// MaxWeight exclusive; tiers are consumed in list order.
type Tier struct {
	MinWeight float64 `yaml:"min_weight"`
	MaxWeight float64 `yaml:"max_weight"`
	Rate      float64 `yaml:"rate"`
}

// Conditions narrows the shipments a rule applies to. Zero-valued fields do
// not constrain. Tiers is only meaningful for tiered rules.
type Conditions struct {
	MinWeight *float64 `yaml:"min_weight"`
	MaxWeight *float64 `yaml:"max_weight"`
	Countries []string `yaml:"countries"`
	Tiers     []Tier   `yaml:"tiers"`
}

// BillingRule is a channel-scoped charge definition. A rule with an empty
// ChannelID applies to every channel.
type BillingRule struct {
	ID            string     `yaml:"id"`
	Name          string     `yaml:"name"`
	ChargeTypeID  string     `yaml:"charge_type"`
	ChannelID     string     `yaml:"channel_id"`
	UnitType      UnitType   `yaml:"unit_type"`
	BaseRate      float64    `yaml:"base_rate"`
	MinCharge     *float64   `yaml:"min_charge"`
	MaxCharge     *float64   `yaml:"max_charge"`
	Conditions    Conditions `yaml:"conditions"`
	EffectiveFrom time.Time  `yaml:"effective_from"`
	ExpiresAt     *time.Time `yaml:"expires_at"`
	Currency      string     `yaml:"currency"`
}

// Validate checks the rule shape once, so evaluation never has to guard
// against broken configuration.
func (r BillingRule) Validate() error {
	if !r.UnitType.IsValid() {
		return &InvalidRuleError{RuleID: r.ID, Reason: "unknown unit type"}
	}
	if r.Conditions.MinWeight != nil && r.Conditions.MaxWeight != nil &&
		*r.Conditions.MaxWeight < *r.Conditions.MinWeight {
		return &InvalidRuleError{RuleID: r.ID, Reason: "max weight below min weight"}
	}
	if r.MinCharge != nil && r.MaxCharge != nil && *r.MaxCharge < *r.MinCharge {
		return &InvalidRuleError{RuleID: r.ID, Reason: "max charge below min charge"}
	}
	if r.UnitType == UnitTiered {
		if len(r.Conditions.Tiers) == 0 {
			return &InvalidRuleError{RuleID: r.ID, Reason: "tiered rule without tiers"}
		}
		for i, tier := range r.Conditions.Tiers {
			if tier.MaxWeight <= tier.MinWeight {
				return &InvalidRuleError{RuleID: r.ID, Reason: "empty tier range at index " + strconv.Itoa(i)}
			}
		}
	}
	return nil
}
