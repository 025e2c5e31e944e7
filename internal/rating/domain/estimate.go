package rating

import (
	"sort"

	waybill "freightops/internal/waybill/domain"
)

// Validate checks that a rule can be evaluated without producing NaN or
// division by zero.
func (r RateRule) Validate() error {
	if r.MaxWeight < r.MinWeight {
		return &InvalidRuleError{RuleID: r.ID, Reason: "max weight below min weight"}
	}
	if !r.WeightType.IsValid() {
		return &InvalidRuleError{RuleID: r.ID, Reason: "unknown weight type"}
	}
	if r.Divisor != nil && *r.Divisor <= 0 {
		return &InvalidRuleError{RuleID: r.ID, Reason: "non-positive volumetric divisor"}
	}
	return nil
}

// Matches reports whether the shipment weight falls inside the rule band.
// Both ends are inclusive.
func (r RateRule) Matches(weight float64) bool {
	return weight >= r.MinWeight && weight <= r.MaxWeight
}

// Estimate rates one shipment against one channel.
//
// The channel's rate table is filtered to bands containing the shipment
// weight and the lowest-priority rule wins; ties keep the table order. A
// channel with neither a matching rule nor a flat charge price is not
// applicable and yields a nil estimate without error.
func Estimate(shipment waybill.Shipment, channel Channel) (*CostEstimate, error) {
	rule, err := selectRule(channel.Rules, shipment.Weight)
	if err != nil {
		return nil, err
	}
	if rule == nil && channel.ChargePrice <= 0 {
		return nil, nil
	}

	volume := shipment.Volume()

	// Chargeable weight defaults to the actual weight until a matched rule
	// refines it with a volumetric divisor or a CBM basis.
	chargeWeight := shipment.Weight
	if channel.ChargeUnit == UnitCBM && rule == nil {
		chargeWeight = volume
	}

	estimate := &CostEstimate{
		ChannelID:   channel.ID,
		ChannelName: channel.Name,
		Volume:      volume,
		Currency:    channel.Currency,
	}

	if rule != nil {
		var volumeWeight float64
		if rule.Divisor != nil {
			volumeWeight = shipment.VolumetricWeight(*rule.Divisor)
		}
		if rule.WeightType == UnitKG {
			chargeWeight = shipment.Weight
			if volumeWeight > chargeWeight {
				chargeWeight = volumeWeight
			}
		} else {
			chargeWeight = volume
		}

		estimate.RuleID = rule.ID
		estimate.RateBase = chargeWeight * rule.BaseRate
		estimate.Tax = rule.TaxRate / 100 * estimate.RateBase
		estimate.ExtraFee = rule.ExtraFee
		estimate.OtherFee = rule.OtherFee
	}

	if channel.ChargePrice > 0 {
		if channel.ChargeUnit == UnitCBM {
			estimate.FreightCost = channel.ChargePrice * volume
		} else {
			estimate.FreightCost = channel.ChargePrice * chargeWeight
		}
	}

	estimate.ChargeableWeight = chargeWeight
	estimate.Total = estimate.FreightCost + estimate.RateBase +
		estimate.ExtraFee + estimate.OtherFee + estimate.Tax
	return estimate, nil
}

// EstimateAll rates a shipment across every channel and returns one estimate
// per applicable channel. No cross-channel precedence is applied; callers
// get the full comparison set.
func EstimateAll(shipment waybill.Shipment, channels []Channel) ([]CostEstimate, error) {
	estimates := make([]CostEstimate, 0, len(channels))
	for _, channel := range channels {
		estimate, err := Estimate(shipment, channel)
		if err != nil {
			return nil, err
		}
		if estimate == nil {
			continue
		}
		estimates = append(estimates, *estimate)
	}
	return estimates, nil
}

// selectRule returns the matching rule with the lowest priority value, or
// nil when no band contains the weight. Matching rules are validated before
// selection so a broken band fails loudly instead of rating garbage.
func selectRule(rules []RateRule, weight float64) (*RateRule, error) {
	matched := make([]RateRule, 0, len(rules))
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		if rule.Matches(weight) {
			matched = append(matched, rule)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority < matched[j].Priority
	})
	return &matched[0], nil
}
