package billing

import (
	"slices"
	"time"

	waybill "freightops/internal/waybill/domain"
)

// cbmDivisor is the volumetric divisor used by per-cbm rules to derive the
// dimensional weight competing with the actual weight.
const cbmDivisor = 5000

// ChargeLineItem is one computed charge for a shipment. Amount is the final
// clamped value for the rule; for percentage and per-shipment rules it is
// not Quantity*UnitPrice.
type ChargeLineItem struct {
	RuleID       string
	ChargeTypeID string
	Description  string
	Quantity     float64
	UnitPrice    float64
	Amount       float64
	Currency     string
}

// Applies reports whether the rule covers the shipment at the given time.
// A failed filter is not an error; the rule is simply skipped.
func (r BillingRule) Applies(shipment waybill.Shipment, now time.Time) bool {
	if r.EffectiveFrom.After(now) {
		return false
	}
	if r.ExpiresAt != nil && !r.ExpiresAt.After(now) {
		return false
	}
	if r.ChannelID != "" && r.ChannelID != shipment.ChannelID {
		return false
	}
	if r.Conditions.MinWeight != nil && shipment.Weight < *r.Conditions.MinWeight {
		return false
	}
	if r.Conditions.MaxWeight != nil && shipment.Weight > *r.Conditions.MaxWeight {
		return false
	}
	if len(r.Conditions.Countries) > 0 && !slices.Contains(r.Conditions.Countries, shipment.Country) {
		return false
	}
	return true
}

// Charges evaluates every applicable rule against the shipment and returns
// one line item per rule that produced a positive amount.
func Charges(shipment waybill.Shipment, rules []BillingRule, now time.Time) ([]ChargeLineItem, error) {
	items := make([]ChargeLineItem, 0, len(rules))
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		if !rule.Applies(shipment, now) {
			continue
		}
		item := rule.evaluate(shipment)
		if item.Amount <= 0 {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// evaluate computes the line item for an applicable, validated rule.
func (r BillingRule) evaluate(shipment waybill.Shipment) ChargeLineItem {
	item := ChargeLineItem{
		RuleID:       r.ID,
		ChargeTypeID: r.ChargeTypeID,
		Description:  r.Name,
		UnitPrice:    r.BaseRate,
		Currency:     r.Currency,
	}

	switch r.UnitType {
	case UnitPerKG:
		item.Quantity = shipment.Weight
		item.Amount = shipment.Weight * r.BaseRate
	case UnitPerCBM:
		quantity := shipment.Weight
		if volumetric := shipment.VolumetricWeight(cbmDivisor); volumetric > quantity {
			quantity = volumetric
		}
		item.Quantity = quantity
		item.Amount = quantity * r.BaseRate
	case UnitPerShipment:
		item.Quantity = 1
		item.Amount = r.BaseRate
	case UnitPercentage:
		item.Quantity = shipment.DeclaredValue
		item.Amount = shipment.DeclaredValue * r.BaseRate / 100
	case UnitTiered:
		item.Quantity = shipment.Weight
		item.UnitPrice = 0
		item.Amount = tieredAmount(r.Conditions.Tiers, shipment.Weight)
	}

	item.Amount = r.clamp(item.Amount)
	return item
}

// tieredAmount walks the tiers in order, charging each consumed slice of the
// weight at that tier's rate until the weight is exhausted.
func tieredAmount(tiers []Tier, weight float64) float64 {
	remaining := weight
	var amount float64
	for _, tier := range tiers {
		if remaining <= 0 {
			break
		}
		span := tier.MaxWeight - tier.MinWeight
		consumed := remaining
		if span < consumed {
			consumed = span
		}
		amount += consumed * tier.Rate
		remaining -= consumed
	}
	return amount
}

// clamp bounds the amount to [MinCharge, MaxCharge] and floors negative
// results to zero so a misconfigured rate never produces a credit.
func (r BillingRule) clamp(amount float64) float64 {
	if r.MinCharge != nil && amount < *r.MinCharge {
		amount = *r.MinCharge
	}
	if r.MaxCharge != nil && amount > *r.MaxCharge {
		amount = *r.MaxCharge
	}
	if amount < 0 {
		return 0
	}
	return amount
}
