package billing

import (
	"errors"
	"math"
	"testing"
	"time"

	waybill "freightops/internal/waybill/domain"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func testShipment() waybill.Shipment {
	return waybill.Shipment{
		ID:            "SHP-1",
		Weight:        20,
		Length:        30,
		Width:         20,
		Height:        10,
		DeclaredValue: 1000,
		Country:       "US",
		ChannelID:     "CH-1",
		Currency:      "CNY",
	}
}

func baseRule(unit UnitType, rate float64) BillingRule {
	return BillingRule{
		ID:            "rule-1",
		Name:          "Test charge",
		ChargeTypeID:  "CT-1",
		UnitType:      unit,
		BaseRate:      rate,
		EffectiveFrom: testNow.AddDate(0, -1, 0),
		Currency:      "CNY",
	}
}

func chargeOne(t *testing.T, shipment waybill.Shipment, rule BillingRule) ChargeLineItem {
	t.Helper()
	items, err := Charges(shipment, []BillingRule{rule}, testNow)
	if err != nil {
		t.Fatalf("Charges returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	return items[0]
}

func TestChargesPerKG(t *testing.T) {
	item := chargeOne(t, testShipment(), baseRule(UnitPerKG, 3))
	if math.Abs(item.Amount-60) > 1e-9 {
		t.Errorf("amount = %v, want 60", item.Amount)
	}
	if item.Quantity != 20 {
		t.Errorf("quantity = %v, want 20", item.Quantity)
	}
}

func TestChargesPerCBMUsesVolumetricWeight(t *testing.T) {
	shipment := testShipment()
	shipment.Weight = 0.5
	shipment.Length, shipment.Width, shipment.Height = 50, 40, 30 // 60000/5000 = 12

	item := chargeOne(t, shipment, baseRule(UnitPerCBM, 2))
	if math.Abs(item.Quantity-12) > 1e-9 {
		t.Errorf("quantity = %v, want volumetric 12", item.Quantity)
	}
	if math.Abs(item.Amount-24) > 1e-9 {
		t.Errorf("amount = %v, want 24", item.Amount)
	}
}

func TestChargesPercentageWithMinCharge(t *testing.T) {
	rule := baseRule(UnitPercentage, 2)
	rule.MinCharge = floatPtr(10)

	item := chargeOne(t, testShipment(), rule)
	if math.Abs(item.Amount-20) > 1e-9 {
		t.Errorf("amount = %v, want 20", item.Amount)
	}

	low := testShipment()
	low.DeclaredValue = 100 // 2% = 2, below the floor
	item = chargeOne(t, low, rule)
	if math.Abs(item.Amount-10) > 1e-9 {
		t.Errorf("clamped amount = %v, want 10", item.Amount)
	}
}

func TestChargesPerShipmentClamping(t *testing.T) {
	rule := baseRule(UnitPerShipment, 50)
	rule.MinCharge = floatPtr(100)
	item := chargeOne(t, testShipment(), rule)
	if item.Amount != 100 {
		t.Errorf("min-clamped amount = %v, want 100", item.Amount)
	}

	rule = baseRule(UnitPerShipment, 50)
	rule.MaxCharge = floatPtr(30)
	item = chargeOne(t, testShipment(), rule)
	if item.Amount != 30 {
		t.Errorf("max-clamped amount = %v, want 30", item.Amount)
	}
}

func TestChargesTieredAdditivity(t *testing.T) {
	rule := baseRule(UnitTiered, 0)
	rule.Conditions.Tiers = []Tier{
		{MinWeight: 0, MaxWeight: 5, Rate: 10},
		{MinWeight: 5, MaxWeight: 10, Rate: 8},
	}
	shipment := testShipment()
	shipment.Weight = 8

	item := chargeOne(t, shipment, rule)
	if math.Abs(item.Amount-74) > 1e-9 {
		t.Errorf("amount = %v, want 5*10 + 3*8 = 74", item.Amount)
	}
}

func TestChargesTieredWithoutTiersFails(t *testing.T) {
	rule := baseRule(UnitTiered, 0)
	_, err := Charges(testShipment(), []BillingRule{rule}, testNow)
	var invalid *InvalidRuleError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *InvalidRuleError", err)
	}
}

func TestChargesApplicabilityFilters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BillingRule)
	}{
		{"not yet effective", func(r *BillingRule) { r.EffectiveFrom = testNow.AddDate(0, 0, 1) }},
		{"expired", func(r *BillingRule) { r.ExpiresAt = timePtr(testNow.AddDate(0, 0, -1)) }},
		{"other channel", func(r *BillingRule) { r.ChannelID = "CH-OTHER" }},
		{"below min weight", func(r *BillingRule) { r.Conditions.MinWeight = floatPtr(50) }},
		{"above max weight", func(r *BillingRule) { r.Conditions.MaxWeight = floatPtr(10) }},
		{"country excluded", func(r *BillingRule) { r.Conditions.Countries = []string{"DE", "FR"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := baseRule(UnitPerKG, 3)
			tc.mutate(&rule)
			items, err := Charges(testShipment(), []BillingRule{rule}, testNow)
			if err != nil {
				t.Fatalf("Charges returned error: %v", err)
			}
			if len(items) != 0 {
				t.Errorf("items = %d, want rule filtered out", len(items))
			}
		})
	}
}

func TestChargesExpiryBoundaryIsExclusive(t *testing.T) {
	rule := baseRule(UnitPerKG, 3)
	rule.ExpiresAt = timePtr(testNow)
	items, err := Charges(testShipment(), []BillingRule{rule}, testNow)
	if err != nil {
		t.Fatalf("Charges returned error: %v", err)
	}
	if len(items) != 0 {
		t.Error("rule expiring exactly now should not apply")
	}
}

func TestChargesDropsNonPositiveAmounts(t *testing.T) {
	rule := baseRule(UnitPerKG, -2)
	items, err := Charges(testShipment(), []BillingRule{rule}, testNow)
	if err != nil {
		t.Fatalf("Charges returned error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want negative charge dropped", len(items))
	}
}

func TestChargesCountryMatch(t *testing.T) {
	rule := baseRule(UnitPerShipment, 25)
	rule.Conditions.Countries = []string{"US", "CA"}
	item := chargeOne(t, testShipment(), rule)
	if item.Amount != 25 {
		t.Errorf("amount = %v, want 25", item.Amount)
	}
}
