package rating

// Unit is the billing basis of a rate rule or a channel flat charge.
type Unit string

const (
	UnitKG  Unit = "KG"
	UnitCBM Unit = "CBM"
)

// IsValid reports whether the unit is a known billing basis.
func (u Unit) IsValid() bool { return u == UnitKG || u == UnitCBM }

// RateRule is one weight band in a channel's rate table. The band is
// inclusive on both ends. Lower Priority values win when bands overlap.
type RateRule struct {
	ID         string   `yaml:"id"`
	MinWeight  float64  `yaml:"min_weight"`
	MaxWeight  float64  `yaml:"max_weight"`
	WeightType Unit     `yaml:"weight_type"`
	Divisor    *float64 `yaml:"divisor"` // volumetric divisor; nil disables dimensional weight
	BaseRate   float64  `yaml:"base_rate"`
	TaxRate    float64  `yaml:"tax_rate"` // percent applied to the rate base
	ExtraFee   float64  `yaml:"extra_fee"`
	OtherFee   float64  `yaml:"other_fee"`
	Priority   int      `yaml:"priority"`
}

// Channel is a shipping product with its own rate table and optional flat
// charge settings.
type Channel struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Country     string     `yaml:"country"`
	Warehouse   string     `yaml:"warehouse"`
	Origin      string     `yaml:"origin"`
	ChargePrice float64    `yaml:"charge_price"` // flat freight per unit; 0 disables the component
	ChargeUnit  Unit       `yaml:"charge_unit"`
	Currency    string     `yaml:"currency"`
	Rules       []RateRule `yaml:"rules"`
}

// CostEstimate is the rated cost of moving one shipment through one channel.
type CostEstimate struct {
	ChannelID        string
	ChannelName      string
	RuleID           string // empty when only the flat charge applied
	ChargeableWeight float64
	Volume           float64
	FreightCost      float64
	RateBase         float64
	Tax              float64
	ExtraFee         float64
	OtherFee         float64
	Total            float64
	Currency         string
}
