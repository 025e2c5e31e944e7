package waybill

// Shipment carries the physical and declared attributes a single waybill
// exposes to the rating and billing engines. Dimensions are centimeters,
// weight is kilograms. The engines never modify a shipment.
type Shipment struct {
	ID            string
	Weight        float64
	Length        float64
	Width         float64
	Height        float64
	DeclaredValue float64
	Country       string
	ChannelID     string
	Currency      string
}

// Volume returns the shipment volume in cubic meters.
func (s Shipment) Volume() float64 {
	return s.Length * s.Width * s.Height / 1_000_000
}

// VolumetricWeight returns the dimensional weight for a divisor, or 0 when
// the divisor is not positive.
func (s Shipment) VolumetricWeight(divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	return s.Length * s.Width * s.Height / divisor
}
