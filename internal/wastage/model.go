// Package wastage converts unsold perishable surplus into spoilage driven
// by temperature and humidity.
package wastage

// Spoilage drivers. Heat and damp are independent additive effects on top
// of the base decay rate.
const (
	baseDecayRate = 0.10

	hotTempThresholdC = 30.0
	hotTempDecayBoost = 0.05

	humidThreshold  = 80.0
	humidDecayBoost = 0.05
)

// DecayRate returns the daily spoilage fraction for the given conditions.
func DecayRate(tempMaxC, humidity float64) float64 {
	rate := baseDecayRate
	if tempMaxC > hotTempThresholdC {
		rate += hotTempDecayBoost
	}
	if humidity > humidThreshold {
		rate += humidDecayBoost
	}
	return rate
}

// Spoilage returns the kilograms lost from unsold surplus.
func Spoilage(inventoryReceivedKg, salesKg, tempMaxC, humidity float64) float64 {
	surplus := inventoryReceivedKg - salesKg
	if surplus < 0 {
		surplus = 0
	}
	return surplus * DecayRate(tempMaxC, humidity)
}
