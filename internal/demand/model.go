// Package demand implements the multiplicative demand model: base channel
// demand scaled by seasonality, weekday pattern, cultural events and price
// elasticity.
package demand

import (
	"math"
	"math/rand"
	"time"

	"mushroom-demand-lab/internal/config"
	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/simrand"
)

const (
	// Consumer demand drops to 70% on Panchang fasting days; Business
	// bulk orders are unaffected.
	fastingConsumerImpact = 0.7

	// Per-unit-size price component on top of the mandi markup.
	packSizePriceSlope = 10.0
)

// Inputs carries everything the model reads for one quote. All fields are
// read-only snapshots computed at coarser scopes.
type Inputs struct {
	Channel domain.Channel
	SKU     domain.SKU
	Global  domain.DailyGlobalConditions
	Region  domain.RegionDayConditions
}

// Quote is a demand estimate plus the offered price behind it.
type Quote struct {
	DemandUnits       int
	PriceOfferedPerKg float64
	OptimalPricePerKg float64
}

// Factors are the multiplicative components of one demand estimate.
type Factors struct {
	Base    float64
	Season  float64
	Weekday float64
	Fasting float64
	Wedding float64
	Price   float64
	Noise   float64
}

// Compose multiplies the factors and truncates to a unit count. Truncation
// is a floor, not round-to-nearest; zero is a valid output.
func Compose(f Factors) int {
	v := f.Base * f.Season * f.Weekday * f.Fasting * f.Wedding * f.Price * f.Noise
	if v < 0 {
		return 0
	}
	return int(math.Floor(v))
}

// PriceFactor returns (offered/optimal)^elasticity. With negative
// elasticity, offering above the optimal price suppresses demand.
func PriceFactor(offered, optimal, elasticity float64) float64 {
	return math.Pow(offered/optimal, elasticity)
}

// FastingImpact returns the demand multiplier for a fasting day.
func FastingImpact(channel domain.Channel, fasting bool) float64 {
	if fasting && channel == domain.ChannelConsumer {
		return fastingConsumerImpact
	}
	return 1.0
}

// WeddingImpact returns the demand multiplier for event catering. Only the
// Business channel sees wedding-driven bulk orders.
func WeddingImpact(channel domain.Channel, density float64) float64 {
	if channel == domain.ChannelBusiness {
		return 1.0 + density
	}
	return 1.0
}

// Model computes demand quotes from injected channel parameters.
type Model struct {
	cfg *config.Generation
}

// NewModel creates a Model over the given configuration.
func NewModel(cfg *config.Generation) *Model {
	return &Model{cfg: cfg}
}

// OptimalPrice returns the reference shelf price: mandi price times channel
// markup plus a pack-size component.
func (m *Model) OptimalPrice(channel domain.Channel, sku domain.SKU, mandiPrice float64) float64 {
	return mandiPrice*m.cfg.Markup[channel] + sku.UnitSizeKg*packSizePriceSlope
}

// SeasonFactor looks up the month's demand multiplier, defaulting to 1.0.
func (m *Model) SeasonFactor(month time.Month) float64 {
	if f, ok := m.cfg.SeasonalityMonths[month]; ok {
		return f
	}
	return 1.0
}

// WeekdayFactor looks up the channel's Mon..Sun multiplier.
func (m *Model) WeekdayFactor(channel domain.Channel, day time.Weekday) float64 {
	// time.Weekday counts Sunday=0; the table is Monday-first.
	idx := (int(day) + 6) % 7
	return m.cfg.WeekdayFactors[channel][idx]
}

// Quote samples an offered price and returns the demand estimate for one
// (channel, SKU) under the given conditions.
func (m *Model) Quote(rng *rand.Rand, in Inputs) Quote {
	optimal := m.OptimalPrice(in.Channel, in.SKU, in.Region.MandiPricePerKg)
	offered := optimal * simrand.Uniform(rng, 0.95, 1.05)

	f := Factors{
		Base:    m.cfg.BaseDemand[in.Channel],
		Season:  m.SeasonFactor(in.Global.Date.Month()),
		Weekday: m.WeekdayFactor(in.Channel, in.Global.Date.Weekday()),
		Fasting: FastingImpact(in.Channel, in.Global.PanchangFasting),
		Wedding: WeddingImpact(in.Channel, in.Global.WeddingDensity),
		Price:   PriceFactor(offered, optimal, m.cfg.Elasticity[in.Channel]),
		Noise:   simrand.Uniform(rng, 0.8, 1.2),
	}

	return Quote{
		DemandUnits:       Compose(f),
		PriceOfferedPerKg: offered,
		OptimalPricePerKg: optimal,
	}
}
