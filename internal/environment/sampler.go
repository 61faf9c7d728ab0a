// Package environment samples exogenous daily and hourly conditions.
// Conditions are sampled once per scope and fanned out read-only to the
// entity-level computations.
package environment

import (
	"math"
	"math/rand"
	"time"

	"mushroom-demand-lab/internal/config"
	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/simrand"
)

// Event probabilities and weather constants of the daily model.
const (
	fastingProb    = 0.15
	festivalProb   = 0.05
	disruptionProb = 0.02

	rainHumidityThreshold = 70.0
	rainProb              = 0.3

	meanTempC      = 25.0
	tempAmplitudeC = 10.0
	annualCycle    = 365.0

	// Festival days push wholesale volatility up by a fixed increment.
	festivalVolatilityBoost = 0.1
)

// Sampler draws daily-global and region-day condition snapshots.
type Sampler struct {
	cfg *config.Generation
}

// NewSampler creates a Sampler over the given configuration.
func NewSampler(cfg *config.Generation) *Sampler {
	return &Sampler{cfg: cfg}
}

// DailyGlobal samples the region-independent conditions for one day.
func (s *Sampler) DailyGlobal(rng *rand.Rand, date time.Time, dayOffset int) domain.DailyGlobalConditions {
	fasting := simrand.Bernoulli(rng, fastingProb)

	wedding := simrand.Uniform(rng, 0.0, 0.3)
	if s.cfg.WeddingPeakMonths[date.Month()] {
		wedding += simrand.Uniform(rng, 0.3, 0.6)
	}

	festival := simrand.Bernoulli(rng, festivalProb)
	disruption := simrand.Bernoulli(rng, disruptionProb)

	baseTemp := meanTempC + tempAmplitudeC*math.Sin(2*math.Pi*float64(dayOffset)/annualCycle)

	return domain.DailyGlobalConditions{
		Date:                date,
		DayOffset:           dayOffset,
		PanchangFasting:     fasting,
		WeddingDensity:      wedding,
		Festival:            festival,
		LogisticsDisruption: disruption,
		BaseTempC:           baseTemp,
	}
}

// RegionDay samples weather and the mandi price process for one
// (day, region) pair on top of the day's global conditions.
func (s *Sampler) RegionDay(rng *rand.Rand, global domain.DailyGlobalConditions, region string) domain.RegionDayConditions {
	tempMax := global.BaseTempC + simrand.Uniform(rng, -3, 5)
	tempMin := tempMax - simrand.Uniform(rng, 8, 15)
	humidity := simrand.Uniform(rng, 30, 90)

	rainfall := 0.0
	if humidity > rainHumidityThreshold && simrand.Bernoulli(rng, rainProb) {
		rainfall = simrand.Uniform(rng, 5, 100)
	}

	volatility := simrand.Uniform(rng, 0.9, 1.1)
	if global.Festival {
		volatility += festivalVolatilityBoost
	}
	mandiPrice := s.cfg.MandiBasePricePerKg * volatility

	// The one-day change is descriptive telemetry; it does not feed back
	// into the price level.
	mandiChange := simrand.Uniform(rng, -10, 10)

	return domain.RegionDayConditions{
		Region:             region,
		TempMaxC:           tempMax,
		TempMinC:           tempMin,
		HumidityAvg:        humidity,
		RainfallMm:         rainfall,
		MandiPricePerKg:    mandiPrice,
		MandiPriceChange1d: mandiChange,
	}
}
