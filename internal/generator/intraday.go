package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"mushroom-demand-lab/internal/config"
	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/observability"
	"mushroom-demand-lab/internal/runid"
	"mushroom-demand-lab/internal/simrand"
)

// Intraday telemetry constants.
const (
	heavyRainProb  = 0.01
	strikeProb     = 0.005
	minorDelayProb = 0.05

	// Daytime hours for POS activity and temperature offset.
	daytimeStartHour = 8
	daytimeEndHour   = 20

	// A delay past this many minutes counts as a logistics disruption.
	disruptionDelayMinutes = 60
)

// Intraday generates the 7-day hourly telemetry table. It is a reduced
// analog of the historical generator: one aggregate state per
// (hour, region), no fulfillment or wastage modeling.
type Intraday struct {
	cfg     *config.Generation
	metrics *observability.Metrics
}

// IntradayOptions configures an Intraday generator. Metrics may be nil.
type IntradayOptions struct {
	Config  *config.Generation
	Metrics *observability.Metrics
}

// NewIntraday creates an Intraday generator. The configuration must have
// been validated.
func NewIntraday(opts IntradayOptions) *Intraday {
	return &Intraday{cfg: opts.Config, metrics: opts.Metrics}
}

// Run emits one row per (hour, region) and returns the number of rows
// emitted. Cancellation is checked once per hour.
func (g *Intraday) Run(ctx context.Context, sink TelemetrySink) (int, error) {
	start := g.cfg.IntradayStart()
	hours := g.cfg.IntradayDays * 24
	emitted := 0

	for hourOffset := 0; hourOffset < hours; hourOffset++ {
		if err := ctx.Err(); err != nil {
			return emitted, err
		}

		ts := start.Add(time.Duration(hourOffset) * time.Hour)
		daytime := ts.Hour() >= daytimeStartHour && ts.Hour() <= daytimeEndHour

		for regionIdx, region := range g.cfg.Regions {
			rng := rand.New(rand.NewSource(runid.ScopeSeed(g.cfg.Seed, "telemetry", hourOffset, regionIdx)))

			row := g.sampleRow(rng, ts, region, daytime)
			if err := sink.Append(row); err != nil {
				return emitted, fmt.Errorf("append telemetry row: %w", err)
			}
			emitted++
			if g.metrics != nil {
				g.metrics.RowsGenerated.WithLabelValues(observability.TableTelemetry).Inc()
			}
		}
	}

	return emitted, nil
}

// sampleRow draws the full condition set for one (hour, region).
func (g *Intraday) sampleRow(rng *rand.Rand, ts time.Time, region string, daytime bool) *domain.TelemetryRow {
	mandiPrice := g.cfg.MandiBasePricePerKg + simrand.Uniform(rng, -5, 5)

	tempOffset := -5.0
	if daytime {
		tempOffset = 5.0
	}
	temp := 25 + tempOffset + simrand.Uniform(rng, -2, 2)
	humidity := 60 + simrand.Uniform(rng, -10, 10)

	// Rare events are mutually exclusive; the strike draw is made second
	// and overrides heavy rain when both would fire.
	event := domain.EventNone
	if simrand.Bernoulli(rng, heavyRainProb) {
		event = domain.EventHeavyRain
	}
	if simrand.Bernoulli(rng, strikeProb) {
		event = domain.EventStrike
	}

	var posTx int
	if daytime {
		posTx = int(simrand.Normal(rng, 50, 15))
	} else {
		posTx = int(simrand.Normal(rng, 5, 2))
	}
	if event == domain.EventHeavyRain {
		posTx = int(float64(posTx) * 0.5)
	}

	// Strikes cause long delays. A minor delay is drawn independently of
	// the strike outcome but only applies when no strike delay was set.
	delay := 0
	if event == domain.EventStrike {
		delay = simrand.IntBetween(rng, 60, 300)
	}
	if simrand.Bernoulli(rng, minorDelayProb) && delay == 0 {
		delay = simrand.IntBetween(rng, 10, 45)
	}

	baselineHourly := g.cfg.IntradayBaselineDaily * g.cfg.HourlyProfile[ts.Hour()]
	actual := int(baselineHourly * simrand.Uniform(rng, 0.8, 1.2))

	return &domain.TelemetryRow{
		Timestamp:                  ts,
		RegionID:                   region,
		MandiPricePerKg:            mandiPrice,
		POSTransactionsLastHour:    posTx,
		VehicleDelayMinutes:        delay,
		WeatherNowTempC:            temp,
		WeatherNowHumidity:         humidity,
		LogisticsDisruptionFlag:    delay > disruptionDelayMinutes,
		IntradayBaselinePred:       baselineHourly,
		IntradayActualSalesPartial: actual,
		Event:                      event,
	}
}
