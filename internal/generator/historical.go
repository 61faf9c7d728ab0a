// Package generator iterates the simulation cross-products and emits rows.
// Generation is sequential in day → region → SKU → channel → store order;
// every (day, region) unit draws from its own derived seed, so units stay
// independent and the full dataset is reproducible from one seed.
package generator

import (
	"context"
	"fmt"
	"math/rand"

	"mushroom-demand-lab/internal/config"
	"mushroom-demand-lab/internal/demand"
	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/environment"
	"mushroom-demand-lab/internal/fulfillment"
	"mushroom-demand-lab/internal/observability"
	"mushroom-demand-lab/internal/runid"
	"mushroom-demand-lab/internal/wastage"
)

// Historical generates the daily historical sales table.
type Historical struct {
	cfg     *config.Generation
	env     *environment.Sampler
	model   *demand.Model
	metrics *observability.Metrics
}

// HistoricalOptions configures a Historical generator. Metrics may be nil.
type HistoricalOptions struct {
	Config  *config.Generation
	Metrics *observability.Metrics
}

// NewHistorical creates a Historical generator. The configuration must have
// been validated.
func NewHistorical(opts HistoricalOptions) *Historical {
	return &Historical{
		cfg:     opts.Config,
		env:     environment.NewSampler(opts.Config),
		model:   demand.NewModel(opts.Config),
		metrics: opts.Metrics,
	}
}

// Run emits one row per (day, region, SKU, channel, store) combination and
// returns the number of rows emitted. Cancellation is checked once per day.
func (g *Historical) Run(ctx context.Context, sink SalesSink) (int, error) {
	start := g.cfg.StartDate()
	emitted := 0

	for dayOffset := 0; dayOffset < g.cfg.Days; dayOffset++ {
		if err := ctx.Err(); err != nil {
			return emitted, err
		}

		date := start.AddDate(0, 0, dayOffset)
		dayRng := rand.New(rand.NewSource(runid.ScopeSeed(g.cfg.Seed, "day", dayOffset)))
		global := g.env.DailyGlobal(dayRng, date, dayOffset)

		for regionIdx, region := range g.cfg.Regions {
			rng := rand.New(rand.NewSource(runid.ScopeSeed(g.cfg.Seed, "region", dayOffset, regionIdx)))
			regionDay := g.env.RegionDay(rng, global, region)

			for _, sku := range g.cfg.SKUs {
				for _, channel := range g.cfg.Channels {
					for storeIdx := 0; storeIdx < g.cfg.StoresPerRegionChannel; storeIdx++ {
						quote := g.model.Quote(rng, demand.Inputs{
							Channel: channel,
							SKU:     sku,
							Global:  global,
							Region:  regionDay,
						})

						fulfilled := fulfillment.Reconcile(rng, quote.DemandUnits, sku.UnitSizeKg, global.LogisticsDisruption)

						wastageKg := wastage.Spoilage(
							fulfilled.InventoryReceivedKg, fulfilled.SalesKg,
							regionDay.TempMaxC, regionDay.HumidityAvg,
						)

						row := assembleSalesRow(
							rng, global, regionDay, sku, channel,
							domain.StoreID(region, channel, storeIdx),
							quote, fulfilled, wastageKg,
						)

						if err := sink.Append(row); err != nil {
							return emitted, fmt.Errorf("append sales row: %w", err)
						}
						emitted++
						if g.metrics != nil {
							g.metrics.RowsGenerated.WithLabelValues(observability.TableHistorical).Inc()
						}
					}
				}
			}
		}
	}

	return emitted, nil
}
