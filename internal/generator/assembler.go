package generator

import (
	"math/rand"

	"mushroom-demand-lab/internal/demand"
	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/fulfillment"
	"mushroom-demand-lab/internal/simrand"
)

// Channel share placeholders carried on every row.
const (
	businessShare = 0.8
	consumerShare = 0.2
)

// assembleSalesRow packages the computed fields of one entity combination
// into an output row, plus mock auxiliary features.
//
// The volatility score and the two lag features are independently sampled
// around sales_units rather than looked up from prior rows. That is a known
// approximation inherited from the reference tables: the columns exist as
// placeholders for future model inputs, not as true history.
func assembleSalesRow(
	rng *rand.Rand,
	global domain.DailyGlobalConditions,
	region domain.RegionDayConditions,
	sku domain.SKU,
	channel domain.Channel,
	storeID string,
	quote demand.Quote,
	fulfilled fulfillment.Result,
	wastageKg float64,
) *domain.SalesRow {
	ratio := consumerShare
	if channel == domain.ChannelBusiness {
		ratio = businessShare
	}

	return &domain.SalesRow{
		Date:     global.Date,
		RegionID: region.Region,
		MandiID:  domain.MandiID(region.Region),
		StoreID:  storeID,
		SKUID:    sku.ID,
		Channel:  channel,

		Packaging: sku.PackagingLabel(),

		SalesUnits:          fulfilled.SalesUnits,
		SalesKg:             fulfilled.SalesKg,
		InventoryReceivedKg: fulfilled.InventoryReceivedKg,
		WastageKg:           wastageKg,

		PriceOfferedPerKg: quote.PriceOfferedPerKg,
		OptimalPricePerKg: quote.OptimalPricePerKg,
		B2BB2CRatio:       ratio,

		MandiPricePerKg:    region.MandiPricePerKg,
		MandiPriceChange1d: region.MandiPriceChange1d,

		PanchangFastingFlag:     global.PanchangFasting,
		WeddingDensity30d:       global.WeddingDensity,
		FestivalFlag:            global.Festival,
		TempMaxC:                region.TempMaxC,
		TempMinC:                region.TempMinC,
		HumidityAvg:             region.HumidityAvg,
		RainfallMm:              region.RainfallMm,
		LogisticsDisruptionFlag: global.LogisticsDisruption,

		VolatilityScore14d: simrand.Uniform(rng, 0, 1),
		PackagingPrefScore: simrand.Uniform(rng, 0.3, 0.9),
		Lag1Sales:          int(float64(fulfilled.SalesUnits) * simrand.Uniform(rng, 0.9, 1.1)),
		Lag7SalesMean:      float64(fulfilled.SalesUnits) * simrand.Uniform(rng, 0.8, 1.2),

		LabelDailyDemand: quote.DemandUnits,
	}
}
