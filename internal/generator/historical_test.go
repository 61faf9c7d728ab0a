package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mushroom-demand-lab/internal/config"
)

func smallConfig() *config.Generation {
	cfg := config.DefaultGeneration(time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC))
	cfg.Days = 4
	cfg.IntradayDays = 2
	cfg.Regions = cfg.Regions[:3]
	cfg.SKUs = cfg.SKUs[:2]
	return cfg
}

func TestHistorical_RowCount(t *testing.T) {
	cfg := smallConfig()
	g := NewHistorical(HistoricalOptions{Config: cfg})

	var buf SalesBuffer
	n, err := g.Run(context.Background(), &buf)
	require.NoError(t, err)

	want := cfg.Days * len(cfg.Regions) * len(cfg.SKUs) * len(cfg.Channels) * cfg.StoresPerRegionChannel
	require.Equal(t, want, n)
	require.Len(t, buf.Rows, want)
}

func TestHistorical_RowInvariants(t *testing.T) {
	cfg := smallConfig()
	cfg.Days = 30
	g := NewHistorical(HistoricalOptions{Config: cfg})

	var buf SalesBuffer
	_, err := g.Run(context.Background(), &buf)
	require.NoError(t, err)

	unitSizes := make(map[string]float64, len(cfg.SKUs))
	for _, sku := range cfg.SKUs {
		unitSizes[sku.ID] = sku.UnitSizeKg
	}

	for _, row := range buf.Rows {
		require.GreaterOrEqual(t, row.LabelDailyDemand, 0)
		require.GreaterOrEqual(t, row.SalesUnits, 0)
		require.LessOrEqual(t, row.SalesUnits, row.LabelDailyDemand)

		require.Equal(t, float64(row.SalesUnits)*unitSizes[row.SKUID], row.SalesKg)
		require.LessOrEqual(t, row.SalesKg, row.InventoryReceivedKg+1e-9)

		surplus := row.InventoryReceivedKg - row.SalesKg
		require.GreaterOrEqual(t, row.WastageKg, 0.0)
		require.LessOrEqual(t, row.WastageKg, surplus+1e-9)

		require.Greater(t, row.PriceOfferedPerKg, 0.0)
		require.Greater(t, row.OptimalPricePerKg, 0.0)
	}
}

func TestHistorical_IdentifiersAndDates(t *testing.T) {
	cfg := smallConfig()
	g := NewHistorical(HistoricalOptions{Config: cfg})

	var buf SalesBuffer
	_, err := g.Run(context.Background(), &buf)
	require.NoError(t, err)

	start := cfg.StartDate()
	first := buf.Rows[0]
	require.Equal(t, start, first.Date)
	require.Equal(t, "Pune", first.RegionID)
	require.Equal(t, "MANDI_PUNE", first.MandiID)
	require.Equal(t, "Pune_B2B_0", first.StoreID)
	require.Equal(t, "MUSH-200g", first.SKUID)

	last := buf.Rows[len(buf.Rows)-1]
	require.Equal(t, start.AddDate(0, 0, cfg.Days-1), last.Date)
}

func TestHistorical_Deterministic(t *testing.T) {
	cfg := smallConfig()

	var a, b SalesBuffer
	_, err := NewHistorical(HistoricalOptions{Config: cfg}).Run(context.Background(), &a)
	require.NoError(t, err)
	_, err = NewHistorical(HistoricalOptions{Config: cfg}).Run(context.Background(), &b)
	require.NoError(t, err)

	require.Equal(t, a.Rows, b.Rows)
}

func TestHistorical_SeedChangesOutput(t *testing.T) {
	cfgA := smallConfig()
	cfgB := smallConfig()
	cfgB.Seed = 2

	var a, b SalesBuffer
	_, err := NewHistorical(HistoricalOptions{Config: cfgA}).Run(context.Background(), &a)
	require.NoError(t, err)
	_, err = NewHistorical(HistoricalOptions{Config: cfgB}).Run(context.Background(), &b)
	require.NoError(t, err)

	require.NotEqual(t, a.Rows, b.Rows)
}

func TestHistorical_Cancellation(t *testing.T) {
	cfg := smallConfig()
	g := NewHistorical(HistoricalOptions{Config: cfg})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf SalesBuffer
	n, err := g.Run(ctx, &buf)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)
}
