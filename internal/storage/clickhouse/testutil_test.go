package clickhouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"mushroom-demand-lab/internal/domain"
)

// setupTestDB creates a ClickHouse container, applies the table DDL and
// returns a connection. Returns a cleanup function that must be called
// when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60 * time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	createTables(t, conn)

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

// createTables applies the same DDL the embedded migrations carry. Inlined
// here to avoid an import cycle with the migrations package.
func createTables(t *testing.T, conn *Conn) {
	t.Helper()
	ctx := context.Background()

	err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS historical_sales (
			run_id                     String,
			row_seq                    UInt32,
			date                       Date,
			region_id                  String,
			mandi_id                   String,
			store_id                   String,
			sku_id                     String,
			channel                    String,
			packaging                  String,
			sales_units                Int32,
			sales_kg                   Float64,
			inventory_received_kg      Float64,
			wastage_kg                 Float64,
			price_offered_per_kg       Float64,
			optimal_price_per_kg       Float64,
			b2b_b2c_ratio              Float64,
			mandi_price_per_kg         Float64,
			mandi_price_change_1d      Float64,
			panchang_fasting_flag      Bool,
			wedding_density_30d        Float64,
			festival_flag              Bool,
			temp_max_c                 Float64,
			temp_min_c                 Float64,
			humidity_avg               Float64,
			rainfall_mm                Float64,
			logistics_disruption_flag  Bool,
			volatility_score_14d       Float64,
			packaging_pref_score       Float64,
			lag_1_sales                Int32,
			lag_7_sales_mean           Float64,
			label_daily_demand         Int32
		) ENGINE = MergeTree()
		ORDER BY (run_id, row_seq)
	`)
	require.NoError(t, err)

	err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS intraday_telemetry (
			run_id                        String,
			row_seq                       UInt32,
			ts                            DateTime64(3),
			region_id                     String,
			mandi_price_per_kg            Float64,
			pos_transactions_last_hour    Int32,
			vehicle_delay_minutes         Int32,
			weather_now_temp              Float64,
			weather_now_humidity          Float64,
			logistics_disruption_flag     Bool,
			intraday_baseline_pred        Float64,
			intraday_actual_sales_partial Int32,
			intraday_event                String
		) ENGINE = MergeTree()
		ORDER BY (run_id, row_seq)
	`)
	require.NoError(t, err)
}

func testSalesRow(day int, store string, units int) *domain.SalesRow {
	return &domain.SalesRow{
		Date:     time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC),
		RegionID: "Pune",
		MandiID:  "MANDI_PUNE",
		StoreID:  store,
		SKUID:    "MUSH-1kg",
		Channel:  domain.ChannelBusiness,

		Packaging: "1kg",

		SalesUnits:          units,
		SalesKg:             float64(units),
		InventoryReceivedKg: float64(units) * 1.1,
		WastageKg:           float64(units) * 0.01,

		PriceOfferedPerKg: 151.5,
		OptimalPricePerKg: 154,
		B2BB2CRatio:       0.8,

		MandiPricePerKg:    122.4,
		MandiPriceChange1d: -3.2,

		WeddingDensity30d: 0.25,
		FestivalFlag:      true,
		TempMaxC:          31.5,
		TempMinC:          22.0,
		HumidityAvg:       74.0,

		VolatilityScore14d: 0.45,
		PackagingPrefScore: 0.7,
		Lag1Sales:          units - 3,
		Lag7SalesMean:      float64(units) * 0.95,

		LabelDailyDemand: units + 10,
	}
}

func testTelemetryRow(hour int, region string) *domain.TelemetryRow {
	return &domain.TelemetryRow{
		Timestamp:                  time.Date(2025, time.June, 8, hour, 0, 0, 0, time.UTC),
		RegionID:                   region,
		MandiPricePerKg:            119.8,
		POSTransactionsLastHour:    44,
		VehicleDelayMinutes:        15,
		WeatherNowTempC:            30.1,
		WeatherNowHumidity:         61.3,
		IntradayBaselinePred:       100,
		IntradayActualSalesPartial: 92,
		Event:                      domain.EventNone,
	}
}
