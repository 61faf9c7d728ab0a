package postgres

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"mushroom-demand-lab/internal/domain"
)

// setupTestDB creates a PostgreSQL container for testing and applies migrations.
// Returns a cleanup function that must be called after tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	runMigrations(t, ctx, pool)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// runMigrations applies the SQL files the migrations package embeds. They
// are read from disk here because importing the migrations package from
// this test would be an import cycle.
func runMigrations(t *testing.T, ctx context.Context, pool *Pool) {
	t.Helper()

	migrationsDir := filepath.Join("..", "migrations", "postgres")
	entries, err := os.ReadDir(migrationsDir)
	require.NoError(t, err, "failed to read migrations directory")

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".sql" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(filepath.Join(migrationsDir, file))
		require.NoError(t, err, "failed to read migration file: %s", file)

		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "failed to execute migration: %s", file)
	}
}

// Fixture dates are UTC midnights so they survive the DATE column round trip.
func testDate(day int) time.Time {
	return time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC)
}

func testSalesRow(day int, store string, units int) *domain.SalesRow {
	return &domain.SalesRow{
		Date:     testDate(day),
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

		PanchangFastingFlag:     false,
		WeddingDensity30d:       0.25,
		FestivalFlag:            true,
		TempMaxC:                31.5,
		TempMinC:                22.0,
		HumidityAvg:             74.0,
		RainfallMm:              0,
		LogisticsDisruptionFlag: false,

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
		LogisticsDisruptionFlag:    false,
		IntradayBaselinePred:       100,
		IntradayActualSalesPartial: 92,
		Event:                      domain.EventNone,
	}
}
