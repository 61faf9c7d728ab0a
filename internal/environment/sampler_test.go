package environment

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mushroom-demand-lab/internal/config"
)

func testSampler() *Sampler {
	cfg := config.DefaultGeneration(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	return NewSampler(cfg)
}

func TestDailyGlobal_WeddingDensityBounds(t *testing.T) {
	s := testSampler()
	rng := rand.New(rand.NewSource(1))

	offPeak := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	peak := time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		g := s.DailyGlobal(rng, offPeak, i)
		require.GreaterOrEqual(t, g.WeddingDensity, 0.0)
		require.Less(t, g.WeddingDensity, 0.3)
	}
	for i := 0; i < 500; i++ {
		g := s.DailyGlobal(rng, peak, i)
		require.GreaterOrEqual(t, g.WeddingDensity, 0.3)
		require.Less(t, g.WeddingDensity, 0.9)
	}
}

func TestDailyGlobal_BaseTempFollowsAnnualCycle(t *testing.T) {
	s := testSampler()
	date := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	// sin peaks a quarter cycle in, troughs three quarters in.
	warm := s.DailyGlobal(rand.New(rand.NewSource(1)), date, 91)
	cool := s.DailyGlobal(rand.New(rand.NewSource(1)), date, 273)

	require.Greater(t, warm.BaseTempC, 30.0)
	require.Less(t, cool.BaseTempC, 20.0)
	for _, g := range []float64{warm.BaseTempC, cool.BaseTempC} {
		require.GreaterOrEqual(t, g, 15.0)
		require.LessOrEqual(t, g, 35.0)
	}
}

func TestDailyGlobal_EventRatesPlausible(t *testing.T) {
	s := testSampler()
	rng := rand.New(rand.NewSource(7))
	date := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	var fasting, festival, disruption int
	const n = 5000
	for i := 0; i < n; i++ {
		g := s.DailyGlobal(rng, date, i)
		if g.PanchangFasting {
			fasting++
		}
		if g.Festival {
			festival++
		}
		if g.LogisticsDisruption {
			disruption++
		}
	}

	require.InDelta(t, 0.15, float64(fasting)/n, 0.03)
	require.InDelta(t, 0.05, float64(festival)/n, 0.02)
	require.InDelta(t, 0.02, float64(disruption)/n, 0.01)
}

func TestRegionDay_Bounds(t *testing.T) {
	s := testSampler()
	rng := rand.New(rand.NewSource(3))
	date := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		g := s.DailyGlobal(rng, date, i)
		rd := s.RegionDay(rng, g, "Pune")

		require.GreaterOrEqual(t, rd.TempMaxC, g.BaseTempC-3)
		require.LessOrEqual(t, rd.TempMaxC, g.BaseTempC+5)
		require.GreaterOrEqual(t, rd.TempMaxC-rd.TempMinC, 8.0)
		require.LessOrEqual(t, rd.TempMaxC-rd.TempMinC, 15.0)
		require.GreaterOrEqual(t, rd.HumidityAvg, 30.0)
		require.LessOrEqual(t, rd.HumidityAvg, 90.0)
		require.GreaterOrEqual(t, rd.RainfallMm, 0.0)
		require.LessOrEqual(t, rd.RainfallMm, 100.0)
		require.GreaterOrEqual(t, rd.MandiPriceChange1d, -10.0)
		require.LessOrEqual(t, rd.MandiPriceChange1d, 10.0)
	}
}

func TestRegionDay_RainRequiresHighHumidity(t *testing.T) {
	s := testSampler()
	rng := rand.New(rand.NewSource(11))
	date := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	var dryDays, wetCapable int
	for i := 0; i < 2000; i++ {
		g := s.DailyGlobal(rng, date, i)
		rd := s.RegionDay(rng, g, "Nashik")
		if rd.HumidityAvg <= 70 {
			dryDays++
			require.Zero(t, rd.RainfallMm)
		} else if rd.RainfallMm > 0 {
			wetCapable++
			require.GreaterOrEqual(t, rd.RainfallMm, 5.0)
		}
	}
	require.NotZero(t, dryDays)
	require.NotZero(t, wetCapable)
}

func TestRegionDay_MandiPriceBand(t *testing.T) {
	s := testSampler()
	rng := rand.New(rand.NewSource(17))
	date := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		g := s.DailyGlobal(rng, date, i)
		rd := s.RegionDay(rng, g, "Mumbai")

		lo, hi := 120*0.9, 120*1.1
		if g.Festival {
			lo, hi = 120*1.0, 120*1.2
		}
		require.GreaterOrEqual(t, rd.MandiPricePerKg, lo)
		require.LessOrEqual(t, rd.MandiPricePerKg, hi)
	}
}

func TestSampler_Deterministic(t *testing.T) {
	s := testSampler()
	date := time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)

	a := s.DailyGlobal(rand.New(rand.NewSource(42)), date, 5)
	b := s.DailyGlobal(rand.New(rand.NewSource(42)), date, 5)
	require.Equal(t, a, b)

	rda := s.RegionDay(rand.New(rand.NewSource(43)), a, "Pune")
	rdb := s.RegionDay(rand.New(rand.NewSource(43)), b, "Pune")
	require.Equal(t, rda, rdb)
}
