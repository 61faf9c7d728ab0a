package domain

import "time"

// DailyGlobalConditions holds the per-day, region-independent exogenous state.
// Sampled once per day and read-only for every downstream computation.
type DailyGlobalConditions struct {
	Date      time.Time
	DayOffset int // days since the start of the horizon

	PanchangFasting     bool
	WeddingDensity      float64 // [0, 0.9], elevated in peak wedding months
	Festival            bool
	LogisticsDisruption bool

	// BaseTempC is the seasonal sinusoid temperature before regional noise.
	BaseTempC float64
}

// RegionDayConditions holds the per (day, region) exogenous state.
// Sampled once per (day, region) and read-only for the entity loop.
type RegionDayConditions struct {
	Region string

	TempMaxC    float64
	TempMinC    float64
	HumidityAvg float64
	RainfallMm  float64

	MandiPricePerKg    float64
	MandiPriceChange1d float64 // descriptive delta, not fed back into the price
}
