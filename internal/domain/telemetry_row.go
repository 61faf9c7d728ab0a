package domain

import "time"

// IntradayEvent is a rare disruptive event observed at hourly grain.
type IntradayEvent string

// Intraday event constants. Exactly one applies per row.
const (
	EventNone      IntradayEvent = "none"
	EventHeavyRain IntradayEvent = "heavy_rain"
	EventStrike    IntradayEvent = "strike"
)

// TelemetryRow is one (hour, region) observation of the intraday
// telemetry table.
type TelemetryRow struct {
	Timestamp time.Time
	RegionID  string

	MandiPricePerKg float64

	POSTransactionsLastHour int
	VehicleDelayMinutes     int

	WeatherNowTempC    float64
	WeatherNowHumidity float64

	LogisticsDisruptionFlag bool

	IntradayBaselinePred       float64
	IntradayActualSalesPartial int

	Event IntradayEvent
}
