package domain

import "time"

// SalesRow is one (day, region, SKU, channel, store) observation of the
// historical sales table. Rows are fully computed at generation time and
// never mutated afterwards.
type SalesRow struct {
	Date     time.Time
	RegionID string
	MandiID  string
	StoreID  string
	SKUID    string
	Channel  Channel

	// Packaging is the display label of the SKU unit size, e.g. "250g".
	Packaging string

	SalesUnits          int
	SalesKg             float64
	InventoryReceivedKg float64
	WastageKg           float64

	PriceOfferedPerKg float64
	OptimalPricePerKg float64
	B2BB2CRatio       float64

	MandiPricePerKg    float64
	MandiPriceChange1d float64

	PanchangFastingFlag     bool
	WeddingDensity30d       float64
	FestivalFlag            bool
	TempMaxC                float64
	TempMinC                float64
	HumidityAvg             float64
	RainfallMm              float64
	LogisticsDisruptionFlag bool

	// Mock feature placeholders for forecasting prototypes. These are
	// independently sampled around sales_units, not true historical lags.
	VolatilityScore14d float64
	PackagingPrefScore float64
	Lag1Sales          int
	Lag7SalesMean      float64

	// LabelDailyDemand is the unconstrained demand before fulfillment.
	LabelDailyDemand int
}
