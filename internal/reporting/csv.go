// Package reporting renders generated datasets as delimited tabular files.
// Column order and rounding match the reference tables consumed by the
// forecasting prototypes.
package reporting

import (
	"fmt"
	"strings"

	"mushroom-demand-lab/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// RenderHistoricalCSV renders historical sales rows as a CSV string.
func RenderHistoricalCSV(rows []*domain.SalesRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("date,region_id,mandi_id,store_id,sku_id,channel,packaging,")
	sb.WriteString("sales_units,sales_kg,inventory_received_kg,wastage_kg,")
	sb.WriteString("price_offered_per_kg,optimal_price_per_kg,b2b_b2c_ratio,")
	sb.WriteString("mandi_price_per_kg,mandi_price_change_1d,")
	sb.WriteString("panchang_fasting_flag,wedding_density_30d,festival_flag,")
	sb.WriteString("temp_max_c,temp_min_c,humidity_avg,rainfall_mm,logistics_disruption_flag,")
	sb.WriteString("volatility_score_14d,packaging_pref_score,lag_1_sales,lag_7_sales_mean,")
	sb.WriteString("label_daily_demand\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.1f,%.2f,%.2f,%d,%.2f,%d,%.1f,%.1f,%.1f,%.1f,%d,%.2f,%.2f,%d,%.2f,%d\n",
			r.Date.Format(dateLayout),
			r.RegionID,
			r.MandiID,
			r.StoreID,
			r.SKUID,
			r.Channel,
			r.Packaging,
			r.SalesUnits,
			r.SalesKg,
			r.InventoryReceivedKg,
			r.WastageKg,
			r.PriceOfferedPerKg,
			r.OptimalPricePerKg,
			r.B2BB2CRatio,
			r.MandiPricePerKg,
			r.MandiPriceChange1d,
			boolFlag(r.PanchangFastingFlag),
			r.WeddingDensity30d,
			boolFlag(r.FestivalFlag),
			r.TempMaxC,
			r.TempMinC,
			r.HumidityAvg,
			r.RainfallMm,
			boolFlag(r.LogisticsDisruptionFlag),
			r.VolatilityScore14d,
			r.PackagingPrefScore,
			r.Lag1Sales,
			r.Lag7SalesMean,
			r.LabelDailyDemand,
		))
	}

	return sb.String()
}

// RenderTelemetryCSV renders intraday telemetry rows as a CSV string.
func RenderTelemetryCSV(rows []*domain.TelemetryRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("datetime,region_id,mandi_price_per_kg,pos_transactions_last_hour,")
	sb.WriteString("vehicle_delay_minutes,weather_now_temp,weather_now_humidity,")
	sb.WriteString("logistics_disruption_flag,intraday_baseline_pred,")
	sb.WriteString("intraday_actual_sales_partial,intraday_event\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%.2f,%d,%d,%.1f,%.1f,%d,%.2f,%d,%s\n",
			r.Timestamp.Format(datetimeLayout),
			r.RegionID,
			r.MandiPricePerKg,
			r.POSTransactionsLastHour,
			r.VehicleDelayMinutes,
			r.WeatherNowTempC,
			r.WeatherNowHumidity,
			boolFlag(r.LogisticsDisruptionFlag),
			r.IntradayBaselinePred,
			r.IntradayActualSalesPartial,
			r.Event,
		))
	}

	return sb.String()
}

// boolFlag renders a flag as the 0/1 integer used in the reference tables.
func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
