package clickhouse

import (
	"context"
	"fmt"
	"time"

	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/storage"
)

// SalesRowStore implements storage.SalesRowStore using ClickHouse.
type SalesRowStore struct {
	conn *Conn
}

// NewSalesRowStore creates a new SalesRowStore.
func NewSalesRowStore(conn *Conn) *SalesRowStore {
	return &SalesRowStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SalesRowStore = (*SalesRowStore)(nil)

// InsertBulk appends rows under a run ID in a single native batch.
func (s *SalesRowStore) InsertBulk(ctx context.Context, runID string, rows []*domain.SalesRow) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO historical_sales (
			run_id, row_seq, date, region_id, mandi_id, store_id, sku_id, channel, packaging,
			sales_units, sales_kg, inventory_received_kg, wastage_kg,
			price_offered_per_kg, optimal_price_per_kg, b2b_b2c_ratio,
			mandi_price_per_kg, mandi_price_change_1d,
			panchang_fasting_flag, wedding_density_30d, festival_flag,
			temp_max_c, temp_min_c, humidity_avg, rainfall_mm, logistics_disruption_flag,
			volatility_score_14d, packaging_pref_score, lag_1_sales, lag_7_sales_mean,
			label_daily_demand
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for seq, r := range rows {
		if r == nil {
			return storage.ErrInvalidInput
		}
		err = batch.Append(
			runID, uint32(seq), r.Date, r.RegionID, r.MandiID, r.StoreID, r.SKUID, string(r.Channel), r.Packaging,
			int32(r.SalesUnits), r.SalesKg, r.InventoryReceivedKg, r.WastageKg,
			r.PriceOfferedPerKg, r.OptimalPricePerKg, r.B2BB2CRatio,
			r.MandiPricePerKg, r.MandiPriceChange1d,
			r.PanchangFastingFlag, r.WeddingDensity30d, r.FestivalFlag,
			r.TempMaxC, r.TempMinC, r.HumidityAvg, r.RainfallMm, r.LogisticsDisruptionFlag,
			r.VolatilityScore14d, r.PackagingPrefScore, int32(r.Lag1Sales), r.Lag7SalesMean,
			int32(r.LabelDailyDemand),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// ListByRun returns all rows of a run in insertion order.
func (s *SalesRowStore) ListByRun(ctx context.Context, runID string) ([]*domain.SalesRow, error) {
	query := `
		SELECT date, region_id, mandi_id, store_id, sku_id, channel, packaging,
			sales_units, sales_kg, inventory_received_kg, wastage_kg,
			price_offered_per_kg, optimal_price_per_kg, b2b_b2c_ratio,
			mandi_price_per_kg, mandi_price_change_1d,
			panchang_fasting_flag, wedding_density_30d, festival_flag,
			temp_max_c, temp_min_c, humidity_avg, rainfall_mm, logistics_disruption_flag,
			volatility_score_14d, packaging_pref_score, lag_1_sales, lag_7_sales_mean,
			label_daily_demand
		FROM historical_sales
		WHERE run_id = ?
		ORDER BY row_seq ASC
	`

	dbRows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query sales rows: %w", err)
	}
	defer dbRows.Close()

	var out []*domain.SalesRow
	for dbRows.Next() {
		var (
			r          domain.SalesRow
			date       time.Time
			channel    string
			salesUnits int32
			lag1       int32
			label      int32
		)
		err := dbRows.Scan(
			&date, &r.RegionID, &r.MandiID, &r.StoreID, &r.SKUID, &channel, &r.Packaging,
			&salesUnits, &r.SalesKg, &r.InventoryReceivedKg, &r.WastageKg,
			&r.PriceOfferedPerKg, &r.OptimalPricePerKg, &r.B2BB2CRatio,
			&r.MandiPricePerKg, &r.MandiPriceChange1d,
			&r.PanchangFastingFlag, &r.WeddingDensity30d, &r.FestivalFlag,
			&r.TempMaxC, &r.TempMinC, &r.HumidityAvg, &r.RainfallMm, &r.LogisticsDisruptionFlag,
			&r.VolatilityScore14d, &r.PackagingPrefScore, &lag1, &r.Lag7SalesMean,
			&label,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		r.Date = date
		r.Channel = domain.Channel(channel)
		r.SalesUnits = int(salesUnits)
		r.Lag1Sales = int(lag1)
		r.LabelDailyDemand = int(label)
		out = append(out, &r)
	}
	return out, nil
}

// CountByRun returns the number of rows stored for a run.
func (s *SalesRowStore) CountByRun(ctx context.Context, runID string) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM historical_sales WHERE run_id = ?`, runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales rows: %w", err)
	}
	return int(count), nil
}
