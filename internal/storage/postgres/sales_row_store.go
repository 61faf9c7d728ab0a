package postgres

import (
	"context"
	"fmt"

	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/storage"
)

// SalesRowStore implements storage.SalesRowStore using PostgreSQL.
type SalesRowStore struct {
	pool *Pool
}

// NewSalesRowStore creates a new SalesRowStore.
func NewSalesRowStore(pool *Pool) *SalesRowStore {
	return &SalesRowStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SalesRowStore = (*SalesRowStore)(nil)

const salesInsertQuery = `
	INSERT INTO historical_sales (
		run_id, row_seq, date, region_id, mandi_id, store_id, sku_id, channel, packaging,
		sales_units, sales_kg, inventory_received_kg, wastage_kg,
		price_offered_per_kg, optimal_price_per_kg, b2b_b2c_ratio,
		mandi_price_per_kg, mandi_price_change_1d,
		panchang_fasting_flag, wedding_density_30d, festival_flag,
		temp_max_c, temp_min_c, humidity_avg, rainfall_mm, logistics_disruption_flag,
		volatility_score_14d, packaging_pref_score, lag_1_sales, lag_7_sales_mean,
		label_daily_demand
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9,
		$10, $11, $12, $13,
		$14, $15, $16,
		$17, $18,
		$19, $20, $21,
		$22, $23, $24, $25, $26,
		$27, $28, $29, $30,
		$31
	)
`

// InsertBulk appends rows under a run ID atomically. Fails the entire batch
// on any duplicate (run_id, row_seq).
func (s *SalesRowStore) InsertBulk(ctx context.Context, runID string, rows []*domain.SalesRow) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for seq, r := range rows {
		if r == nil {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, salesInsertQuery,
			runID, seq, r.Date, r.RegionID, r.MandiID, r.StoreID, r.SKUID, string(r.Channel), r.Packaging,
			r.SalesUnits, r.SalesKg, r.InventoryReceivedKg, r.WastageKg,
			r.PriceOfferedPerKg, r.OptimalPricePerKg, r.B2BB2CRatio,
			r.MandiPricePerKg, r.MandiPriceChange1d,
			r.PanchangFastingFlag, r.WeddingDensity30d, r.FestivalFlag,
			r.TempMaxC, r.TempMinC, r.HumidityAvg, r.RainfallMm, r.LogisticsDisruptionFlag,
			r.VolatilityScore14d, r.PackagingPrefScore, r.Lag1Sales, r.Lag7SalesMean,
			r.LabelDailyDemand,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert sales row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
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
		WHERE run_id = $1
		ORDER BY row_seq ASC
	`

	dbRows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query sales rows: %w", err)
	}
	defer dbRows.Close()

	var out []*domain.SalesRow
	for dbRows.Next() {
		var r domain.SalesRow
		var channel string
		err := dbRows.Scan(
			&r.Date, &r.RegionID, &r.MandiID, &r.StoreID, &r.SKUID, &channel, &r.Packaging,
			&r.SalesUnits, &r.SalesKg, &r.InventoryReceivedKg, &r.WastageKg,
			&r.PriceOfferedPerKg, &r.OptimalPricePerKg, &r.B2BB2CRatio,
			&r.MandiPricePerKg, &r.MandiPriceChange1d,
			&r.PanchangFastingFlag, &r.WeddingDensity30d, &r.FestivalFlag,
			&r.TempMaxC, &r.TempMinC, &r.HumidityAvg, &r.RainfallMm, &r.LogisticsDisruptionFlag,
			&r.VolatilityScore14d, &r.PackagingPrefScore, &r.Lag1Sales, &r.Lag7SalesMean,
			&r.LabelDailyDemand,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		r.Channel = domain.Channel(channel)
		out = append(out, &r)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales rows: %w", err)
	}
	return out, nil
}

// CountByRun returns the number of rows stored for a run.
func (s *SalesRowStore) CountByRun(ctx context.Context, runID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM historical_sales WHERE run_id = $1`, runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales rows: %w", err)
	}
	return count, nil
}
