package postgres

import (
	"context"
	"fmt"

	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/storage"
)

// TelemetryRowStore implements storage.TelemetryRowStore using PostgreSQL.
type TelemetryRowStore struct {
	pool *Pool
}

// NewTelemetryRowStore creates a new TelemetryRowStore.
func NewTelemetryRowStore(pool *Pool) *TelemetryRowStore {
	return &TelemetryRowStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TelemetryRowStore = (*TelemetryRowStore)(nil)

const telemetryInsertQuery = `
	INSERT INTO intraday_telemetry (
		run_id, row_seq, ts, region_id, mandi_price_per_kg,
		pos_transactions_last_hour, vehicle_delay_minutes,
		weather_now_temp, weather_now_humidity,
		logistics_disruption_flag, intraday_baseline_pred,
		intraday_actual_sales_partial, intraday_event
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7,
		$8, $9,
		$10, $11,
		$12, $13
	)
`

// InsertBulk appends rows under a run ID atomically. Fails the entire batch
// on any duplicate (run_id, row_seq).
func (s *TelemetryRowStore) InsertBulk(ctx context.Context, runID string, rows []*domain.TelemetryRow) error {
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
		_, err := tx.Exec(ctx, telemetryInsertQuery,
			runID, seq, r.Timestamp, r.RegionID, r.MandiPricePerKg,
			r.POSTransactionsLastHour, r.VehicleDelayMinutes,
			r.WeatherNowTempC, r.WeatherNowHumidity,
			r.LogisticsDisruptionFlag, r.IntradayBaselinePred,
			r.IntradayActualSalesPartial, string(r.Event),
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert telemetry row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListByRun returns all rows of a run in insertion order.
func (s *TelemetryRowStore) ListByRun(ctx context.Context, runID string) ([]*domain.TelemetryRow, error) {
	query := `
		SELECT ts, region_id, mandi_price_per_kg,
			pos_transactions_last_hour, vehicle_delay_minutes,
			weather_now_temp, weather_now_humidity,
			logistics_disruption_flag, intraday_baseline_pred,
			intraday_actual_sales_partial, intraday_event
		FROM intraday_telemetry
		WHERE run_id = $1
		ORDER BY row_seq ASC
	`

	dbRows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query telemetry rows: %w", err)
	}
	defer dbRows.Close()

	var out []*domain.TelemetryRow
	for dbRows.Next() {
		var r domain.TelemetryRow
		var event string
		err := dbRows.Scan(
			&r.Timestamp, &r.RegionID, &r.MandiPricePerKg,
			&r.POSTransactionsLastHour, &r.VehicleDelayMinutes,
			&r.WeatherNowTempC, &r.WeatherNowHumidity,
			&r.LogisticsDisruptionFlag, &r.IntradayBaselinePred,
			&r.IntradayActualSalesPartial, &event,
		)
		if err != nil {
			return nil, fmt.Errorf("scan telemetry row: %w", err)
		}
		r.Event = domain.IntradayEvent(event)
		out = append(out, &r)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telemetry rows: %w", err)
	}
	return out, nil
}

// CountByRun returns the number of rows stored for a run.
func (s *TelemetryRowStore) CountByRun(ctx context.Context, runID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM intraday_telemetry WHERE run_id = $1`, runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count telemetry rows: %w", err)
	}
	return count, nil
}
