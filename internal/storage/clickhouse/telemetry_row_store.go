package clickhouse

import (
	"context"
	"fmt"

	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/storage"
)

// TelemetryRowStore implements storage.TelemetryRowStore using ClickHouse.
type TelemetryRowStore struct {
	conn *Conn
}

// NewTelemetryRowStore creates a new TelemetryRowStore.
func NewTelemetryRowStore(conn *Conn) *TelemetryRowStore {
	return &TelemetryRowStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TelemetryRowStore = (*TelemetryRowStore)(nil)

// InsertBulk appends rows under a run ID in a single native batch.
func (s *TelemetryRowStore) InsertBulk(ctx context.Context, runID string, rows []*domain.TelemetryRow) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO intraday_telemetry (
			run_id, row_seq, ts, region_id, mandi_price_per_kg,
			pos_transactions_last_hour, vehicle_delay_minutes,
			weather_now_temp, weather_now_humidity,
			logistics_disruption_flag, intraday_baseline_pred,
			intraday_actual_sales_partial, intraday_event
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
			runID, uint32(seq), r.Timestamp, r.RegionID, r.MandiPricePerKg,
			int32(r.POSTransactionsLastHour), int32(r.VehicleDelayMinutes),
			r.WeatherNowTempC, r.WeatherNowHumidity,
			r.LogisticsDisruptionFlag, r.IntradayBaselinePred,
			int32(r.IntradayActualSalesPartial), string(r.Event),
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
func (s *TelemetryRowStore) ListByRun(ctx context.Context, runID string) ([]*domain.TelemetryRow, error) {
	query := `
		SELECT ts, region_id, mandi_price_per_kg,
			pos_transactions_last_hour, vehicle_delay_minutes,
			weather_now_temp, weather_now_humidity,
			logistics_disruption_flag, intraday_baseline_pred,
			intraday_actual_sales_partial, intraday_event
		FROM intraday_telemetry
		WHERE run_id = ?
		ORDER BY row_seq ASC
	`

	dbRows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query telemetry rows: %w", err)
	}
	defer dbRows.Close()

	var out []*domain.TelemetryRow
	for dbRows.Next() {
		var (
			r      domain.TelemetryRow
			posTx  int32
			delay  int32
			actual int32
			event  string
		)
		err := dbRows.Scan(
			&r.Timestamp, &r.RegionID, &r.MandiPricePerKg,
			&posTx, &delay,
			&r.WeatherNowTempC, &r.WeatherNowHumidity,
			&r.LogisticsDisruptionFlag, &r.IntradayBaselinePred,
			&actual, &event,
		)
		if err != nil {
			return nil, fmt.Errorf("scan telemetry row: %w", err)
		}
		r.POSTransactionsLastHour = int(posTx)
		r.VehicleDelayMinutes = int(delay)
		r.IntradayActualSalesPartial = int(actual)
		r.Event = domain.IntradayEvent(event)
		out = append(out, &r)
	}
	return out, nil
}

// CountByRun returns the number of rows stored for a run.
func (s *TelemetryRowStore) CountByRun(ctx context.Context, runID string) (int, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM intraday_telemetry WHERE run_id = ?`, runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count telemetry rows: %w", err)
	}
	return int(count), nil
}
