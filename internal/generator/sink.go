package generator

import "mushroom-demand-lab/internal/domain"

// SalesSink receives completed historical rows in generation order.
type SalesSink interface {
	Append(row *domain.SalesRow) error
}

// TelemetrySink receives completed telemetry rows in generation order.
type TelemetrySink interface {
	Append(row *domain.TelemetryRow) error
}

// SalesBuffer is a SalesSink that collects rows in memory.
type SalesBuffer struct {
	Rows []*domain.SalesRow
}

// Append implements SalesSink.
func (b *SalesBuffer) Append(row *domain.SalesRow) error {
	b.Rows = append(b.Rows, row)
	return nil
}

// TelemetryBuffer is a TelemetrySink that collects rows in memory.
type TelemetryBuffer struct {
	Rows []*domain.TelemetryRow
}

// Append implements TelemetrySink.
func (b *TelemetryBuffer) Append(row *domain.TelemetryRow) error {
	b.Rows = append(b.Rows, row)
	return nil
}
