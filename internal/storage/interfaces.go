// Package storage defines row store interfaces and shared sentinel errors.
// Stores are append-only: generated rows are immutable once emitted.
package storage

import (
	"context"

	"mushroom-demand-lab/internal/domain"
)

// SalesRowStore persists historical sales rows for one or more runs.
type SalesRowStore interface {
	// InsertBulk appends rows under a run ID. Fails the entire batch on
	// any error; duplicates return ErrDuplicateKey.
	InsertBulk(ctx context.Context, runID string, rows []*domain.SalesRow) error

	// ListByRun returns all rows of a run in insertion order.
	ListByRun(ctx context.Context, runID string) ([]*domain.SalesRow, error)

	// CountByRun returns the number of rows stored for a run.
	CountByRun(ctx context.Context, runID string) (int, error)
}

// TelemetryRowStore persists intraday telemetry rows for one or more runs.
type TelemetryRowStore interface {
	InsertBulk(ctx context.Context, runID string, rows []*domain.TelemetryRow) error
	ListByRun(ctx context.Context, runID string) ([]*domain.TelemetryRow, error)
	CountByRun(ctx context.Context, runID string) (int, error)
}
