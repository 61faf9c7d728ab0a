package memory

import (
	"context"
	"sync"

	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/storage"
)

// TelemetryRowStore is an in-memory implementation of
// storage.TelemetryRowStore. Rows are kept in insertion order per run.
type TelemetryRowStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.TelemetryRow // keyed by run_id
}

// NewTelemetryRowStore creates a new in-memory telemetry row store.
func NewTelemetryRowStore() *TelemetryRowStore {
	return &TelemetryRowStore{data: make(map[string][]*domain.TelemetryRow)}
}

// Compile-time interface check.
var _ storage.TelemetryRowStore = (*TelemetryRowStore)(nil)

// InsertBulk appends rows under a run ID.
func (s *TelemetryRowStore) InsertBulk(_ context.Context, runID string, rows []*domain.TelemetryRow) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	for _, r := range rows {
		if r == nil {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		copy := *r
		s.data[runID] = append(s.data[runID], &copy)
	}
	return nil
}

// ListByRun returns all rows of a run in insertion order.
func (s *TelemetryRowStore) ListByRun(_ context.Context, runID string) ([]*domain.TelemetryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.data[runID]
	out := make([]*domain.TelemetryRow, len(rows))
	for i, r := range rows {
		copy := *r
		out[i] = &copy
	}
	return out, nil
}

// CountByRun returns the number of rows stored for a run.
func (s *TelemetryRowStore) CountByRun(_ context.Context, runID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[runID]), nil
}
