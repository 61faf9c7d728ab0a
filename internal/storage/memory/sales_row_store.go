package memory

import (
	"context"
	"sync"

	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/storage"
)

// SalesRowStore is an in-memory implementation of storage.SalesRowStore.
// Rows are kept in insertion order per run.
type SalesRowStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.SalesRow // keyed by run_id
}

// NewSalesRowStore creates a new in-memory sales row store.
func NewSalesRowStore() *SalesRowStore {
	return &SalesRowStore{data: make(map[string][]*domain.SalesRow)}
}

// Compile-time interface check.
var _ storage.SalesRowStore = (*SalesRowStore)(nil)

// InsertBulk appends rows under a run ID.
func (s *SalesRowStore) InsertBulk(_ context.Context, runID string, rows []*domain.SalesRow) error {
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
func (s *SalesRowStore) ListByRun(_ context.Context, runID string) ([]*domain.SalesRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.data[runID]
	out := make([]*domain.SalesRow, len(rows))
	for i, r := range rows {
		copy := *r
		out[i] = &copy
	}
	return out, nil
}

// CountByRun returns the number of rows stored for a run.
func (s *SalesRowStore) CountByRun(_ context.Context, runID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[runID]), nil
}
