package memory

import (
	"context"
	"sync"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
// Rows are kept in insertion order, matching the CSV log.
type SnapshotStore struct {
	mu   sync.RWMutex
	rows []*domain.Snapshot
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// InsertBulk appends one collector run's rows. All rows are validated
// before any are stored.
func (s *SnapshotStore) InsertBulk(_ context.Context, rows []*domain.Snapshot) error {
	copies := make([]*domain.Snapshot, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.PlayerID <= 0 || r.CapturedAt.IsZero() {
			return storage.ErrInvalidInput
		}
		// Store a copy to prevent external mutation
		rowCopy := *r
		copies = append(copies, &rowCopy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, copies...)
	return nil
}

// GetAll retrieves every snapshot in insertion order.
func (s *SnapshotStore) GetAll(_ context.Context) ([]*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Snapshot, 0, len(s.rows))
	for _, r := range s.rows {
		rowCopy := *r
		result = append(result, &rowCopy)
	}
	return result, nil
}
