package memory

import (
	"context"
	"sync"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// PredictionStore is an in-memory implementation of storage.PredictionStore.
type PredictionStore struct {
	mu   sync.RWMutex
	rows []*domain.Prediction
}

// NewPredictionStore creates a new in-memory prediction store.
func NewPredictionStore() *PredictionStore {
	return &PredictionStore{}
}

// Compile-time interface check.
var _ storage.PredictionStore = (*PredictionStore)(nil)

// InsertBulk appends one analyzer run's rows.
func (s *PredictionStore) InsertBulk(_ context.Context, rows []*domain.Prediction) error {
	copies := make([]*domain.Prediction, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.PlayerID <= 0 || r.AnalyzedAt.IsZero() {
			return storage.ErrInvalidInput
		}
		rowCopy := *r
		copies = append(copies, &rowCopy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, copies...)
	return nil
}

// GetAll retrieves every prediction in insertion order.
func (s *PredictionStore) GetAll(_ context.Context) ([]*domain.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Prediction, 0, len(s.rows))
	for _, r := range s.rows {
		rowCopy := *r
		result = append(result, &rowCopy)
	}
	return result, nil
}
