package memory

import (
	"context"
	"sync"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// SummaryStore is an in-memory implementation of storage.SummaryStore.
type SummaryStore struct {
	mu   sync.RWMutex
	rows []*domain.SummaryRow
}

// NewSummaryStore creates a new in-memory summary store.
func NewSummaryStore() *SummaryStore {
	return &SummaryStore{}
}

// Compile-time interface check.
var _ storage.SummaryStore = (*SummaryStore)(nil)

// Replace overwrites the summary with the given rows.
func (s *SummaryStore) Replace(_ context.Context, rows []*domain.SummaryRow) error {
	copies := make([]*domain.SummaryRow, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.GeneratedAt.IsZero() {
			return storage.ErrInvalidInput
		}
		rowCopy := *r
		copies = append(copies, &rowCopy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = copies
	return nil
}

// Rows returns the current summary in order. Test helper.
func (s *SummaryStore) Rows() []*domain.SummaryRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.SummaryRow, 0, len(s.rows))
	for _, r := range s.rows {
		rowCopy := *r
		result = append(result, &rowCopy)
	}
	return result
}
