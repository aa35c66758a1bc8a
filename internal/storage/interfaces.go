package storage

import (
	"context"

	"fpl-transfer-lab/internal/domain"
)

// SnapshotStore provides access to the append-only transfer snapshot log.
type SnapshotStore interface {
	// InsertBulk appends one collector run's rows. All rows are written
	// or none are; the log is never left with a partial run.
	InsertBulk(ctx context.Context, rows []*domain.Snapshot) error

	// GetAll retrieves every snapshot in log order (write order).
	GetAll(ctx context.Context) ([]*domain.Snapshot, error)
}

// PredictionStore provides access to the append-only prediction log.
type PredictionStore interface {
	// InsertBulk appends one analyzer run's rows.
	InsertBulk(ctx context.Context, rows []*domain.Prediction) error

	// GetAll retrieves every prediction in log order.
	GetAll(ctx context.Context) ([]*domain.Prediction, error)
}

// SummaryStore holds the movers summary, replaced wholesale each run.
type SummaryStore interface {
	// Replace overwrites the summary with the given rows.
	Replace(ctx context.Context, rows []*domain.SummaryRow) error
}
